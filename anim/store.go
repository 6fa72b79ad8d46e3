package anim

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/kamstrup/intmap"
)

type timeline struct {
	groups []PropertyAnimationGroup
	ctx    *TransformContext
}

// Store holds the installed animation timelines of every entity of one compositor
// together with the most recently sampled value of each. All methods are safe for
// concurrent use; a single mutex guards the whole store.
type Store struct {
	mu        sync.Mutex
	timelines *intmap.Map[EntityId, *timeline]
	values    *intmap.Map[EntityId, *Value]

	// fresh holds ids whose timeline replaced one that already had a cached value.
	// It is consumed by the next sample pass.
	fresh *intmap.Set[EntityId]

	// failing holds ids whose last sample failed; repeated failures are not activity.
	failing *intmap.Set[EntityId]

	// gen counts installs, removals and clears.
	gen uint64
}

func NewStore() *Store {
	return &Store{
		timelines: intmap.New[EntityId, *timeline](64),
		values:    intmap.New[EntityId, *Value](64),
		fresh:     intmap.NewSet[EntityId](16),
		failing:   intmap.NewSet[EntityId](16),
	}
}

// Install replaces the timeline of id. An empty groups slice removes id. groups and
// ctx are copied; an existing motion path cache for id is carried over when ctx
// has none.
func (s *Store) Install(id EntityId, groups []PropertyAnimationGroup, ctx *TransformContext) error {
	if len(groups) == 0 {
		s.Remove(id)
		return nil
	}
	if err := validateGroups(groups, ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.installLocked(id, groups, ctx)
	return nil
}

func (s *Store) installLocked(id EntityId, groups []PropertyAnimationGroup, ctx *TransformContext) {
	tl := &timeline{groups: slices.Clone(groups)}
	if ctx != nil {
		c := *ctx
		if c.MotionPath == nil {
			if old, ok := s.timelines.Get(id); ok && old.ctx != nil {
				c.MotionPath = old.ctx.MotionPath
			}
		}
		c.motionPath()
		tl.ctx = &c
	}

	s.timelines.Put(id, tl)
	s.failing.Del(id)
	if s.values.Has(id) {
		s.fresh.Add(id)
	}
	s.gen++
}

// Remove deletes the timeline and the cached value of id.
func (s *Store) Remove(id EntityId) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

func (s *Store) removeLocked(id EntityId) {
	s.timelines.Del(id)
	s.values.Del(id)
	s.fresh.Del(id)
	s.failing.Del(id)
	s.gen++
}

// HasAnimations reports whether at least one timeline is installed.
func (s *Store) HasAnimations() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timelines.Len() > 0
}

// Len returns the number of installed timelines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timelines.Len()
}

// Clear removes every timeline and cached value.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Store) clearLocked() {
	s.timelines.Clear()
	s.values.Clear()
	s.fresh.Clear()
	s.failing.Clear()
	s.gen++
}

// ClearIfUnchanged clears the store only if no Install, Remove, Apply or Clear has
// happened since the sample pass that returned gen. It reports whether it cleared.
func (s *Store) ClearIfUnchanged(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.clearLocked()
	return true
}

// Value returns a copy of the cached value of id.
func (s *Store) Value(id EntityId) (Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values.Get(id); ok {
		return *v, true
	}
	return Value{}, false
}

// Txn is a read view of a locked Store. It must not be retained after the View
// callback returns.
type Txn struct {
	s *Store
}

// Value returns the cached value of id. The pointer is only valid inside the View
// callback that produced the Txn.
func (t *Txn) Value(id EntityId) (*Value, bool) {
	return t.s.values.Get(id)
}

// Len returns the number of installed timelines.
func (t *Txn) Len() int { return t.s.timelines.Len() }

// Groups returns the installed groups of id. The slice must not be modified.
func (t *Txn) Groups(id EntityId) ([]PropertyAnimationGroup, bool) {
	tl, ok := t.s.timelines.Get(id)
	if !ok {
		return nil, false
	}
	return tl.groups, true
}

// View runs fn with the store locked. fn must not call other Store methods.
func (s *Store) View(fn func(txn *Txn)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&Txn{s: s})
}

// SamplePass samples every installed timeline between prev and curr and updates the
// cached values. It reports whether any entity still needs the compositor to keep
// producing frames.
func (s *Store) SamplePass(prev, curr time.Time) bool {
	active, _ := s.SampleGeneration(prev, curr)
	return active
}

// SampleGeneration is SamplePass that also returns the mutation generation the pass
// observed, for use with ClearIfUnchanged.
func (s *Store) SampleGeneration(prev, curr time.Time) (bool, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timelines.Len() == 0 {
		return false, s.gen
	}
	defer s.fresh.Clear()

	active := false
	for id, tl := range s.timelines.All() {
		if s.sampleLocked(id, tl, tl.ctx, prev, curr) {
			active = true
		}
	}
	Logger().Debug("anim: sample pass", slog.Int("timelines", s.timelines.Len()), slog.Int("values", s.values.Len()), slog.Bool("active", active))
	return active, s.gen
}

// sampleLocked samples one timeline with ctx and applies the verdict to the cached
// value. It reports whether the timeline contributes activity.
func (s *Store) sampleLocked(id EntityId, tl *timeline, ctx *TransformContext, prev, curr time.Time) bool {
	prior, _ := s.values.Get(id)
	replaced := s.fresh.Has(id)
	if replaced {
		prior = nil
	}

	out, err := SampleGroups(prev, curr, prior, tl.groups, ctx)
	if err != nil {
		if replaced {
			s.values.Del(id)
		}
		if s.failing.Has(id) {
			Logger().Debug("anim: sampling still failing", slog.Uint64("entity", uint64(id)), slog.Any("error", err))
			return false
		}
		s.failing.Add(id)
		Logger().Warn("anim: sampling failed", slog.Uint64("entity", uint64(id)), slog.Any("error", err))
		return true
	}
	s.failing.Del(id)

	switch out.Result {
	case SampleSampled:
		s.storeLocked(id, out.Value)
		return true
	case SampleSkipped:
		return true
	}

	if replaced {
		s.values.Del(id)
	}
	return out.Pending
}

func (s *Store) storeLocked(id EntityId, v Value) {
	if cur, ok := s.values.Get(id); ok && cur.kind == v.kind {
		*cur = v
		return
	}
	s.values.Put(id, &v)
}

// CollectSnapshot copies every cached value into a Snapshot.
func (s *Store) CollectSnapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snap Snapshot
	for id, v := range s.values.All() {
		switch v.kind {
		case KindTransform:
			snap.Transforms = append(snap.Transforms, TransformProperty{Id: id, Matrix: v.transform.DeviceMatrix})
		case KindOpacity:
			snap.Opacities = append(snap.Opacities, OpacityProperty{Id: id, Opacity: v.opacity})
		case KindColor:
			snap.Colors = append(snap.Colors, ColorProperty{Id: id, Color: v.color.RGBA()})
		}
	}
	return snap
}

// OMTAValue is the introspection form of a cached value. Transform is in CSS pixels,
// relative to the entity's own origin.
type OMTAValue struct {
	Kind      ValueKind
	Transform mgl64.Mat4
	Opacity   float32
	Color     Color
}

// OMTAValue returns the cached value of id in a form comparable to values computed
// on the main thread.
func (s *Store) OMTAValue(id EntityId) (OMTAValue, bool) {
	v, ok := s.Value(id)
	if !ok {
		return OMTAValue{}, false
	}

	out := OMTAValue{Kind: v.kind}
	switch v.kind {
	case KindTransform:
		out.Transform = cssMatrix(v.transform.FrameMatrix, v.transform.Data)
	case KindOpacity:
		out.Opacity = v.opacity
	case KindColor:
		out.Color = v.color
	}
	return out, true
}

// EntityState summarizes one entity for inspection tools.
type EntityState struct {
	Id         EntityId
	Properties []Property
	Value      Value
	HasValue   bool
}

// States returns a summary of every installed timeline.
func (s *Store) States() []EntityState {
	s.mu.Lock()
	defer s.mu.Unlock()

	states := make([]EntityState, 0, s.timelines.Len())
	for id, tl := range s.timelines.All() {
		st := EntityState{Id: id}
		for _, g := range tl.groups {
			st.Properties = append(st.Properties, g.Property)
		}
		if v, ok := s.values.Get(id); ok {
			st.Value, st.HasValue = *v, true
		}
		states = append(states, st)
	}
	slices.SortFunc(states, func(a, b EntityState) int { return cmp.Compare(a.Id, b.Id) })
	return states
}
