package anim

import (
	"iter"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// ShadowState is the externally visible output of a layer in legacy mode. The
// SetByAnimation flags tell consumers whether a field holds an animated or a static
// value.
type ShadowState struct {
	Opacity                 float32
	OpacitySetByAnimation   bool
	Transform               mgl64.Mat4
	TransformSetByAnimation bool
	Color                   Color
	ColorSetByAnimation     bool
}

// Layer is an entity of a legacy scene graph that carries its own animations.
// SampleLayers calls Layer methods without holding the store lock.
type Layer interface {
	AnimationsId() EntityId
	AnimationGroups() []PropertyAnimationGroup
	// TransformContext may be nil when the layer has no transform animations.
	TransformContext() *TransformContext
	ParentIsPerspective() bool

	// Static values restored when nothing is animated.
	BaseTransform() mgl64.Mat4
	Opacity() float32
	Color() Color

	Shadow() *ShadowState
}

// layerFrame is what one layer contributes to a legacy sample pass.
type layerFrame struct {
	id     EntityId
	groups []PropertyAnimationGroup
	ctx    *TransformContext
	static ShadowState
	shadow *ShadowState

	value    Value
	hasValue bool
}

// SampleLayers samples the animations carried by layers and writes the results to
// their shadow state, caching values in the store under each layer's AnimationsId.
// It reports whether any layer has animations; when it returns false the caller
// should Clear the store.
func (s *Store) SampleLayers(layers iter.Seq[Layer], prev, curr time.Time) bool {
	var frames []layerFrame
	for layer := range layers {
		groups := layer.AnimationGroups()
		if len(groups) == 0 {
			continue
		}

		ctx := layer.TransformContext()
		if ctx != nil && layer.ParentIsPerspective() {
			ctx.motionPath()
			c := *ctx
			c.Origin.X, c.Origin.Y = 0, 0
			ctx = &c
		}
		frames = append(frames, layerFrame{
			id:     layer.AnimationsId(),
			groups: groups,
			ctx:    ctx,
			static: ShadowState{
				Opacity:   layer.Opacity(),
				Transform: layer.BaseTransform(),
				Color:     layer.Color(),
			},
			shadow: layer.Shadow(),
		})
	}
	if len(frames) == 0 {
		return false
	}

	s.mu.Lock()
	for i := range frames {
		s.sampleLayerLocked(&frames[i], prev, curr)
	}
	s.mu.Unlock()

	for i := range frames {
		f := &frames[i]
		if f.hasValue {
			applyShadow(f.shadow, f.static, &f.value)
		} else {
			applyShadow(f.shadow, f.static, nil)
		}
	}
	return true
}

func (s *Store) sampleLayerLocked(f *layerFrame, prev, curr time.Time) {
	prior, _ := s.values.Get(f.id)
	out, err := SampleGroups(prev, curr, prior, f.groups, f.ctx)
	if err != nil {
		Logger().Warn("anim: sampling layer failed", slog.Uint64("entity", uint64(f.id)), slog.Any("error", err))
		out.Result = SampleSkipped
	}

	switch out.Result {
	case SampleSampled:
		s.storeLocked(f.id, out.Value)
		f.value, f.hasValue = out.Value, true
	case SampleSkipped:
		if v, ok := s.values.Get(f.id); ok {
			f.value, f.hasValue = *v, true
		}
	default:
		s.values.Del(f.id)
	}
}

// applyShadow writes v, or the static values when v is nil, to sh.
func applyShadow(sh *ShadowState, static ShadowState, v *Value) {
	*sh = static
	if v == nil {
		return
	}

	switch v.kind {
	case KindOpacity:
		sh.Opacity, sh.OpacitySetByAnimation = v.opacity, true
	case KindTransform:
		sh.Transform, sh.TransformSetByAnimation = v.transform.DeviceMatrix, true
	case KindColor:
		sh.Color, sh.ColorSetByAnimation = v.color, true
	}
}
