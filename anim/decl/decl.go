// Package decl reads animation timelines from YAML declarations and installs them
// into an anim.Store.
//
// A declaration lists entities, each with an optional transform context and its
// property animation groups:
//
//	entities:
//	  - id: 1
//	    context:
//	      origin: [10, 20]
//	      transformOrigin: [50, 50]
//	    groups:
//	      - property: translate
//	        duration: 2s
//	        iterations: infinite
//	        direction: alternate
//	        easing: ease-in-out
//	        keyframes:
//	          - {offset: 0, value: [0, 0]}
//	          - {offset: 1, value: [100, 0]}
package decl

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/plus3/animstore/anim"
	"gopkg.in/yaml.v3"
)

// Scene is a set of entity declarations.
type Scene struct {
	Entities []Entity `yaml:"entities"`
}

type Entity struct {
	Id      anim.EntityId `yaml:"id"`
	Context *Context      `yaml:"context"`
	Groups  []Group       `yaml:"groups"`
}

// Context declares the reference frame of an entity's transform animations. Points
// are [x, y] or [x, y, z] in CSS pixels.
type Context struct {
	Origin           []float64 `yaml:"origin"`
	TransformOrigin  []float64 `yaml:"transformOrigin"`
	DevicePixelRatio float64   `yaml:"devicePixelRatio"`
	InheritedScale   []float64 `yaml:"inheritedScale"`
}

type Group struct {
	Property       string        `yaml:"property"`
	Delay          time.Duration `yaml:"delay"`
	EndDelay       time.Duration `yaml:"endDelay"`
	Duration       time.Duration `yaml:"duration"`
	Iterations     Iterations    `yaml:"iterations"`
	IterationStart float64       `yaml:"iterationStart"`
	Direction      string        `yaml:"direction"`
	Fill           string        `yaml:"fill"`
	PlaybackRate   float64       `yaml:"playbackRate"`
	Easing         string        `yaml:"easing"`
	Base           *yaml.Node    `yaml:"base"`
	Keyframes      []Keyframe    `yaml:"keyframes"`
}

// Keyframe is a value at an offset in [0, 1] of an iteration. Easing applies to the
// segment starting at this keyframe.
type Keyframe struct {
	Offset float64   `yaml:"offset"`
	Value  yaml.Node `yaml:"value"`
	Easing string    `yaml:"easing"`
}

// Iterations is an iteration count that also accepts "infinite".
type Iterations float64

func (it *Iterations) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode && n.Value == "infinite" {
		*it = Iterations(math.Inf(1))
		return nil
	}
	var f float64
	if err := n.Decode(&f); err != nil {
		return fmt.Errorf("line %d: iterations: %w", n.Line, err)
	}
	if f < 0 {
		return fmt.Errorf("line %d: iterations must not be negative", n.Line)
	}
	*it = Iterations(f)
	return nil
}

// Parse decodes a scene. Unknown fields are rejected.
func Parse(r io.Reader) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var scene Scene
	if err := dec.Decode(&scene); err != nil {
		if errors.Is(err, io.EOF) {
			return &scene, nil
		}
		return nil, fmt.Errorf("decl: %w", err)
	}
	return &scene, nil
}

// Timeline is a converted entity declaration, ready for anim.Store.Install.
type Timeline struct {
	Id      anim.EntityId
	Groups  []anim.PropertyAnimationGroup
	Context *anim.TransformContext
}

// Timelines converts every entity, anchoring all groups at start.
func (s *Scene) Timelines(start time.Time) ([]Timeline, error) {
	out := make([]Timeline, 0, len(s.Entities))
	seen := make(map[anim.EntityId]bool, len(s.Entities))
	for i, e := range s.Entities {
		if seen[e.Id] {
			return nil, fmt.Errorf("decl: entity %d declared twice", e.Id)
		}
		seen[e.Id] = true

		tl, err := e.timeline(start)
		if err != nil {
			return nil, fmt.Errorf("decl: entity %d (#%d): %w", e.Id, i, err)
		}
		out = append(out, tl)
	}
	return out, nil
}

// Commands converts the scene into a command batch.
func (s *Scene) Commands(start time.Time) (*anim.Commands, error) {
	timelines, err := s.Timelines(start)
	if err != nil {
		return nil, err
	}
	cmds := anim.NewCommands()
	for _, tl := range timelines {
		cmds.Install(tl.Id, tl.Groups, tl.Context)
	}
	return cmds, nil
}

// Install installs every entity of the scene into store as one batch. Nothing is
// installed if any declaration is invalid.
func (s *Scene) Install(store *anim.Store, start time.Time) error {
	cmds, err := s.Commands(start)
	if err != nil {
		return err
	}
	if err := store.Apply(cmds); err != nil {
		return fmt.Errorf("decl: %w", err)
	}
	anim.Logger().Debug("decl: scene installed", "entities", len(s.Entities))
	return nil
}

func (e *Entity) timeline(start time.Time) (Timeline, error) {
	tl := Timeline{Id: e.Id}
	if e.Context != nil {
		ctx, err := e.Context.transformContext()
		if err != nil {
			return tl, fmt.Errorf("context: %w", err)
		}
		tl.Context = ctx
	}

	for i := range e.Groups {
		g, err := e.Groups[i].group(start)
		if err != nil {
			return tl, fmt.Errorf("group %d (%s): %w", i, e.Groups[i].Property, err)
		}
		tl.Groups = append(tl.Groups, g)
	}

	if tl.Context == nil {
		for _, g := range tl.Groups {
			if g.Property.IsTransformLike() {
				tl.Context = &anim.TransformContext{}
				break
			}
		}
	}
	return tl, nil
}

func (c *Context) transformContext() (*anim.TransformContext, error) {
	origin, err := vector(c.Origin, 0)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	transformOrigin, err := vector(c.TransformOrigin, 0)
	if err != nil {
		return nil, fmt.Errorf("transformOrigin: %w", err)
	}
	scale, err := vector(c.InheritedScale, 1)
	if err != nil {
		return nil, fmt.Errorf("inheritedScale: %w", err)
	}
	if c.DevicePixelRatio < 0 {
		return nil, fmt.Errorf("devicePixelRatio must not be negative")
	}

	ctx := &anim.TransformContext{}
	ctx.Origin.X, ctx.Origin.Y = origin[0], origin[1]
	ctx.TransformOrigin = transformOrigin
	ctx.DevicePixelRatio = c.DevicePixelRatio
	ctx.InheritedScale.X, ctx.InheritedScale.Y = scale[0], scale[1]
	return ctx, nil
}

var directions = map[string]anim.Direction{
	"":                  anim.DirectionNormal,
	"normal":            anim.DirectionNormal,
	"reverse":           anim.DirectionReverse,
	"alternate":         anim.DirectionAlternate,
	"alternate-reverse": anim.DirectionAlternateReverse,
}

var fills = map[string]anim.Fill{
	"":          anim.FillNone,
	"none":      anim.FillNone,
	"auto":      anim.FillNone,
	"forwards":  anim.FillForwards,
	"backwards": anim.FillBackwards,
	"both":      anim.FillBoth,
}

func (g *Group) group(start time.Time) (anim.PropertyAnimationGroup, error) {
	var out anim.PropertyAnimationGroup

	prop, err := anim.ParseProperty(g.Property)
	if err != nil {
		return out, err
	}
	direction, ok := directions[g.Direction]
	if !ok {
		return out, fmt.Errorf("unknown direction %q", g.Direction)
	}
	fill, ok := fills[g.Fill]
	if !ok {
		return out, fmt.Errorf("unknown fill %q", g.Fill)
	}
	if g.Duration < 0 {
		return out, fmt.Errorf("negative duration %v", g.Duration)
	}
	easing, err := ParseEasing(g.Easing)
	if err != nil {
		return out, err
	}

	out = anim.PropertyAnimationGroup{
		Property: prop,
		Timing: anim.Timing{
			StartTime:      start,
			Delay:          g.Delay,
			EndDelay:       g.EndDelay,
			Duration:       g.Duration,
			Iterations:     float64(g.Iterations),
			IterationStart: g.IterationStart,
			Direction:      direction,
			Fill:           fill,
			PlaybackRate:   g.PlaybackRate,
			Easing:         easing,
		},
	}

	if g.Base != nil {
		base, err := decodeValue(prop, g.Base)
		if err != nil {
			return out, fmt.Errorf("base: %w", err)
		}
		out.BaseValue = &base
	}

	if len(g.Keyframes) < 2 {
		return out, fmt.Errorf("need at least 2 keyframes, got %d", len(g.Keyframes))
	}
	values := make([]anim.AnimationValue, len(g.Keyframes))
	for i := range g.Keyframes {
		kf := &g.Keyframes[i]
		if kf.Offset < 0 || kf.Offset > 1 {
			return out, fmt.Errorf("keyframe %d: offset %g outside [0, 1]", i, kf.Offset)
		}
		if i > 0 && kf.Offset < g.Keyframes[i-1].Offset {
			return out, fmt.Errorf("keyframe %d: offsets must not decrease", i)
		}
		v, err := decodeValue(prop, &kf.Value)
		if err != nil {
			return out, fmt.Errorf("keyframe %d: %w", i, err)
		}
		values[i] = v
	}

	for i := 0; i < len(g.Keyframes)-1; i++ {
		segEasing, err := ParseEasing(g.Keyframes[i].Easing)
		if err != nil {
			return out, fmt.Errorf("keyframe %d: %w", i, err)
		}
		out.Segments = append(out.Segments, anim.Segment{
			StartPortion: g.Keyframes[i].Offset,
			EndPortion:   g.Keyframes[i+1].Offset,
			From:         values[i],
			To:           values[i+1],
			Easing:       segEasing,
		})
	}
	return out, nil
}
