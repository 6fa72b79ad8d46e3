package anim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
)

// Rotation is an angle in radians about an axis. A zero axis means the z axis.
type Rotation struct {
	Axis  mgl64.Vec3
	Angle float64
}

func (r Rotation) axis() mgl64.Vec3 {
	if r.Axis.Len() == 0 {
		return mgl64.Vec3{0, 0, 1}
	}
	return r.Axis.Normalize()
}

func (r Rotation) Mat4() mgl64.Mat4 {
	return mgl64.HomogRotate3D(r.Angle, r.axis())
}

// TransformFunctionKind identifies one function in a transform list.
type TransformFunctionKind uint8

const (
	FuncTranslate TransformFunctionKind = iota + 1
	FuncScale
	FuncRotate
	FuncMatrix
)

// TransformFunction is one entry of a transform list.
type TransformFunction struct {
	Kind     TransformFunctionKind
	Vector   mgl64.Vec3
	Rotation Rotation
	Matrix   mgl64.Mat4
}

func TranslateFunc(x, y, z float64) TransformFunction {
	return TransformFunction{Kind: FuncTranslate, Vector: mgl64.Vec3{x, y, z}}
}

func ScaleFunc(x, y, z float64) TransformFunction {
	return TransformFunction{Kind: FuncScale, Vector: mgl64.Vec3{x, y, z}}
}

func RotateFunc(angle float64) TransformFunction {
	return TransformFunction{Kind: FuncRotate, Rotation: Rotation{Angle: angle}}
}

func MatrixFunc(m mgl64.Mat4) TransformFunction {
	return TransformFunction{Kind: FuncMatrix, Matrix: m}
}

func (f TransformFunction) Mat4() mgl64.Mat4 {
	switch f.Kind {
	case FuncTranslate:
		return mgl64.Translate3D(f.Vector[0], f.Vector[1], f.Vector[2])
	case FuncScale:
		return mgl64.Scale3D(f.Vector[0], f.Vector[1], f.Vector[2])
	case FuncRotate:
		return f.Rotation.Mat4()
	case FuncMatrix:
		return f.Matrix
	}
	return mgl64.Ident4()
}

// identity returns the neutral function of the same kind, used to pad a missing list.
func (f TransformFunction) identity() TransformFunction {
	switch f.Kind {
	case FuncTranslate:
		return TranslateFunc(0, 0, 0)
	case FuncScale:
		return ScaleFunc(1, 1, 1)
	case FuncRotate:
		return TransformFunction{Kind: FuncRotate, Rotation: Rotation{Axis: f.Rotation.Axis}}
	}
	return MatrixFunc(mgl64.Ident4())
}

// OffsetRotate orients an entity along its motion path. With Auto the path direction
// is added to Angle.
type OffsetRotate struct {
	Auto  bool
	Angle float64
}

// AnimationValue is a keyframe value. Only the field matching the group's property
// is meaningful.
type AnimationValue struct {
	// Number holds opacity and offset-distance (a fraction of the path length).
	Number float64
	Color  Color
	// Vector holds translate (CSS pixels) and scale factors.
	Vector       mgl64.Vec3
	Rotation     Rotation
	Functions    []TransformFunction
	Path         *gg.Path
	OffsetRotate OffsetRotate
}

func OpacityKeyframe(v float64) AnimationValue         { return AnimationValue{Number: v} }
func ColorKeyframe(c Color) AnimationValue             { return AnimationValue{Color: c} }
func TranslateKeyframe(x, y, z float64) AnimationValue { return AnimationValue{Vector: mgl64.Vec3{x, y, z}} }
func ScaleKeyframe(x, y, z float64) AnimationValue     { return AnimationValue{Vector: mgl64.Vec3{x, y, z}} }
func RotateKeyframe(r Rotation) AnimationValue         { return AnimationValue{Rotation: r} }
func PathKeyframe(p *gg.Path) AnimationValue           { return AnimationValue{Path: p} }
func DistanceKeyframe(d float64) AnimationValue        { return AnimationValue{Number: d} }
func OffsetRotateKeyframe(r OffsetRotate) AnimationValue {
	return AnimationValue{OffsetRotate: r}
}
func TransformKeyframe(fns ...TransformFunction) AnimationValue {
	return AnimationValue{Functions: fns}
}

// Segment interpolates From to To over [StartPortion, EndPortion] of the iteration.
type Segment struct {
	StartPortion float64
	EndPortion   float64
	From         AnimationValue
	To           AnimationValue
	// Easing is applied to the segment-local progress. Nil means linear.
	Easing TimingFunction
}

// PropertyAnimationGroup animates a single property.
type PropertyAnimationGroup struct {
	Property Property
	Timing   Timing
	Segments []Segment

	// BaseValue is the static value used during transform composition while this
	// group produces nothing. Nil contributes identity.
	BaseValue *AnimationValue
}

// valueAt interpolates the segment covering an iteration progress. Progress outside
// [0, 1] extrapolates the first or last segment.
func (g *PropertyAnimationGroup) valueAt(progress float64) AnimationValue {
	i := 0
	for i < len(g.Segments)-1 && progress >= g.Segments[i].EndPortion {
		i++
	}
	seg := g.Segments[i]

	var local float64
	if span := seg.EndPortion - seg.StartPortion; span > 0 {
		local = (progress - seg.StartPortion) / span
	} else if progress >= seg.EndPortion {
		local = 1
	}
	if seg.Easing != nil {
		local = seg.Easing.Ease(local)
	}
	return interpolate(g.Property, seg.From, seg.To, local)
}

func validateGroups(groups []PropertyAnimationGroup, tc *TransformContext) error {
	if len(groups) == 0 {
		return fmt.Errorf("%w: no property animation groups", ErrInvalidTimeline)
	}

	kind := groups[0].Property.ValueKind()
	for i, g := range groups {
		k := g.Property.ValueKind()
		if k == 0 {
			return fmt.Errorf("%w: group %d has unknown property %s", ErrInvalidTimeline, i, g.Property)
		}
		if k != kind {
			return fmt.Errorf("%w: group %d animates %s alongside %s", ErrInvalidTimeline, i, g.Property, groups[0].Property)
		}
		if len(g.Segments) == 0 {
			return fmt.Errorf("%w: group %d (%s) has no segments", ErrInvalidTimeline, i, g.Property)
		}
		last := 0.0
		for j, seg := range g.Segments {
			if seg.StartPortion > seg.EndPortion || seg.StartPortion < last {
				return fmt.Errorf("%w: group %d (%s) segment %d portions out of order", ErrInvalidTimeline, i, g.Property, j)
			}
			if g.Property == PropertyOffsetPath && (seg.From.Path == nil || seg.To.Path == nil) {
				return fmt.Errorf("%w: group %d segment %d has no path", ErrInvalidTimeline, i, j)
			}
			last = seg.StartPortion
		}
	}

	if kind != KindTransform && len(groups) != 1 {
		return fmt.Errorf("%w: %d groups for %s, want 1", ErrInvalidTimeline, len(groups), groups[0].Property)
	}
	if kind == KindTransform && tc == nil {
		return ErrMissingTransformContext
	}
	return nil
}
