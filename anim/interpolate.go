package anim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func discrete(a, b AnimationValue, t float64) AnimationValue {
	if t < 0.5 {
		return a
	}
	return b
}

func interpolate(p Property, a, b AnimationValue, t float64) AnimationValue {
	switch p {
	case PropertyOpacity, PropertyOffsetDistance:
		return AnimationValue{Number: lerp(a.Number, b.Number, t)}
	case PropertyBackgroundColor:
		return AnimationValue{Color: a.Color.Blend(b.Color, t)}
	case PropertyTranslate, PropertyScale:
		return AnimationValue{Vector: lerpVec3(a.Vector, b.Vector, t)}
	case PropertyRotate:
		return AnimationValue{Rotation: interpolateRotation(a.Rotation, b.Rotation, t)}
	case PropertyTransform:
		fns, ok := interpolateFunctions(a.Functions, b.Functions, t)
		if !ok {
			return discrete(a, b, t)
		}
		return AnimationValue{Functions: fns}
	case PropertyOffsetRotate:
		if a.OffsetRotate.Auto != b.OffsetRotate.Auto {
			return discrete(a, b, t)
		}
		return AnimationValue{OffsetRotate: OffsetRotate{
			Auto:  a.OffsetRotate.Auto,
			Angle: lerp(a.OffsetRotate.Angle, b.OffsetRotate.Angle, t),
		}}
	}
	return discrete(a, b, t)
}

func lerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return mgl64.Vec3{lerp(a[0], b[0], t), lerp(a[1], b[1], t), lerp(a[2], b[2], t)}
}

func interpolateRotation(a, b Rotation, t float64) Rotation {
	axisA, axisB := a.axis(), b.axis()
	if axisA.ApproxEqual(axisB) {
		return Rotation{Axis: axisA, Angle: lerp(a.Angle, b.Angle, t)}
	}

	q := mgl64.QuatSlerp(mgl64.QuatRotate(a.Angle, axisA), mgl64.QuatRotate(b.Angle, axisB), t)
	w := min(max(q.W, -1), 1)
	s := math.Sqrt(1 - w*w)
	if s < 1e-9 {
		return Rotation{Axis: mgl64.Vec3{0, 0, 1}}
	}
	return Rotation{Axis: q.V.Mul(1 / s), Angle: 2 * math.Acos(w)}
}

// interpolateFunctions interpolates two transform lists pairwise. It reports false when
// the lists do not line up and the caller must fall back to a discrete switch.
func interpolateFunctions(a, b []TransformFunction, t float64) ([]TransformFunction, bool) {
	switch {
	case len(a) == 0 && len(b) == 0:
		return nil, true
	case len(a) == 0:
		a = identityList(b)
	case len(b) == 0:
		b = identityList(a)
	}
	if len(a) != len(b) {
		return nil, false
	}

	out := make([]TransformFunction, len(a))
	for i := range a {
		fa, fb := a[i], b[i]
		if fa.Kind != fb.Kind {
			return nil, false
		}
		switch fa.Kind {
		case FuncTranslate, FuncScale:
			out[i] = TransformFunction{Kind: fa.Kind, Vector: lerpVec3(fa.Vector, fb.Vector, t)}
		case FuncRotate:
			out[i] = TransformFunction{Kind: FuncRotate, Rotation: interpolateRotation(fa.Rotation, fb.Rotation, t)}
		case FuncMatrix:
			if fa.Matrix != fb.Matrix {
				return nil, false
			}
			out[i] = fa
		}
	}
	return out, true
}

func identityList(fns []TransformFunction) []TransformFunction {
	out := make([]TransformFunction, len(fns))
	for i, f := range fns {
		out[i] = f.identity()
	}
	return out
}
