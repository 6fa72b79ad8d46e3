package anim

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	KindTransform ValueKind = iota + 1
	KindOpacity
	KindColor
)

func (k ValueKind) String() string {
	switch k {
	case KindTransform:
		return "transform"
	case KindOpacity:
		return "opacity"
	case KindColor:
		return "color"
	}
	return fmt.Sprintf("ValueKind(%d)", uint8(k))
}

// AnimationTransform is a sampled transform. DeviceMatrix is what the compositor
// applies; FrameMatrix is the pre-ancestor-scale matrix used for introspection.
type AnimationTransform struct {
	DeviceMatrix mgl64.Mat4
	FrameMatrix  mgl64.Mat4
	Data         TransformData
}

// Value is a sampled animation value: exactly one of a transform, an opacity or a color.
type Value struct {
	kind      ValueKind
	transform AnimationTransform
	opacity   float32
	color     Color
}

func NewTransformValue(device, frame mgl64.Mat4, data TransformData) Value {
	return Value{
		kind:      KindTransform,
		transform: AnimationTransform{DeviceMatrix: device, FrameMatrix: frame, Data: data},
	}
}

func NewOpacityValue(opacity float32) Value {
	return Value{kind: KindOpacity, opacity: opacity}
}

func NewColorValue(color Color) Value {
	return Value{kind: KindColor, color: color}
}

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) Is(kind ValueKind) bool { return v.kind == kind }

// Transform returns the transform variant. It panics if the value is not a transform.
func (v Value) Transform() AnimationTransform {
	v.mustBe(KindTransform)
	return v.transform
}

// Opacity returns the opacity variant. It panics if the value is not an opacity.
func (v Value) Opacity() float32 {
	v.mustBe(KindOpacity)
	return v.opacity
}

// Color returns the color variant. It panics if the value is not a color.
func (v Value) Color() Color {
	v.mustBe(KindColor)
	return v.color
}

func (v Value) mustBe(kind ValueKind) {
	if v.kind != kind {
		panic(fmt.Sprintf("anim: value is %s, not %s", v.kind, kind))
	}
}

// sameAs reports whether a freshly sampled candidate leaves v visually unchanged.
func (v Value) sameAs(candidate Value) bool {
	if v.kind != candidate.kind {
		return false
	}
	switch v.kind {
	case KindTransform:
		return matrixApproxEqual(v.transform.DeviceMatrix, candidate.transform.DeviceMatrix)
	case KindOpacity:
		return v.opacity == candidate.opacity
	case KindColor:
		return v.color == candidate.color
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case KindTransform:
		return fmt.Sprintf("transform%v", v.transform.DeviceMatrix)
	case KindOpacity:
		return fmt.Sprintf("opacity(%g)", v.opacity)
	case KindColor:
		return fmt.Sprintf("color(%s)", v.color)
	}
	return "none"
}
