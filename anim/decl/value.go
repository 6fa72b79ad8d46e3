package decl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/animstore/anim"
	"gopkg.in/yaml.v3"
)

// decodeValue decodes a keyframe value for p. Angles are in degrees.
func decodeValue(p anim.Property, n *yaml.Node) (anim.AnimationValue, error) {
	switch p {
	case anim.PropertyOpacity, anim.PropertyOffsetDistance:
		var f float64
		if err := n.Decode(&f); err != nil {
			return anim.AnimationValue{}, err
		}
		return anim.AnimationValue{Number: f}, nil

	case anim.PropertyBackgroundColor:
		var s string
		if err := n.Decode(&s); err != nil {
			return anim.AnimationValue{}, err
		}
		c, err := ParseColor(s)
		if err != nil {
			return anim.AnimationValue{}, err
		}
		return anim.ColorKeyframe(c), nil

	case anim.PropertyTranslate:
		v, err := decodeVector(n, 0)
		if n.Kind == yaml.ScalarNode {
			v[1] = 0
		}
		return anim.AnimationValue{Vector: v}, err

	case anim.PropertyScale:
		v, err := decodeVector(n, 1)
		return anim.AnimationValue{Vector: v}, err

	case anim.PropertyRotate:
		r, err := decodeRotation(n)
		return anim.RotateKeyframe(r), err

	case anim.PropertyTransform:
		fns, err := decodeFunctions(n)
		return anim.TransformKeyframe(fns...), err

	case anim.PropertyOffsetPath:
		var s string
		if err := n.Decode(&s); err != nil {
			return anim.AnimationValue{}, err
		}
		path, err := ParsePath(s)
		if err != nil {
			return anim.AnimationValue{}, err
		}
		return anim.PathKeyframe(path), nil

	case anim.PropertyOffsetRotate:
		r, err := decodeOffsetRotate(n)
		return anim.OffsetRotateKeyframe(r), err
	}
	return anim.AnimationValue{}, fmt.Errorf("property %s has no value syntax", p)
}

// ParseColor parses #rgb, #rrggbb or #rrggbbaa.
func ParseColor(s string) (anim.Color, error) {
	alpha := 1.0
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid alpha in color %q", s)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return anim.ColorFromColorful(c, alpha), nil
}

// decodeVector accepts a scalar, used for x and y, or a list of 2 or 3 numbers. A
// missing z is fill. Translations only use a scalar for x.
func decodeVector(n *yaml.Node, fill float64) (mgl64.Vec3, error) {
	if n.Kind == yaml.ScalarNode {
		var f float64
		if err := n.Decode(&f); err != nil {
			return mgl64.Vec3{}, err
		}
		return mgl64.Vec3{f, f, fill}, nil
	}
	var list []float64
	if err := n.Decode(&list); err != nil {
		return mgl64.Vec3{}, err
	}
	return vector(list, fill)
}

func vector(list []float64, fill float64) (mgl64.Vec3, error) {
	switch len(list) {
	case 0:
		return mgl64.Vec3{fill, fill, fill}, nil
	case 2:
		return mgl64.Vec3{list[0], list[1], fill}, nil
	case 3:
		return mgl64.Vec3{list[0], list[1], list[2]}, nil
	}
	return mgl64.Vec3{}, fmt.Errorf("want 2 or 3 components, got %d", len(list))
}

func decodeRotation(n *yaml.Node) (anim.Rotation, error) {
	if n.Kind == yaml.ScalarNode {
		var deg float64
		if err := n.Decode(&deg); err != nil {
			return anim.Rotation{}, err
		}
		return anim.Rotation{Angle: mgl64.DegToRad(deg)}, nil
	}

	var r struct {
		Angle float64   `yaml:"angle"`
		Axis  []float64 `yaml:"axis"`
	}
	if err := n.Decode(&r); err != nil {
		return anim.Rotation{}, err
	}
	out := anim.Rotation{Angle: mgl64.DegToRad(r.Angle)}
	if len(r.Axis) > 0 {
		if len(r.Axis) != 3 {
			return anim.Rotation{}, fmt.Errorf("rotation axis needs 3 components")
		}
		out.Axis = mgl64.Vec3{r.Axis[0], r.Axis[1], r.Axis[2]}
	}
	return out, nil
}

// decodeFunctions decodes a transform list such as
// [{translate: [10, 0]}, {rotate: 45}, {scale: 2}].
func decodeFunctions(n *yaml.Node) ([]anim.TransformFunction, error) {
	var items []map[string]yaml.Node
	if err := n.Decode(&items); err != nil {
		return nil, err
	}

	fns := make([]anim.TransformFunction, 0, len(items))
	for i, item := range items {
		if len(item) != 1 {
			return nil, fmt.Errorf("transform function %d: want exactly one key", i)
		}
		for name, arg := range item {
			fn, err := decodeFunction(name, &arg)
			if err != nil {
				return nil, fmt.Errorf("transform function %d (%s): %w", i, name, err)
			}
			fns = append(fns, fn)
		}
	}
	return fns, nil
}

func decodeFunction(name string, arg *yaml.Node) (anim.TransformFunction, error) {
	switch name {
	case "translate":
		v, err := decodeVector(arg, 0)
		if arg.Kind == yaml.ScalarNode {
			v[1] = 0
		}
		return anim.TranslateFunc(v[0], v[1], v[2]), err
	case "scale":
		v, err := decodeVector(arg, 1)
		return anim.ScaleFunc(v[0], v[1], v[2]), err
	case "rotate":
		r, err := decodeRotation(arg)
		return anim.TransformFunction{Kind: anim.FuncRotate, Rotation: r}, err
	case "matrix":
		var m []float64
		if err := arg.Decode(&m); err != nil {
			return anim.TransformFunction{}, err
		}
		if len(m) != 16 {
			return anim.TransformFunction{}, fmt.Errorf("matrix needs 16 column-major values, got %d", len(m))
		}
		var mat mgl64.Mat4
		copy(mat[:], m)
		return anim.MatrixFunc(mat), nil
	}
	return anim.TransformFunction{}, fmt.Errorf("unknown transform function")
}

// decodeOffsetRotate accepts "auto", "auto <deg>" or a fixed angle in degrees.
func decodeOffsetRotate(n *yaml.Node) (anim.OffsetRotate, error) {
	var s string
	if err := n.Decode(&s); err != nil {
		return anim.OffsetRotate{}, err
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return anim.OffsetRotate{}, fmt.Errorf("empty offset-rotate")
	}

	var out anim.OffsetRotate
	if fields[0] == "auto" {
		out.Auto = true
		fields = fields[1:]
	}
	switch len(fields) {
	case 0:
	case 1:
		deg, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "deg"), 64)
		if err != nil {
			return anim.OffsetRotate{}, fmt.Errorf("invalid offset-rotate %q", s)
		}
		out.Angle = mgl64.DegToRad(deg)
	default:
		return anim.OffsetRotate{}, fmt.Errorf("invalid offset-rotate %q", s)
	}
	return out, nil
}
