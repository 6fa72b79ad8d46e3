package anim

import "fmt"

// Property is an animatable property.
type Property uint8

const (
	PropertyOpacity Property = iota + 1
	PropertyBackgroundColor
	PropertyTranslate
	PropertyScale
	PropertyRotate
	PropertyTransform
	PropertyOffsetPath
	PropertyOffsetDistance
	PropertyOffsetRotate
)

var propertyNames = map[Property]string{
	PropertyOpacity:         "opacity",
	PropertyBackgroundColor: "background-color",
	PropertyTranslate:       "translate",
	PropertyScale:           "scale",
	PropertyRotate:          "rotate",
	PropertyTransform:       "transform",
	PropertyOffsetPath:      "offset-path",
	PropertyOffsetDistance:  "offset-distance",
	PropertyOffsetRotate:    "offset-rotate",
}

func (p Property) String() string {
	if name, ok := propertyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Property(%d)", uint8(p))
}

// ParseProperty returns the Property with the given CSS name.
func ParseProperty(name string) (Property, error) {
	for p, n := range propertyNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("anim: unknown property %q", name)
}

// IsTransformLike reports whether the property contributes to the composed transform.
func (p Property) IsTransformLike() bool {
	switch p {
	case PropertyTranslate, PropertyScale, PropertyRotate, PropertyTransform,
		PropertyOffsetPath, PropertyOffsetDistance, PropertyOffsetRotate:
		return true
	}
	return false
}

// ValueKind returns the kind of sampled value the property produces.
func (p Property) ValueKind() ValueKind {
	switch {
	case p == PropertyOpacity:
		return KindOpacity
	case p == PropertyBackgroundColor:
		return KindColor
	case p.IsTransformLike():
		return KindTransform
	}
	return 0
}
