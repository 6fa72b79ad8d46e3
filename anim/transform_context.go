package anim

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
)

// TransformData holds the reference-frame parameters a transform is sampled against.
type TransformData struct {
	// Origin is the offset of the entity in its reference frame, in CSS pixels.
	Origin gg.Point
	// TransformOrigin is relative to the entity, in CSS pixels.
	TransformOrigin mgl64.Vec3
	// DevicePixelRatio is device pixels per CSS pixel. Zero means 1.
	DevicePixelRatio float64
	// InheritedScale is the ancestors' accumulated scale. A zero component means 1.
	InheritedScale gg.Point
}

func (d TransformData) ratio() float64 {
	if d.DevicePixelRatio == 0 {
		return 1
	}
	return d.DevicePixelRatio
}

func (d TransformData) inheritedScale() (float64, float64) {
	x, y := d.InheritedScale.X, d.InheritedScale.Y
	if x == 0 {
		x = 1
	}
	if y == 0 {
		y = 1
	}
	return x, y
}

// TransformContext is the per-timeline state needed to compose transform groups.
type TransformContext struct {
	TransformData

	// MotionPath memoizes offset-path geometry. Created on first use when nil.
	MotionPath *MotionPathCache
}

func (tc *TransformContext) motionPath() *MotionPathCache {
	if tc.MotionPath == nil {
		tc.MotionPath = &MotionPathCache{}
	}
	return tc.MotionPath
}
