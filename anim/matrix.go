package anim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const matrixTolerance = 1e-5

func matrixApproxEqual(a, b mgl64.Mat4) bool {
	return a.ApproxEqualThreshold(b, matrixTolerance)
}

func matrixIsFinite(m mgl64.Mat4) bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// changeBasis returns m applied about origin instead of about zero.
func changeBasis(m mgl64.Mat4, origin mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(origin[0], origin[1], origin[2]).
		Mul4(m).
		Mul4(mgl64.Translate3D(-origin[0], -origin[1], -origin[2]))
}

// toDevicePixels rescales a CSS-pixel matrix so its translation is in device pixels.
func toDevicePixels(m mgl64.Mat4, ratio float64) mgl64.Mat4 {
	if ratio == 1 {
		return m
	}
	return mgl64.Scale3D(ratio, ratio, ratio).Mul4(m).Mul4(mgl64.Scale3D(1/ratio, 1/ratio, 1/ratio))
}

// frameMatrix rebases a CSS-pixel transform onto its transform origin in device pixels.
func frameMatrix(css mgl64.Mat4, data TransformData) mgl64.Mat4 {
	ratio := data.ratio()
	return changeBasis(toDevicePixels(css, ratio), data.TransformOrigin.Mul(ratio))
}

// deviceMatrix places a frame matrix in its reference frame and applies the
// inherited ancestor scale.
func deviceMatrix(frame mgl64.Mat4, data TransformData) mgl64.Mat4 {
	ratio := data.ratio()
	sx, sy := data.inheritedScale()
	return mgl64.Scale3D(sx, sy, 1).
		Mul4(mgl64.Translate3D(data.Origin.X*ratio, data.Origin.Y*ratio, 0)).
		Mul4(frame)
}

// cssMatrix undoes frameMatrix, giving the transform in CSS pixels about zero.
func cssMatrix(frame mgl64.Mat4, data TransformData) mgl64.Mat4 {
	ratio := data.ratio()
	m := changeBasis(frame, data.TransformOrigin.Mul(-ratio))
	return toDevicePixels(m, 1/ratio)
}
