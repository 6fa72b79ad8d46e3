package anim

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// SampleResult is the verdict of sampling one timeline.
type SampleResult uint8

const (
	// SampleNone means no group produced a value.
	SampleNone SampleResult = iota
	// SampleSkipped means the value equals the prior value.
	SampleSkipped
	// SampleSampled means Value holds a new value.
	SampleSampled
)

func (r SampleResult) String() string {
	switch r {
	case SampleSkipped:
		return "skipped"
	case SampleSampled:
		return "sampled"
	}
	return "none"
}

type SampleOutput struct {
	Result SampleResult
	Value  Value

	// Pending is set when some group has not reached its active interval yet.
	Pending bool
}

// transformSlots is the composition order of transform-contributing properties.
var transformSlots = [...]Property{
	PropertyTranslate,
	PropertyScale,
	PropertyRotate,
	PropertyOffsetPath,
	PropertyTransform,
}

// SampleGroups samples one entity's groups at curr. prior is the entity's cached
// value, if any, and prev the timestamp of the previous pass. SampleGroups does not
// retain any argument apart from the motion path cache in tc.
func SampleGroups(prev, curr time.Time, prior *Value, groups []PropertyAnimationGroup, tc *TransformContext) (SampleOutput, error) {
	if len(groups) == 0 {
		return SampleOutput{}, ErrInvalidTimeline
	}

	kind := groups[0].Property.ValueKind()
	timings := make([]ComputedTiming, len(groups))
	var out SampleOutput
	progressing := false
	for i := range groups {
		timings[i] = groups[i].Timing.Compute(curr)
		progressing = progressing || timings[i].HasProgress
		out.Pending = out.Pending || timings[i].Phase == PhaseBefore
	}
	if !progressing {
		return out, nil
	}

	if prior != nil && prior.kind == kind && timingUnchanged(groups, timings, prev) {
		out.Result = SampleSkipped
		return out, nil
	}

	var candidate Value
	switch kind {
	case KindOpacity:
		v := groups[0].valueAt(timings[0].Progress)
		candidate = NewOpacityValue(float32(v.Number))
	case KindColor:
		v := groups[0].valueAt(timings[0].Progress)
		candidate = NewColorValue(v.Color)
	case KindTransform:
		if tc == nil {
			return SampleOutput{}, ErrMissingTransformContext
		}
		css := composeTransform(groups, timings, tc)
		if !matrixIsFinite(css) {
			return SampleOutput{}, ErrNonFiniteTransform
		}
		frame := frameMatrix(css, tc.TransformData)
		candidate = NewTransformValue(deviceMatrix(frame, tc.TransformData), frame, tc.TransformData)
	default:
		return SampleOutput{}, ErrInvalidTimeline
	}

	if prior != nil && prior.sameAs(candidate) {
		out.Result = SampleSkipped
		return out, nil
	}
	out.Result = SampleSampled
	out.Value = candidate
	return out, nil
}

func timingUnchanged(groups []PropertyAnimationGroup, timings []ComputedTiming, prev time.Time) bool {
	for i := range groups {
		if groups[i].Timing.Compute(prev) != timings[i] {
			return false
		}
	}
	return true
}

// composeTransform builds the CSS-pixel matrix T·S·R·O·X from the transform groups.
func composeTransform(groups []PropertyAnimationGroup, timings []ComputedTiming, tc *TransformContext) mgl64.Mat4 {
	var values [PropertyOffsetRotate + 1]*AnimationValue
	for i := range groups {
		g := &groups[i]
		switch {
		case timings[i].HasProgress:
			v := g.valueAt(timings[i].Progress)
			values[g.Property] = &v
		case g.BaseValue != nil && values[g.Property] == nil:
			values[g.Property] = g.BaseValue
		}
	}

	m := mgl64.Ident4()
	for _, p := range transformSlots {
		switch p {
		case PropertyOffsetPath:
			m = m.Mul4(offsetMatrix(values[PropertyOffsetPath], values[PropertyOffsetDistance], values[PropertyOffsetRotate], tc))
		default:
			if v := values[p]; v != nil {
				m = m.Mul4(propertyMatrix(p, *v))
			}
		}
	}
	return m
}

func propertyMatrix(p Property, v AnimationValue) mgl64.Mat4 {
	switch p {
	case PropertyTranslate:
		return mgl64.Translate3D(v.Vector[0], v.Vector[1], v.Vector[2])
	case PropertyScale:
		return mgl64.Scale3D(v.Vector[0], v.Vector[1], v.Vector[2])
	case PropertyRotate:
		return v.Rotation.Mat4()
	case PropertyTransform:
		m := mgl64.Ident4()
		for _, f := range v.Functions {
			m = m.Mul4(f.Mat4())
		}
		return m
	}
	return mgl64.Ident4()
}

func offsetMatrix(path, distance, rotate *AnimationValue, tc *TransformContext) mgl64.Mat4 {
	if path == nil || path.Path == nil {
		return mgl64.Ident4()
	}
	fraction := 0.0
	if distance != nil {
		fraction = distance.Number
	}
	r := OffsetRotate{Auto: true}
	if rotate != nil {
		r = rotate.OffsetRotate
	}

	pt, direction := tc.motionPath().PointAt(path.Path, fraction)
	angle := r.Angle
	if r.Auto {
		angle += direction
	}
	return mgl64.Translate3D(pt.X, pt.Y, 0).Mul4(mgl64.HomogRotate3DZ(angle))
}
