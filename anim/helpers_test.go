package anim_test

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/animstore/anim"
)

// epoch is the start time shared by test timelines.
var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) time.Time { return epoch.Add(d) }

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func timing(delay, duration time.Duration, fill anim.Fill) anim.Timing {
	return anim.Timing{
		StartTime: epoch,
		Delay:     delay,
		Duration:  duration,
		Fill:      fill,
	}
}

func segment(from, to anim.AnimationValue) []anim.Segment {
	return []anim.Segment{{StartPortion: 0, EndPortion: 1, From: from, To: to}}
}

func opacityGroup(t anim.Timing, from, to float64) anim.PropertyAnimationGroup {
	return anim.PropertyAnimationGroup{
		Property: anim.PropertyOpacity,
		Timing:   t,
		Segments: segment(anim.OpacityKeyframe(from), anim.OpacityKeyframe(to)),
	}
}

func colorGroup(t anim.Timing, from, to anim.Color) anim.PropertyAnimationGroup {
	return anim.PropertyAnimationGroup{
		Property: anim.PropertyBackgroundColor,
		Timing:   t,
		Segments: segment(anim.ColorKeyframe(from), anim.ColorKeyframe(to)),
	}
}

func translateGroup(t anim.Timing, from, to mgl64.Vec3) anim.PropertyAnimationGroup {
	return anim.PropertyAnimationGroup{
		Property: anim.PropertyTranslate,
		Timing:   t,
		Segments: segment(anim.TranslateKeyframe(from[0], from[1], from[2]), anim.TranslateKeyframe(to[0], to[1], to[2])),
	}
}

func scaleGroup(t anim.Timing, from, to mgl64.Vec3) anim.PropertyAnimationGroup {
	return anim.PropertyAnimationGroup{
		Property: anim.PropertyScale,
		Timing:   t,
		Segments: segment(anim.ScaleKeyframe(from[0], from[1], from[2]), anim.ScaleKeyframe(to[0], to[1], to[2])),
	}
}

func matrixInDelta(a, b mgl64.Mat4) bool {
	return a.ApproxEqualThreshold(b, 1e-6)
}
