package main

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
	"github.com/plus3/animstore/anim"
)

var easings = []anim.TimingFunction{
	nil,
	anim.Ease,
	anim.EaseInOut,
	anim.CubicBezier(0.68, -0.55, 0.27, 1.55),
	anim.Steps(4, anim.JumpEnd),
	anim.EaseOutBounce,
}

func randomTiming(rng *rand.Rand, start time.Time) anim.Timing {
	return anim.Timing{
		StartTime:    start,
		Delay:        time.Duration(rng.IntN(500)) * time.Millisecond,
		Duration:     time.Duration(250+rng.IntN(2000)) * time.Millisecond,
		Iterations:   math.Inf(1),
		Direction:    anim.Direction(rng.IntN(4)),
		Fill:         anim.FillBoth,
		PlaybackRate: 0.5 + rng.Float64()*1.5,
		Easing:       easings[rng.IntN(len(easings))],
	}
}

func twoStop(from, to anim.AnimationValue) []anim.Segment {
	return []anim.Segment{{StartPortion: 0, EndPortion: 1, From: from, To: to}}
}

// randomTimeline returns an opacity, color or transform timeline with roughly
// equal probability.
func randomTimeline(rng *rand.Rand, start time.Time) ([]anim.PropertyAnimationGroup, *anim.TransformContext) {
	switch rng.IntN(3) {
	case 0:
		return []anim.PropertyAnimationGroup{{
			Property: anim.PropertyOpacity,
			Timing:   randomTiming(rng, start),
			Segments: twoStop(anim.OpacityKeyframe(rng.Float64()), anim.OpacityKeyframe(rng.Float64())),
		}}, nil
	case 1:
		from := anim.NewColor(uint8(rng.IntN(256)), uint8(rng.IntN(256)), uint8(rng.IntN(256)), 255)
		to := anim.NewColor(uint8(rng.IntN(256)), uint8(rng.IntN(256)), uint8(rng.IntN(256)), 255)
		return []anim.PropertyAnimationGroup{{
			Property: anim.PropertyBackgroundColor,
			Timing:   randomTiming(rng, start),
			Segments: twoStop(anim.ColorKeyframe(from), anim.ColorKeyframe(to)),
		}}, nil
	}

	groups := []anim.PropertyAnimationGroup{
		{
			Property: anim.PropertyTranslate,
			Timing:   randomTiming(rng, start),
			Segments: twoStop(anim.TranslateKeyframe(0, 0, 0), anim.TranslateKeyframe(rng.Float64()*200, rng.Float64()*200, 0)),
		},
		{
			Property: anim.PropertyRotate,
			Timing:   randomTiming(rng, start),
			Segments: twoStop(anim.RotateKeyframe(anim.Rotation{}), anim.RotateKeyframe(anim.Rotation{Angle: 2 * math.Pi})),
		},
	}
	if rng.IntN(4) == 0 {
		path := gg.NewPath()
		path.MoveTo(0, 0)
		path.CubicTo(50, 0, 50, 50, 100, 50)
		groups = append(groups,
			anim.PropertyAnimationGroup{
				Property: anim.PropertyOffsetPath,
				Timing:   randomTiming(rng, start),
				Segments: twoStop(anim.PathKeyframe(path), anim.PathKeyframe(path)),
			},
			anim.PropertyAnimationGroup{
				Property: anim.PropertyOffsetDistance,
				Timing:   randomTiming(rng, start),
				Segments: twoStop(anim.DistanceKeyframe(0), anim.DistanceKeyframe(1)),
			},
		)
	}

	ctx := &anim.TransformContext{
		TransformData: anim.TransformData{
			TransformOrigin:  mgl64.Vec3{25, 25, 0},
			DevicePixelRatio: 2,
		},
	}
	return groups, ctx
}
