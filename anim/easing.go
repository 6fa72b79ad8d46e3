package anim

import (
	"math"

	"github.com/fogleman/ease"
	"github.com/gogpu/gg"
)

// TimingFunction maps an input progress to an eased progress. Inputs outside [0, 1]
// are legal and may be extrapolated.
type TimingFunction interface {
	Ease(progress float64) float64
}

// EasingFunc adapts a plain easing curve to TimingFunction.
type EasingFunc func(float64) float64

func (f EasingFunc) Ease(progress float64) float64 { return f(progress) }

var (
	Linear TimingFunction = EasingFunc(ease.Linear)

	EaseInQuad      TimingFunction = EasingFunc(ease.InQuad)
	EaseOutQuad     TimingFunction = EasingFunc(ease.OutQuad)
	EaseInOutQuad   TimingFunction = EasingFunc(ease.InOutQuad)
	EaseInCubic     TimingFunction = EasingFunc(ease.InCubic)
	EaseOutCubic    TimingFunction = EasingFunc(ease.OutCubic)
	EaseInOutCubic  TimingFunction = EasingFunc(ease.InOutCubic)
	EaseInSine      TimingFunction = EasingFunc(ease.InSine)
	EaseOutSine     TimingFunction = EasingFunc(ease.OutSine)
	EaseInOutSine   TimingFunction = EasingFunc(ease.InOutSine)
	EaseOutBounce   TimingFunction = EasingFunc(ease.OutBounce)
	EaseInOutBounce TimingFunction = EasingFunc(ease.InOutBounce)

	// CSS keyword curves.
	Ease      = CubicBezier(0.25, 0.1, 0.25, 1)
	EaseIn    = CubicBezier(0.42, 0, 1, 1)
	EaseOut   = CubicBezier(0, 0, 0.58, 1)
	EaseInOut = CubicBezier(0.42, 0, 0.58, 1)
)

type cubicBezier struct {
	curve          gg.CubicBez
	x1, y1, x2, y2 float64
}

// CubicBezier returns a timing function over the curve (0,0) (x1,y1) (x2,y2) (1,1).
// x1 and x2 are clamped to [0, 1].
func CubicBezier(x1, y1, x2, y2 float64) TimingFunction {
	x1 = min(max(x1, 0), 1)
	x2 = min(max(x2, 0), 1)
	return cubicBezier{
		curve: gg.NewCubicBez(gg.Pt(0, 0), gg.Pt(x1, y1), gg.Pt(x2, y2), gg.Pt(1, 1)),
		x1:    x1,
		y1:    y1,
		x2:    x2,
		y2:    y2,
	}
}

func (c cubicBezier) Ease(x float64) float64 {
	switch {
	case x <= 0:
		if c.x1 > 0 {
			return c.y1 / c.x1 * x
		}
		if c.y1 == 0 && c.x2 > 0 {
			return c.y2 / c.x2 * x
		}
		return 0
	case x >= 1:
		if c.x2 < 1 {
			return 1 + (c.y2-1)/(c.x2-1)*(x-1)
		}
		if c.y2 == 1 && c.x1 < 1 {
			return 1 + (c.y1-1)/(c.x1-1)*(x-1)
		}
		return 1
	}

	// x(t) is monotonic on [0, 1] because x1 and x2 are clamped.
	lo, hi := 0.0, 1.0
	t := x
	for range 48 {
		px := c.curve.Eval(t).X
		if math.Abs(px-x) < 1e-9 {
			break
		}
		if px < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return c.curve.Eval(t).Y
}

// StepPosition selects where the jumps of a step function happen.
type StepPosition uint8

const (
	JumpEnd StepPosition = iota
	JumpStart
	JumpNone
	JumpBoth
)

type steps struct {
	count    int
	position StepPosition
}

// Steps returns a step timing function with count intervals.
func Steps(count int, position StepPosition) TimingFunction {
	if count < 1 {
		count = 1
	}
	if position == JumpNone && count < 2 {
		count = 2
	}
	return steps{count: count, position: position}
}

func (s steps) Ease(x float64) float64 {
	step := math.Floor(x * float64(s.count))
	if s.position == JumpStart || s.position == JumpBoth {
		step++
	}

	jumps := float64(s.count)
	switch s.position {
	case JumpBoth:
		jumps++
	case JumpNone:
		jumps--
	}

	if x >= 0 && step < 0 {
		step = 0
	}
	if x <= 1 && step > jumps {
		step = jumps
	}
	return step / jumps
}
