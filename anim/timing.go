package anim

import (
	"math"
	"time"
)

// Direction controls which way successive iterations play.
type Direction uint8

const (
	DirectionNormal Direction = iota
	DirectionReverse
	DirectionAlternate
	DirectionAlternateReverse
)

// Fill controls whether boundary values apply outside the active interval.
type Fill uint8

const (
	FillNone Fill = iota
	FillForwards
	FillBackwards
	FillBoth
)

func (f Fill) backwards() bool { return f == FillBackwards || f == FillBoth }
func (f Fill) forwards() bool  { return f == FillForwards || f == FillBoth }

// Phase is the position of a local time relative to the active interval.
type Phase uint8

const (
	PhaseBefore Phase = iota
	PhaseActive
	PhaseAfter
)

// Timing describes when and how a property animation group plays.
type Timing struct {
	StartTime time.Time
	Delay     time.Duration
	EndDelay  time.Duration
	Duration  time.Duration

	// Iterations may be math.Inf(1). Zero means a single iteration.
	Iterations     float64
	IterationStart float64
	Direction      Direction
	Fill           Fill

	// PlaybackRate scales local time. Zero means 1.
	PlaybackRate float64

	// Easing applies to the whole iteration, before per-segment easing. Nil means linear.
	Easing TimingFunction
}

// ComputedTiming is the result of evaluating a Timing at one instant.
type ComputedTiming struct {
	Phase       Phase
	HasProgress bool
	Progress    float64
	Iteration   float64
}

// Compute evaluates the timing at now.
func (t Timing) Compute(now time.Time) ComputedTiming {
	rate := t.PlaybackRate
	if rate == 0 {
		rate = 1
	}
	iterations := t.Iterations
	if iterations == 0 {
		iterations = 1
	}

	local := now.Sub(t.StartTime).Seconds() * rate
	delay := t.Delay.Seconds()
	duration := t.Duration.Seconds()

	var activeDuration float64
	if duration > 0 {
		activeDuration = duration * iterations
	}
	endTime := math.Max(delay+activeDuration+t.EndDelay.Seconds(), 0)
	beforeBoundary := math.Max(math.Min(delay, endTime), 0)
	afterBoundary := math.Max(math.Min(delay+activeDuration, endTime), 0)

	var phase Phase
	switch {
	case local < beforeBoundary || (rate < 0 && local == beforeBoundary):
		phase = PhaseBefore
	case local > afterBoundary || (rate >= 0 && local == afterBoundary):
		phase = PhaseAfter
	default:
		phase = PhaseActive
	}

	var activeTime float64
	switch phase {
	case PhaseBefore:
		if !t.Fill.backwards() {
			return ComputedTiming{Phase: phase}
		}
		activeTime = math.Max(local-delay, 0)
	case PhaseActive:
		activeTime = local - delay
	case PhaseAfter:
		if !t.Fill.forwards() {
			return ComputedTiming{Phase: phase}
		}
		activeTime = math.Max(math.Min(local-delay, activeDuration), 0)
	}

	var overall float64
	if duration == 0 {
		if phase != PhaseBefore {
			overall = iterations
		}
	} else {
		overall = activeTime / duration
	}
	overall += t.IterationStart

	var simple float64
	if math.IsInf(overall, 1) {
		simple = math.Mod(t.IterationStart, 1)
	} else {
		simple = math.Mod(overall, 1)
	}
	if simple == 0 && overall != 0 && phase != PhaseBefore && activeTime == activeDuration {
		simple = 1
	}

	var iteration float64
	switch {
	case phase == PhaseAfter && math.IsInf(iterations, 1):
		iteration = math.Inf(1)
	case simple == 1:
		iteration = math.Floor(overall) - 1
	default:
		iteration = math.Floor(overall)
	}

	if !t.playsForwards(iteration) {
		simple = 1 - simple
	}

	progress := simple
	if t.Easing != nil {
		progress = t.Easing.Ease(simple)
	}

	return ComputedTiming{
		Phase:       phase,
		HasProgress: true,
		Progress:    progress,
		Iteration:   iteration,
	}
}

func (t Timing) playsForwards(iteration float64) bool {
	switch t.Direction {
	case DirectionReverse:
		return false
	case DirectionAlternate, DirectionAlternateReverse:
		odd := !math.IsInf(iteration, 0) && math.Mod(iteration, 2) == 1
		if t.Direction == DirectionAlternateReverse {
			return odd
		}
		return !odd
	}
	return true
}
