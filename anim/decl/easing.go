package decl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/plus3/animstore/anim"
)

var namedEasings = map[string]anim.TimingFunction{
	"linear":             anim.Linear,
	"ease":               anim.Ease,
	"ease-in":            anim.EaseIn,
	"ease-out":           anim.EaseOut,
	"ease-in-out":        anim.EaseInOut,
	"ease-in-quad":       anim.EaseInQuad,
	"ease-out-quad":      anim.EaseOutQuad,
	"ease-in-out-quad":   anim.EaseInOutQuad,
	"ease-in-cubic":      anim.EaseInCubic,
	"ease-out-cubic":     anim.EaseOutCubic,
	"ease-in-out-cubic":  anim.EaseInOutCubic,
	"ease-in-sine":       anim.EaseInSine,
	"ease-out-sine":      anim.EaseOutSine,
	"ease-in-out-sine":   anim.EaseInOutSine,
	"ease-out-bounce":    anim.EaseOutBounce,
	"ease-in-out-bounce": anim.EaseInOutBounce,
	"step-start":         anim.Steps(1, anim.JumpStart),
	"step-end":           anim.Steps(1, anim.JumpEnd),
}

var stepPositions = map[string]anim.StepPosition{
	"jump-start": anim.JumpStart,
	"start":      anim.JumpStart,
	"jump-end":   anim.JumpEnd,
	"end":        anim.JumpEnd,
	"jump-none":  anim.JumpNone,
	"jump-both":  anim.JumpBoth,
}

// ParseEasing parses a CSS-like easing: a keyword, cubic-bezier(x1, y1, x2, y2) or
// steps(n[, position]). An empty string yields nil, which the sampler treats as linear.
func ParseEasing(s string) (anim.TimingFunction, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if fn, ok := namedEasings[s]; ok {
		return fn, nil
	}

	name, args, ok := splitCall(s)
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", s)
	}

	switch name {
	case "cubic-bezier":
		if len(args) != 4 {
			return nil, fmt.Errorf("cubic-bezier takes 4 arguments, got %d", len(args))
		}
		var p [4]float64
		for i, a := range args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return nil, fmt.Errorf("cubic-bezier argument %d: %w", i, err)
			}
			p[i] = v
		}
		if p[0] < 0 || p[0] > 1 || p[2] < 0 || p[2] > 1 {
			return nil, fmt.Errorf("cubic-bezier x values must be in [0, 1]")
		}
		return anim.CubicBezier(p[0], p[1], p[2], p[3]), nil

	case "steps":
		if len(args) < 1 || len(args) > 2 {
			return nil, fmt.Errorf("steps takes 1 or 2 arguments, got %d", len(args))
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid step count %q", args[0])
		}
		pos := anim.JumpEnd
		if len(args) == 2 {
			if pos, ok = stepPositions[args[1]]; !ok {
				return nil, fmt.Errorf("unknown step position %q", args[1])
			}
		}
		if pos == anim.JumpNone && n < 2 {
			return nil, fmt.Errorf("steps with jump-none needs at least 2 steps")
		}
		return anim.Steps(n, pos), nil
	}
	return nil, fmt.Errorf("unknown easing function %q", name)
}

// splitCall splits "name(a, b)" into its name and trimmed arguments.
func splitCall(s string) (string, []string, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	name := strings.TrimSpace(s[:open])
	inner := s[open+1 : len(s)-1]
	var args []string
	for _, a := range strings.Split(inner, ",") {
		args = append(args, strings.TrimSpace(a))
	}
	return name, args, true
}
