package anim

import "errors"

var (
	// ErrInvalidTimeline is returned when a set of property animation groups is empty
	// where it must not be, or is internally inconsistent.
	ErrInvalidTimeline = errors.New("anim: invalid timeline")

	// ErrMissingTransformContext is returned when a transform-contributing group is
	// installed or sampled without a TransformContext.
	ErrMissingTransformContext = errors.New("anim: missing transform context")

	// ErrNonFiniteTransform is returned when transform composition produced NaN or Inf.
	ErrNonFiniteTransform = errors.New("anim: non-finite transform")
)
