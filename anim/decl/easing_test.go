package decl_test

import (
	"testing"

	"github.com/plus3/animstore/anim"
	"github.com/plus3/animstore/anim/decl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEasing(t *testing.T) {
	t.Run("empty is linear", func(t *testing.T) {
		fn, err := decl.ParseEasing("")
		require.NoError(t, err)
		assert.Nil(t, fn)
	})

	t.Run("keywords", func(t *testing.T) {
		for _, name := range []string{"linear", "ease", "ease-in", "ease-out", "ease-in-out", "ease-out-bounce", "step-start"} {
			fn, err := decl.ParseEasing(name)
			require.NoError(t, err, name)
			assert.NotNil(t, fn, name)
		}
	})

	t.Run("cubic-bezier", func(t *testing.T) {
		fn, err := decl.ParseEasing("cubic-bezier(0, 0, 1, 1)")
		require.NoError(t, err)
		assert.InDelta(t, 0.3, fn.Ease(0.3), 1e-6)
	})

	t.Run("steps", func(t *testing.T) {
		fn, err := decl.ParseEasing("steps(4)")
		require.NoError(t, err)
		assert.Equal(t, anim.Steps(4, anim.JumpEnd).Ease(0.3), fn.Ease(0.3))

		fn, err = decl.ParseEasing("steps(2, jump-start)")
		require.NoError(t, err)
		assert.Equal(t, 0.5, fn.Ease(0))
	})

	t.Run("errors", func(t *testing.T) {
		for _, s := range []string{
			"wobble",
			"cubic-bezier(0, 0, 1)",
			"cubic-bezier(2, 0, 1, 1)",
			"cubic-bezier(a, 0, 1, 1)",
			"steps(0)",
			"steps(1, jump-none)",
			"steps(3, sideways)",
			"bounce(1)",
		} {
			_, err := decl.ParseEasing(s)
			assert.Error(t, err, s)
		}
	})
}
