package anim_test

import (
	"testing"

	"github.com/plus3/animstore/anim"
	"github.com/stretchr/testify/assert"
)

func TestColor(t *testing.T) {
	t.Run("packs channels as ABGR", func(t *testing.T) {
		c := anim.NewColor(0x00, 0xFF, 0x00, 0xFF)
		assert.Equal(t, anim.Color(0xFF00FF00), c)
		assert.Equal(t, uint8(0xFF), c.G())
		assert.Equal(t, uint8(0xFF), c.A())
	})

	t.Run("RGBA reorders for renderers", func(t *testing.T) {
		assert.Equal(t, uint32(0x00FF00FF), anim.Color(0xFF00FF00).RGBA())
		assert.Equal(t, uint32(0x11223344), anim.NewColor(0x11, 0x22, 0x33, 0x44).RGBA())
	})

	t.Run("blend interpolates rgb and alpha", func(t *testing.T) {
		black := anim.NewColor(0, 0, 0, 0)
		white := anim.NewColor(255, 255, 255, 255)

		mid := black.Blend(white, 0.5)
		assert.Equal(t, uint8(128), mid.R())
		assert.Equal(t, uint8(128), mid.B())
		assert.Equal(t, uint8(128), mid.A())

		assert.Equal(t, black, black.Blend(white, 0))
		assert.Equal(t, white, black.Blend(white, 1))
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "#11223344", anim.NewColor(0x11, 0x22, 0x33, 0x44).String())
	})
}
