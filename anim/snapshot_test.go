package anim_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/animstore/anim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotBinary(t *testing.T) {
	snap := anim.Snapshot{
		Transforms: []anim.TransformProperty{{Id: 3, Matrix: mgl64.Translate3D(1, 2, 3)}},
		Opacities:  []anim.OpacityProperty{{Id: 7, Opacity: 0.5}, {Id: 8, Opacity: 1}},
		Colors:     []anim.ColorProperty{{Id: 9, Color: 0x00FF00FF}},
	}

	data, err := snap.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, data, 12+136+2*12+12)

	var decoded anim.Snapshot
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, snap, decoded)

	t.Run("rejects truncated data", func(t *testing.T) {
		var s anim.Snapshot
		assert.Error(t, s.UnmarshalBinary(data[:len(data)-1]))
		assert.Error(t, s.UnmarshalBinary(data[:4]))
	})

	t.Run("empty snapshot", func(t *testing.T) {
		var empty anim.Snapshot
		data, err := empty.MarshalBinary()
		require.NoError(t, err)
		assert.Len(t, data, 12)

		var s anim.Snapshot
		require.NoError(t, s.UnmarshalBinary(data))
		assert.True(t, s.IsEmpty())
	})
}

func TestSnapshotSort(t *testing.T) {
	snap := anim.Snapshot{
		Opacities: []anim.OpacityProperty{{Id: 9}, {Id: 2}, {Id: 5}},
	}
	snap.Sort()
	assert.Equal(t, []anim.OpacityProperty{{Id: 2}, {Id: 5}, {Id: 9}}, snap.Opacities)
	assert.Equal(t, 3, snap.Len())
}
