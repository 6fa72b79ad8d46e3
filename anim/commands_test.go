package anim_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/animstore/anim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	hold := timing(0, ms(1000), anim.FillNone)

	t.Run("applies in queue order", func(t *testing.T) {
		store := anim.NewStore()
		cmds := anim.NewCommands()
		cmds.Install(1, []anim.PropertyAnimationGroup{opacityGroup(hold, 0, 1)}, nil)
		cmds.Install(2, []anim.PropertyAnimationGroup{opacityGroup(hold, 0, 1)}, nil)
		cmds.Remove(1)
		assert.Equal(t, 3, cmds.Len())

		require.NoError(t, store.Apply(cmds))
		assert.Equal(t, 1, store.Len())
		assert.Equal(t, 0, cmds.Len())

		store.View(func(txn *anim.Txn) {
			_, ok := txn.Groups(2)
			assert.True(t, ok)
		})
	})

	t.Run("clear discards earlier operations", func(t *testing.T) {
		store := anim.NewStore()
		require.NoError(t, store.Install(5, []anim.PropertyAnimationGroup{opacityGroup(hold, 0, 1)}, nil))

		cmds := anim.NewCommands()
		cmds.Install(1, []anim.PropertyAnimationGroup{opacityGroup(hold, 0, 1)}, nil)
		cmds.Clear()
		cmds.Install(2, []anim.PropertyAnimationGroup{opacityGroup(hold, 0, 1)}, nil)
		require.NoError(t, store.Apply(cmds))

		states := store.States()
		require.Len(t, states, 1)
		assert.Equal(t, anim.EntityId(2), states[0].Id)
	})

	t.Run("invalid batch applies nothing", func(t *testing.T) {
		store := anim.NewStore()
		cmds := anim.NewCommands()
		cmds.Install(1, []anim.PropertyAnimationGroup{opacityGroup(hold, 0, 1)}, nil)
		cmds.Install(2, []anim.PropertyAnimationGroup{translateGroup(hold, mgl64.Vec3{}, mgl64.Vec3{1, 0, 0})}, nil)
		cmds.Install(3, []anim.PropertyAnimationGroup{{Property: anim.PropertyOpacity}}, nil)

		err := store.Apply(cmds)
		assert.ErrorIs(t, err, anim.ErrMissingTransformContext)
		assert.ErrorIs(t, err, anim.ErrInvalidTimeline)
		assert.False(t, store.HasAnimations())
		assert.Equal(t, 3, cmds.Len())
	})

	t.Run("empty install queues a removal", func(t *testing.T) {
		store := anim.NewStore()
		require.NoError(t, store.Install(1, []anim.PropertyAnimationGroup{opacityGroup(hold, 0, 1)}, nil))

		cmds := anim.NewCommands()
		cmds.Install(1, nil, nil)
		require.NoError(t, store.Apply(cmds))
		assert.False(t, store.HasAnimations())
	})

	t.Run("deferred functions run after the batch", func(t *testing.T) {
		store := anim.NewStore()
		cmds := anim.NewCommands()
		cmds.Install(1, []anim.PropertyAnimationGroup{opacityGroup(hold, 0, 1)}, nil)

		var seen int
		cmds.Defer(func() { seen = store.Len() })
		require.NoError(t, store.Apply(cmds))
		assert.Equal(t, 1, seen)
	})

	t.Run("reinstall marks the entity as replaced", func(t *testing.T) {
		store := anim.NewStore()
		require.NoError(t, store.Install(1, []anim.PropertyAnimationGroup{opacityGroup(hold, 0, 1)}, nil))
		store.SamplePass(epoch, at(ms(500)))

		cmds := anim.NewCommands()
		cmds.Install(1, []anim.PropertyAnimationGroup{opacityGroup(timing(ms(3000), ms(1000), anim.FillNone), 0, 1)}, nil)
		require.NoError(t, store.Apply(cmds))

		store.SamplePass(at(ms(500)), at(ms(600)))
		_, ok := store.Value(1)
		assert.False(t, ok)
	})
}
