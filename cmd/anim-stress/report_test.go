package main

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/plus3/animstore/anim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsFinalize(t *testing.T) {
	var s Stats
	s.Finalize()
	assert.Zero(t, s.Avg)

	for i := 1; i <= 100; i++ {
		s.Samples = append(s.Samples, time.Duration(101-i)*time.Millisecond)
	}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 100*time.Millisecond, s.Max)
	assert.Equal(t, 50500*time.Microsecond, s.Avg)
	assert.Equal(t, 99*time.Millisecond, s.P99)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:      time.Second,
		Entities:      10,
		Publish:       true,
		TotalUpdates:  60,
		SnapshotBytes: 2 * 1024 * 1024,
		Driver: anim.DriverStats{
			ActiveFrames: 60,
			Stages:       []anim.StageStats{{Name: "sample", ExecutionCount: 60}},
		},
	}
	var b strings.Builder
	require.NoError(t, r.Generate(&b))

	out := b.String()
	assert.Contains(t, out, "**Animated Entities:** 10")
	assert.Contains(t, out, "**Encoded Snapshot Data:** 2.00 MB")
	assert.Contains(t, out, "**sample:**")
	assert.NotContains(t, out, "GC Pause Durations")
}

func TestRandomTimelinesInstall(t *testing.T) {
	start := time.Unix(1000, 0)
	rng := rand.New(rand.NewPCG(1, 2))
	store := anim.NewStore()

	cmds := anim.NewCommands()
	for i := range 200 {
		groups, ctx := randomTimeline(rng, start)
		cmds.Install(anim.EntityId(i+1), groups, ctx)
	}
	require.NoError(t, store.Apply(cmds))
	assert.Equal(t, 200, store.Len())

	assert.True(t, store.SamplePass(start, start.Add(time.Second)))
	assert.False(t, store.CollectSnapshot().IsEmpty())
}
