package anim

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Renderer consumes the per-frame property batch.
type Renderer interface {
	ApplyProperties(ctx context.Context, snap Snapshot) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, snap Snapshot) error

func (f RendererFunc) ApplyProperties(ctx context.Context, snap Snapshot) error {
	return f(ctx, snap)
}

// DriverStats provides statistics about driver execution.
type DriverStats struct {
	Frames        int64
	ActiveFrames  int64
	PublishErrors int64
	LastSnapshot  int
	Stages        []StageStats
}

// StageStats provides execution statistics for one stage of a frame.
type StageStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type stageStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func (s *stageStatsInternal) record(d time.Duration) {
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d
	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

const (
	stageSample = iota
	stageCollect
	stagePublish
	stageCount
)

var stageNames = [stageCount]string{"sample", "collect", "publish"}

// Driver samples a Store once per frame and hands the resulting snapshot to a
// Renderer.
type Driver struct {
	store    *Store
	renderer Renderer

	// ClearWhenIdle clears the store after a frame in which no timeline was active,
	// unless a producer changed the store while the frame was published.
	ClearWhenIdle bool

	mu            sync.Mutex
	last          time.Time
	stages        [stageCount]stageStatsInternal
	frames        int64
	activeFrames  int64
	publishErrors int64
	lastSnapshot  int
}

// NewDriver creates a driver. renderer may be nil, in which case snapshots are
// collected but not published.
func NewDriver(store *Store, renderer Renderer) *Driver {
	d := &Driver{store: store, renderer: renderer}
	for i := range d.stages {
		d.stages[i] = stageStatsInternal{
			name:        stageNames[i],
			minDuration: time.Duration(1<<63 - 1),
		}
	}
	return d
}

// Store returns the store the driver samples.
func (d *Driver) Store() *Store { return d.store }

// Once runs one frame at now: a sample pass since the previous frame, snapshot
// collection and publication. It reports whether the store is still animating. A
// renderer error is returned after the frame's bookkeeping is done.
func (d *Driver) Once(ctx context.Context, now time.Time) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	prev := d.last
	if prev.IsZero() {
		prev = now
	}

	start := time.Now()
	active, gen := d.store.SampleGeneration(prev, now)
	d.stages[stageSample].record(time.Since(start))

	start = time.Now()
	snap := d.store.CollectSnapshot()
	snap.Sort()
	d.stages[stageCollect].record(time.Since(start))

	var err error
	if d.renderer != nil {
		start = time.Now()
		err = d.renderer.ApplyProperties(ctx, snap)
		d.stages[stagePublish].record(time.Since(start))
		if err != nil {
			d.publishErrors++
			Logger().Warn("anim: publishing snapshot failed", slog.Any("error", err))
		}
	}

	if !active && d.ClearWhenIdle {
		d.store.ClearIfUnchanged(gen)
	}

	d.last = now
	d.frames++
	d.lastSnapshot = snap.Len()
	if active {
		d.activeFrames++
	}
	return active, err
}

// Run executes frames at the given interval until the context is cancelled. Renderer
// errors are logged and do not stop the loop.
func (d *Driver) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	Logger().Info("anim: driver started", slog.Duration("interval", interval))
	defer Logger().Info("anim: driver stopped")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			d.Once(ctx, now)
		}
	}
}

// Stats returns statistics about frame execution.
func (d *Driver) Stats() DriverStats {
	d.mu.Lock()
	defer d.mu.Unlock()

	stats := DriverStats{
		Frames:        d.frames,
		ActiveFrames:  d.activeFrames,
		PublishErrors: d.publishErrors,
		LastSnapshot:  d.lastSnapshot,
		Stages:        make([]StageStats, 0, len(d.stages)),
	}
	for _, internal := range d.stages {
		if internal.executionCount == 0 {
			continue
		}
		stats.Stages = append(stats.Stages, StageStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    internal.totalDuration / time.Duration(internal.executionCount),
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		})
	}
	return stats
}
