// Command anim-stress fills a store with randomized timelines and drives it as
// fast as possible, reporting per-frame timings and memory use.
//
// Profiling:
//
//	go build ./cmd/anim-stress
//	./anim-stress -profile mem
//	go tool pprof -http=":8000" ./anim-stress mem.pprof
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/animstore/anim"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The number of animated entities to install.")
	publish := flag.Bool("publish", true, "Encode every snapshot as if publishing it.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile to the working directory.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatalf("unknown profile mode %q", *profileMode)
	}

	log.Println("Starting animation stress test...")

	start := time.Now()
	store := anim.NewStore()
	rng := rand.New(rand.NewPCG(1, 2))

	log.Printf("Installing %d timelines...\n", *entityCount)
	cmds := anim.NewCommands()
	for i := range *entityCount {
		groups, ctx := randomTimeline(rng, start)
		cmds.Install(anim.EntityId(i+1), groups, ctx)
	}
	if err := store.Apply(cmds); err != nil {
		log.Fatalf("install: %v", err)
	}
	log.Println("Installation complete.")

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Publish:        *publish,
		GCPauseMetrics: *gcPauseMetrics,
	}

	var renderer anim.Renderer
	if *publish {
		renderer = anim.RendererFunc(func(_ context.Context, snap anim.Snapshot) error {
			data, err := snap.MarshalBinary()
			report.SnapshotBytes += int64(len(data))
			return err
		})
	}
	driver := anim.NewDriver(store, renderer)

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			frameStart := time.Now()
			if _, err := driver.Once(ctx, frameStart); err != nil {
				log.Printf("frame %d: %v", totalUpdates, err)
			}
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.FrameTime.Finalize()
	report.Driver = driver.Stats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Run finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
