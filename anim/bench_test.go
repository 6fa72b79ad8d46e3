package anim_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/animstore/anim"
)

func newBenchStore(b *testing.B, n int) *anim.Store {
	b.Helper()
	store := anim.NewStore()
	tm := timing(0, ms(1000), anim.FillNone)
	tm.Iterations = math.Inf(1)
	for i := 0; i < n; i++ {
		var err error
		switch i % 3 {
		case 0:
			err = store.Install(anim.EntityId(i), []anim.PropertyAnimationGroup{opacityGroup(tm, 0, 1)}, nil)
		case 1:
			err = store.Install(anim.EntityId(i), []anim.PropertyAnimationGroup{colorGroup(tm, 0xFF000000, 0xFFFFFFFF)}, nil)
		default:
			err = store.Install(anim.EntityId(i), []anim.PropertyAnimationGroup{
				translateGroup(tm, mgl64.Vec3{}, mgl64.Vec3{100, 50, 0}),
				scaleGroup(tm, mgl64.Vec3{1, 1, 1}, mgl64.Vec3{2, 2, 1}),
			}, &anim.TransformContext{})
		}
		if err != nil {
			b.Fatal(err)
		}
	}
	return store
}

func BenchmarkSamplePass(b *testing.B) {
	store := newBenchStore(b, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		store.SamplePass(at(ms(i*16)), at(ms((i+1)*16)))
	}
}

func BenchmarkCollectSnapshot(b *testing.B) {
	store := newBenchStore(b, 1000)
	store.SamplePass(epoch, at(ms(16)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.CollectSnapshot()
	}
}

func BenchmarkSnapshotMarshal(b *testing.B) {
	store := newBenchStore(b, 1000)
	store.SamplePass(epoch, at(ms(16)))
	snap := store.CollectSnapshot()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := snap.MarshalBinary(); err != nil {
			b.Fatal(err)
		}
	}
}
