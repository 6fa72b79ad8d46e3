package decl_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/animstore/anim"
	"github.com/plus3/animstore/anim/decl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

const sceneYAML = `
entities:
  - id: 1
    groups:
      - property: opacity
        delay: 500ms
        duration: 1s
        fill: both
        keyframes:
          - {offset: 0, value: 0.2}
          - {offset: 1, value: 0.8}
  - id: 2
    groups:
      - property: background-color
        duration: 2s
        iterations: infinite
        direction: alternate
        easing: steps(4, jump-end)
        keyframes:
          - {offset: 0, value: "#ff0000"}
          - {offset: 1, value: "#0000ff80"}
  - id: 3
    context:
      origin: [10, 20]
      transformOrigin: [5, 5]
      devicePixelRatio: 2
    groups:
      - property: translate
        duration: 1s
        keyframes:
          - {offset: 0, value: [0, 0]}
          - {offset: 0.5, value: [50, 0], easing: ease-in}
          - {offset: 1, value: [100, 0, 3]}
      - property: rotate
        duration: 1s
        keyframes:
          - {offset: 0, value: 0}
          - {offset: 1, value: {angle: 90, axis: [0, 0, 1]}}
`

func TestParse(t *testing.T) {
	scene, err := decl.Parse(strings.NewReader(sceneYAML))
	require.NoError(t, err)
	require.Len(t, scene.Entities, 3)

	timelines, err := scene.Timelines(start)
	require.NoError(t, err)
	require.Len(t, timelines, 3)

	t.Run("opacity timing", func(t *testing.T) {
		tl := timelines[0]
		assert.Nil(t, tl.Context)
		require.Len(t, tl.Groups, 1)
		g := tl.Groups[0]
		assert.Equal(t, anim.PropertyOpacity, g.Property)
		assert.Equal(t, start, g.Timing.StartTime)
		assert.Equal(t, 500*time.Millisecond, g.Timing.Delay)
		assert.Equal(t, time.Second, g.Timing.Duration)
		assert.Equal(t, anim.FillBoth, g.Timing.Fill)
		require.Len(t, g.Segments, 1)
		assert.Equal(t, 0.2, g.Segments[0].From.Number)
		assert.Equal(t, 0.8, g.Segments[0].To.Number)
	})

	t.Run("color with alpha and infinite iterations", func(t *testing.T) {
		g := timelines[1].Groups[0]
		assert.True(t, math.IsInf(g.Timing.Iterations, 1))
		assert.Equal(t, anim.DirectionAlternate, g.Timing.Direction)
		assert.NotNil(t, g.Timing.Easing)
		assert.Equal(t, anim.NewColor(255, 0, 0, 255), g.Segments[0].From.Color)
		assert.Equal(t, anim.NewColor(0, 0, 255, 128), g.Segments[0].To.Color)
	})

	t.Run("transform context and segments", func(t *testing.T) {
		tl := timelines[2]
		require.NotNil(t, tl.Context)
		assert.Equal(t, 10.0, tl.Context.Origin.X)
		assert.Equal(t, 20.0, tl.Context.Origin.Y)
		assert.Equal(t, mgl64.Vec3{5, 5, 0}, tl.Context.TransformOrigin)
		assert.Equal(t, 2.0, tl.Context.DevicePixelRatio)

		translate := tl.Groups[0]
		require.Len(t, translate.Segments, 2)
		assert.Nil(t, translate.Segments[0].Easing)
		assert.NotNil(t, translate.Segments[1].Easing)
		assert.Equal(t, mgl64.Vec3{100, 0, 3}, translate.Segments[1].To.Vector)

		rotate := tl.Groups[1]
		assert.InDelta(t, math.Pi/2, rotate.Segments[0].To.Rotation.Angle, 1e-9)
		assert.Equal(t, mgl64.Vec3{0, 0, 1}, rotate.Segments[0].To.Rotation.Axis)
	})
}

func TestSceneInstall(t *testing.T) {
	scene, err := decl.Parse(strings.NewReader(sceneYAML))
	require.NoError(t, err)

	store := anim.NewStore()
	require.NoError(t, scene.Install(store, start))
	assert.Equal(t, 3, store.Len())

	assert.True(t, store.SamplePass(start, start.Add(750*time.Millisecond)))
	v, ok := store.Value(1)
	require.True(t, ok)
	assert.InDelta(t, 0.35, v.Opacity(), 1e-6)

	v, ok = store.Value(3)
	require.True(t, ok)
	assert.Equal(t, anim.KindTransform, v.Kind())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown field",
			yaml: "entities:\n  - id: 1\n    colour: red\n",
			want: "colour",
		},
		{
			name: "unknown property",
			yaml: "entities:\n  - id: 1\n    groups:\n      - property: width\n        keyframes: [{offset: 0, value: 1}, {offset: 1, value: 2}]\n",
			want: "unknown property",
		},
		{
			name: "single keyframe",
			yaml: "entities:\n  - id: 1\n    groups:\n      - property: opacity\n        keyframes: [{offset: 0, value: 1}]\n",
			want: "at least 2 keyframes",
		},
		{
			name: "decreasing offsets",
			yaml: "entities:\n  - id: 1\n    groups:\n      - property: opacity\n        keyframes: [{offset: 1, value: 1}, {offset: 0, value: 0}]\n",
			want: "must not decrease",
		},
		{
			name: "bad color",
			yaml: "entities:\n  - id: 1\n    groups:\n      - property: background-color\n        keyframes: [{offset: 0, value: red}, {offset: 1, value: \"#000\"}]\n",
			want: "invalid color",
		},
		{
			name: "duplicate entity",
			yaml: "entities:\n  - id: 1\n  - id: 1\n",
			want: "declared twice",
		},
		{
			name: "bad fill",
			yaml: "entities:\n  - id: 1\n    groups:\n      - property: opacity\n        fill: sometimes\n        keyframes: [{offset: 0, value: 1}, {offset: 1, value: 0}]\n",
			want: "unknown fill",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, err := decl.Parse(strings.NewReader(tt.yaml))
			if err == nil {
				_, err = scene.Timelines(start)
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTransformListValues(t *testing.T) {
	const doc = `
entities:
  - id: 4
    groups:
      - property: transform
        duration: 1s
        keyframes:
          - offset: 0
            value: []
          - offset: 1
            value:
              - translate: 10
              - rotate: 90
              - scale: [2, 3]
      - property: offset-path
        duration: 1s
        keyframes:
          - {offset: 0, value: "M0 0 L100 0"}
          - {offset: 1, value: "M0 0 L100 0"}
      - property: offset-rotate
        duration: 1s
        keyframes:
          - {offset: 0, value: auto}
          - {offset: 1, value: "auto 45deg"}
`
	scene, err := decl.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	timelines, err := scene.Timelines(start)
	require.NoError(t, err)

	tl := timelines[0]
	assert.NotNil(t, tl.Context, "transform groups get a default context")

	fns := tl.Groups[0].Segments[0].To.Functions
	require.Len(t, fns, 3)
	assert.Equal(t, anim.TranslateFunc(10, 0, 0), fns[0])
	assert.InDelta(t, math.Pi/2, fns[1].Rotation.Angle, 1e-9)
	assert.Equal(t, anim.ScaleFunc(2, 3, 1), fns[2])

	assert.NotNil(t, tl.Groups[1].Segments[0].From.Path)

	rot := tl.Groups[2].Segments[0]
	assert.True(t, rot.From.OffsetRotate.Auto)
	assert.InDelta(t, math.Pi/4, rot.To.OffsetRotate.Angle, 1e-9)

	store := anim.NewStore()
	require.NoError(t, scene.Install(store, start))
}
