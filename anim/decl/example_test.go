package decl_test

import (
	"fmt"
	"strings"
	"time"

	"github.com/plus3/animstore/anim"
	"github.com/plus3/animstore/anim/decl"
)

// ExampleScene_Install loads a fade declared in YAML and samples it halfway through.
func ExampleScene_Install() {
	const doc = `
entities:
  - id: 12
    groups:
      - property: opacity
        duration: 2s
        keyframes:
          - {offset: 0, value: 1}
          - {offset: 1, value: 0}
`
	scene, err := decl.Parse(strings.NewReader(doc))
	if err != nil {
		panic(err)
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := anim.NewStore()
	if err := scene.Install(store, start); err != nil {
		panic(err)
	}

	store.SamplePass(start, start.Add(time.Second))
	v, _ := store.Value(12)
	fmt.Println(v)

	// Output:
	// opacity(0.5)
}
