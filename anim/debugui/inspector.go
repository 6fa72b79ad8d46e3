package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/animstore/anim"
)

func NewValueInspector() *ValueInspector {
	return &ValueInspector{}
}

func (vi *ValueInspector) Render(store *anim.Store, id anim.EntityId, selected bool) {
	if !imgui.BeginV("Value Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if !selected {
		imgui.Text("No entity selected")
		return
	}
	vi.selectedEntityId = id

	imgui.Text(fmt.Sprintf("Entity %d", id))
	imgui.Separator()

	if v, ok := store.OMTAValue(id); ok {
		renderOMTAValue(v)
	} else {
		imgui.Text("No cached value")
	}

	imgui.Separator()

	now := time.Now()
	store.View(func(txn *anim.Txn) {
		groups, ok := txn.Groups(id)
		if !ok {
			imgui.Text("Entity has no animations")
			return
		}
		for i, g := range groups {
			if imgui.TreeNodeStr(fmt.Sprintf("%s##%d", g.Property, i)) {
				for _, line := range groupLines(g, now) {
					imgui.BulletText(line)
				}
				imgui.TreePop()
			}
		}
	})
}

func renderOMTAValue(v anim.OMTAValue) {
	imgui.Text(fmt.Sprintf("Kind: %s", v.Kind))
	switch v.Kind {
	case anim.KindOpacity:
		imgui.Text(fmt.Sprintf("Opacity: %.4f", v.Opacity))
	case anim.KindColor:
		imgui.Text(fmt.Sprintf("Color: %s", v.Color))
	case anim.KindTransform:
		for _, row := range matrixRows(v.Transform) {
			imgui.Text(row)
		}
	}
}

// matrixRows formats m row by row; mgl64 stores columns.
func matrixRows(m mgl64.Mat4) [4]string {
	var rows [4]string
	for r := range 4 {
		rows[r] = fmt.Sprintf("%9.3f %9.3f %9.3f %9.3f", m.At(r, 0), m.At(r, 1), m.At(r, 2), m.At(r, 3))
	}
	return rows
}

func groupLines(g anim.PropertyAnimationGroup, now time.Time) []string {
	ct := g.Timing.Compute(now)
	lines := []string{
		fmt.Sprintf("Segments: %d", len(g.Segments)),
		fmt.Sprintf("Duration: %s  Delay: %s", g.Timing.Duration, g.Timing.Delay),
		fmt.Sprintf("Iterations: %g", g.Timing.Iterations),
		fmt.Sprintf("Phase: %s", phaseName(ct.Phase)),
	}
	if ct.HasProgress {
		lines = append(lines, fmt.Sprintf("Progress: %.3f (iteration %g)", ct.Progress, ct.Iteration))
	}
	if g.BaseValue != nil {
		lines = append(lines, "Has base value")
	}
	return lines
}

func phaseName(p anim.Phase) string {
	switch p {
	case anim.PhaseBefore:
		return "before"
	case anim.PhaseActive:
		return "active"
	case anim.PhaseAfter:
		return "after"
	}
	return "unknown"
}
