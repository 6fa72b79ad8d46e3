// Package debugui provides Dear ImGui panels for inspecting an animation store and
// the frame driver sampling it.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/animstore/anim"
)

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay bundles the animation browser, the value inspector and the driver stats
// panel for one driver.
type Overlay struct {
	driver    *anim.Driver
	browser   *AnimationBrowser
	inspector *ValueInspector
	stats     *DriverStatsPanel
	input     InputState
}

func NewOverlay(driver *anim.Driver) *Overlay {
	return &Overlay{
		driver:    driver,
		browser:   NewAnimationBrowser(50),
		inspector: NewValueInspector(),
		stats:     NewDriverStatsPanel(120),
	}
}

// Render draws every panel. It must be called between the backend's BeginFrame and
// EndFrame. deltaTime is the host frame time in seconds.
func (o *Overlay) Render(deltaTime float32) {
	io := imgui.CurrentIO()
	o.input.WantCaptureMouse = io.WantCaptureMouse()
	o.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	store := o.driver.Store()
	o.browser.Render(store)
	id, selected := o.browser.Selected()
	o.inspector.Render(store, id, selected)
	o.stats.Render(o.driver, deltaTime)
}

// Input returns the input capture state observed by the last Render.
func (o *Overlay) Input() InputState { return o.input }
