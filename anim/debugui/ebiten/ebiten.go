// Package ebiten hosts the animation debug overlay in an Ebiten window.
package ebiten

import (
	"context"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/animstore/anim"
	"github.com/plus3/animstore/anim/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Host implements ebiten.Game. Each Update runs one driver frame and renders the
// debug overlay for it.
type Host struct {
	backend ImguiBackend
	driver  *anim.Driver
	overlay *debugui.Overlay
	timer   *debugui.FrameTimer

	// DrawScene, if set, draws the host's own content below the overlay.
	DrawScene func(screen *ebiten.Image)
}

func NewHost(backend *ebitenbackend.EbitenBackend, driver *anim.Driver) *Host {
	return &Host{
		backend: ImguiBackend{EbitenBackend: backend},
		driver:  driver,
		overlay: debugui.NewOverlay(driver),
		timer:   debugui.NewFrameTimer(),
	}
}

func (h *Host) Update() error {
	dt, now := h.timer.Tick()

	h.backend.BeginFrame()
	defer h.backend.EndFrame()

	if _, err := h.driver.Once(context.Background(), now); err != nil {
		anim.Logger().Warn("driver frame failed", "error", err)
	}
	h.overlay.Render(dt)
	return nil
}

func (h *Host) Draw(screen *ebiten.Image) {
	if h.DrawScene != nil {
		h.DrawScene(screen)
	}
	h.backend.Draw(screen)
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Input reports whether the overlay captured input during the last frame.
func (h *Host) Input() debugui.InputState { return h.overlay.Input() }
