package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/animstore/anim"
)

func NewDriverStatsPanel(historyFrames int) *DriverStatsPanel {
	return &DriverStatsPanel{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
		sampleHistory: make([]float32, historyFrames),
	}
}

func (dp *DriverStatsPanel) Render(driver *anim.Driver, deltaTime float32) {
	if !imgui.BeginV("Driver Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	stats := driver.Stats()
	dp.record(deltaTime*1000, stats)

	var avgFrameTime float32
	for _, ft := range dp.frameHistory {
		avgFrameTime += ft
	}
	avgFrameTime /= float32(dp.historyFrames)
	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, 1000.0/avgFrameTime))
	}
	imgui.PlotLinesFloatPtr("##frametime", &dp.frameHistory[0], int32(len(dp.frameHistory)))
	imgui.Text("Sample Pass (ms)")
	imgui.PlotLinesFloatPtr("##sampletime", &dp.sampleHistory[0], int32(len(dp.sampleHistory)))

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Frames: %d  Active: %d", stats.Frames, stats.ActiveFrames))
	imgui.Text(fmt.Sprintf("Last snapshot: %d properties", stats.LastSnapshot))
	imgui.Text(fmt.Sprintf("Publish errors: %d", stats.PublishErrors))
	imgui.Text(fmt.Sprintf("Animated entities: %d", driver.Store().Len()))

	if len(stats.Stages) == 0 {
		return
	}

	imgui.Separator()
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("StageTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Stage")
		imgui.TableSetupColumn("Count")
		imgui.TableSetupColumn("Last")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()
		for _, st := range stats.Stages {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(st.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", st.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(st.LastDuration.String())
			imgui.TableNextColumn()
			imgui.Text(st.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(st.MaxDuration.String())
		}
		imgui.EndTable()
	}
}

func (dp *DriverStatsPanel) record(frameMs float32, stats anim.DriverStats) {
	if dp.historyFrames == 0 {
		return
	}
	dp.frameHistory[dp.frameIndex] = frameMs
	dp.sampleHistory[dp.frameIndex] = float32(sampleDuration(stats).Microseconds()) / 1000
	dp.frameIndex = (dp.frameIndex + 1) % dp.historyFrames
}

func sampleDuration(stats anim.DriverStats) time.Duration {
	for _, st := range stats.Stages {
		if st.Name == "sample" {
			return st.LastDuration
		}
	}
	return 0
}

// FrameTimer measures wall time between successive frames.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{lastFrameTime: time.Now()}
}

// Tick returns the seconds elapsed since the previous call and the current time.
func (ft *FrameTimer) Tick() (float32, time.Time) {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta, now
}
