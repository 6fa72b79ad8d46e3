package debugui

import (
	"github.com/plus3/animstore/anim"
)

type AnimationBrowser struct {
	cache              *browserCache
	selectedEntityId   anim.EntityId
	hasSelection       bool
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

type ValueInspector struct {
	selectedEntityId anim.EntityId
}

type DriverStatsPanel struct {
	historyFrames int
	frameHistory  []float32
	sampleHistory []float32
	frameIndex    int
}
