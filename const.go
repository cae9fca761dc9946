package pixedit

const (
	defaultRegionSize  = 150.0
	presetRegionMargin = 20.0
	minRegionSize      = 1.0
)

const (
	arrowHeadLength = 20.0
	arrowHeadAngle  = 30.0 // degrees off the shaft

	defaultBrushSize = 4.0
	defaultFontSize  = 24.0
)

const (
	defaultQuality = 90
	minQuality     = 1
	maxQuality     = 100
)
