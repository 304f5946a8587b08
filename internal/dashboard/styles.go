package dashboard

import "github.com/gdamore/tcell/v2"

// Threshold-based coloring: green below warning, amber between, red above.
const (
	warningThreshold  = 70.0
	criticalThreshold = 90.0
)

var (
	colorHealthy  = tcell.GetColor("#39FF14")
	colorWarning  = tcell.GetColor("#FFAA00")
	colorCritical = tcell.GetColor("#FF0055")

	colorBorder    = tcell.GetColor("#2A2A4A")
	colorTitle     = tcell.GetColor("#FFFFFF")
	colorText      = tcell.GetColor("#B4B4D0")
	colorMuted     = tcell.GetColor("#6B6B8D")
	colorAccent    = tcell.GetColor("#FF2E97")
	colorGraph     = tcell.GetColor("#00FFFF")
	colorTransmit  = tcell.GetColor("#BF40FF")
)

var (
	styleBorder = tcell.StyleDefault.Foreground(colorBorder)
	styleTitle  = tcell.StyleDefault.Foreground(colorTitle).Bold(true)
	styleText   = tcell.StyleDefault.Foreground(colorText)
	styleMuted  = tcell.StyleDefault.Foreground(colorMuted)
	styleAccent = tcell.StyleDefault.Foreground(colorAccent)
	styleHeader = tcell.StyleDefault.Foreground(colorAccent).Bold(true)
)

// metricColor picks the severity color for a percentage.
func metricColor(percent float64) tcell.Color {
	switch {
	case percent >= criticalThreshold:
		return colorCritical
	case percent >= warningThreshold:
		return colorWarning
	default:
		return colorHealthy
	}
}

func metricStyle(percent float64) tcell.Style {
	return tcell.StyleDefault.Foreground(metricColor(percent))
}
