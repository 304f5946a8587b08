package dashboard

import (
	"github.com/gdamore/tcell/v2"
)

// Braille plotting. Each cell is a 2x4 dot matrix; unicode braille starts at
// U+2800 with one bit per dot, so a column of samples becomes OR-ed bits in
// the cells above the baseline.
const brailleBase = '⠀'

// brailleDots maps (sub-row, sub-column) to the dot's bit offset. Rows run
// top to bottom, columns left to right.
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

// blockRunes are one-cell vertical levels, lowest to highest.
var blockRunes = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

func clampInt(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// resample squeezes data into target buckets, keeping each bucket's peak so
// short spikes stay visible after compression. Data at or under the target
// size is returned as is and right-aligned by the caller.
func resample(data []float64, target int) []float64 {
	if len(data) <= target || target <= 0 {
		return data
	}
	out := make([]float64, target)
	bucket := float64(len(data)) / float64(target)
	for i := 0; i < target; i++ {
		start := int(float64(i) * bucket)
		end := int(float64(i+1) * bucket)
		if end > len(data) {
			end = len(data)
		}
		if start >= end {
			start = end - 1
		}
		max := data[start]
		for j := start + 1; j < end; j++ {
			if data[j] > max {
				max = data[j]
			}
		}
		out[i] = max
	}
	return out
}

// drawBrailleChart plots percentage samples into r as a braille line chart.
// The newest sample lands in the rightmost column; short histories fill from
// the right. Columns are colored by their peak value.
func drawBrailleChart(screen tcell.Screen, r region, data []float64) {
	if len(data) == 0 || r.w <= 0 || r.h <= 0 {
		return
	}

	totalDots := r.h * 4
	targetPoints := r.w * 2
	samples := resample(data, targetPoints)

	grid := make([][]rune, r.h)
	for i := range grid {
		grid[i] = make([]rune, r.w)
	}
	colPeak := make([]float64, r.w)

	offset := targetPoints - len(samples)
	if offset < 0 {
		offset = 0
	}

	for i, val := range samples {
		dotHeight := clampInt(int(val/100*float64(totalDots)), totalDots)
		col := (i + offset) / 2
		if col >= r.w {
			continue
		}
		if val > colPeak[col] {
			colPeak[col] = val
		}
		subCol := (i + offset) % 2
		for dot := 0; dot < dotHeight; dot++ {
			row := r.h - 1 - dot/4
			if row < 0 {
				continue
			}
			subRow := 3 - dot%4
			grid[row][col] |= rune(1) << brailleDots[subRow][subCol]
		}
	}

	for row := 0; row < r.h; row++ {
		for col := 0; col < r.w; col++ {
			if grid[row][col] == 0 {
				continue
			}
			style := tcell.StyleDefault.Foreground(metricColor(colPeak[col]))
			screen.SetContent(r.x+col, r.y+row, brailleBase+grid[row][col], nil, style)
		}
	}
}

// drawSparkline plots percentage samples as a single row of block runes,
// colored per sample.
func drawSparkline(screen tcell.Screen, r region, data []float64, color tcell.Color) {
	if len(data) == 0 || r.w <= 0 {
		return
	}
	samples := resample(data, r.w)
	offset := r.w - len(samples)
	if offset < 0 {
		offset = 0
	}
	style := tcell.StyleDefault.Foreground(color)
	for i, val := range samples {
		idx := clampInt(int(val/100*float64(len(blockRunes)-1)), len(blockRunes)-1)
		screen.SetContent(r.x+offset+i, r.y, blockRunes[idx], nil, style)
	}
}

// drawGauge renders a horizontal bar filled to percent, colored by severity
// along the fill so the right end of a hot bar reads red.
func drawGauge(screen tcell.Screen, r region, percent float64) {
	if r.w <= 0 {
		return
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(r.w))
	for i := 0; i < r.w; i++ {
		if i < filled {
			pos := float64(i+1) / float64(r.w) * 100
			screen.SetContent(r.x+i, r.y, '█', nil, tcell.StyleDefault.Foreground(metricColor(pos)))
		} else {
			screen.SetContent(r.x+i, r.y, '░', nil, styleMuted)
		}
	}
}

// normalizeRate maps raw byte-per-cycle samples onto 0..100 against the
// window's own peak, so throughput charts stay readable at any scale.
func normalizeRate(data []float64) []float64 {
	var peak float64
	for _, v := range data {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		return make([]float64, len(data))
	}
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v / peak * 100
	}
	return out
}
