package dashboard

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResamplePreservesPeaks(t *testing.T) {
	data := []float64{1, 1, 99, 1, 1, 1, 1, 1}

	out := resample(data, 4)

	require.Len(t, out, 4)
	assert.Contains(t, out, 99.0, "downsampling must keep the spike")
}

func TestResampleShortDataUntouched(t *testing.T) {
	data := []float64{10, 20}
	assert.Equal(t, data, resample(data, 10))
}

func TestNormalizeRateScalesToPeak(t *testing.T) {
	out := normalizeRate([]float64{50, 100, 25})
	assert.Equal(t, []float64{50, 100, 25}, out)

	out = normalizeRate([]float64{512, 1024})
	assert.Equal(t, []float64{50, 100}, out)
}

func TestNormalizeRateAllZero(t *testing.T) {
	out := normalizeRate([]float64{0, 0, 0})
	assert.Equal(t, []float64{0, 0, 0}, out)
}

func newDrawScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	t.Cleanup(sim.Fini)
	sim.SetSize(40, 10)
	return sim
}

func TestBrailleChartFillsFromRight(t *testing.T) {
	sim := newDrawScreen(t)

	drawBrailleChart(sim, region{0, 0, 10, 4}, []float64{100, 100})
	sim.Show()

	// One braille cell in the rightmost column of the bottom row.
	ch, _, _, _ := sim.GetContent(9, 3)
	assert.NotEqual(t, ' ', ch, "newest samples belong on the right edge")
	ch, _, _, _ = sim.GetContent(0, 3)
	assert.Equal(t, ' ', ch, "short history leaves the left edge empty")
}

func TestGaugeFill(t *testing.T) {
	sim := newDrawScreen(t)

	drawGauge(sim, region{0, 0, 10, 1}, 50)
	sim.Show()

	ch, _, _, _ := sim.GetContent(0, 0)
	assert.Equal(t, '█', ch)
	ch, _, _, _ = sim.GetContent(9, 0)
	assert.Equal(t, '░', ch)
}

func TestGaugeClampsPercent(t *testing.T) {
	sim := newDrawScreen(t)

	drawGauge(sim, region{0, 0, 5, 1}, 250)
	sim.Show()

	for x := 0; x < 5; x++ {
		ch, _, _, _ := sim.GetContent(x, 0)
		assert.Equal(t, '█', ch)
	}
}

func TestSparklineRightAligns(t *testing.T) {
	sim := newDrawScreen(t)

	drawSparkline(sim, region{0, 0, 8, 1}, []float64{0, 100}, colorGraph)
	sim.Show()

	ch, _, _, _ := sim.GetContent(7, 0)
	assert.Equal(t, '█', ch)
	ch, _, _, _ = sim.GetContent(6, 0)
	assert.Equal(t, '▁', ch)
	ch, _, _, _ = sim.GetContent(0, 0)
	assert.Equal(t, ' ', ch)
}
