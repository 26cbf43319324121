// ABOUTME: Utilization bars and workload sparklines
// ABOUTME: Block-character widgets with warning and critical zones

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Zone thresholds for utilization bars, in percent.
const (
	WarnThreshold = 80
	CritThreshold = 100
)

// SparklineBlocks are the Unicode block characters for different heights
var SparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// UtilizationBar renders percent as a bar of width cells. Values past 100
// fill the bar; the label keeps the real number. A nil percent renders
// as n/a.
func UtilizationBar(percent *int, width int) string {
	if percent == nil {
		return Subtitle.Render(strings.Repeat("·", width) + "  n/a")
	}
	if width <= 0 {
		width = 20
	}

	p := *percent
	filled := p * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	color := Secondary
	switch {
	case p > CritThreshold:
		color = Danger
	case p >= WarnThreshold:
		color = Warning
	}

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(Surface).Render(strings.Repeat("░", width-filled))
	label := lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%4d%%", p))
	return bar + " " + label
}

// Sparkline renders values scaled from zero to their maximum. Zero stays
// at the lowest block so idle buckets read as idle.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	var max float64
	for _, v := range values {
		if v > max {
			max = v
		}
	}

	result := make([]rune, len(values))
	for i, v := range values {
		result[i] = valueToBlock(v, max)
	}
	return lipgloss.NewStyle().Foreground(Info).Render(string(result))
}

// valueToBlock maps value in [0, max] to a block character
func valueToBlock(value, max float64) rune {
	if max <= 0 || value <= 0 {
		return SparklineBlocks[0]
	}
	idx := int(value / max * float64(len(SparklineBlocks)-1))
	if idx >= len(SparklineBlocks) {
		idx = len(SparklineBlocks) - 1
	}
	return SparklineBlocks[idx]
}
