package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/applytrack/internal/dashboard"
)

const chartHeight = 6

// renderStatusChart draws one bar per status category with a legend.
func renderStatusChart(counts map[dashboard.Category]int, width int) string {
	if width < 20 {
		width = 20
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return mutedStyle.Render("No applications to chart")
	}

	barWidth := max(1, (width-len(dashboard.Categories))/len(dashboard.Categories)/2)
	bc := barchart.New(width, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(barWidth),
		barchart.WithNoAxis(),
	)

	var legend []string
	for _, c := range dashboard.Categories {
		style := lipgloss.NewStyle().Foreground(categoryColors[string(c)]).Background(categoryColors[string(c)])
		bc.Push(barchart.BarData{
			Label: string(c),
			Values: []barchart.BarValue{
				{Name: string(c), Value: float64(counts[c]), Style: style},
			},
		})
		legend = append(legend, lipgloss.NewStyle().Foreground(categoryColors[string(c)]).
			Render(fmt.Sprintf("■ %s %d", dashboard.TabLabel(string(c)), counts[c])))
	}
	bc.Draw()

	return lipgloss.JoinVertical(lipgloss.Left, bc.View(), strings.Join(legend, "  "))
}
