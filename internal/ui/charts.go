package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nissyi-gh/daytrack/internal/model"
	"github.com/nissyi-gh/daytrack/internal/stats"
)

var (
	chartTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	barStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	gaugeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4B4B"))
	gaugeTrackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffeded"))
)

const labelWidth = 12

// bar returns a block bar of count scaled so that maxCount fills width.
func bar(count, maxCount, width int) string {
	if maxCount == 0 || width <= 0 {
		return ""
	}
	n := count * width / maxCount
	if count > 0 && n == 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func renderDistribution(title string, d stats.Distribution, width int, color func(label string) lipgloss.Style) string {
	lines := []string{chartTitleStyle.Render(title)}
	barWidth := width - labelWidth - 12
	for _, b := range d {
		label := lipgloss.NewStyle().Width(labelWidth).Render(b.Label)
		lines = append(lines, fmt.Sprintf("%s%s %d (%.0f%%)",
			label, color(b.Label).Render(bar(b.Count, d.Max(), barWidth)), b.Count, b.Percent))
	}
	return strings.Join(lines, "\n")
}

func renderGauge(title string, percent float64, width int) string {
	w := max(width-labelWidth-8, 10)
	filled := min(int(percent*float64(w)/100+0.5), w)
	return fmt.Sprintf("%s\n%s%s %.0f%%",
		chartTitleStyle.Render(title),
		gaugeStyle.Render(strings.Repeat("█", filled)),
		gaugeTrackStyle.Render(strings.Repeat("░", w-filled)),
		percent,
	)
}

// renderStats draws the category and priority bars and the completion gauge.
func renderStats(s stats.Summary, width int) string {
	if s.Total == 0 {
		return chartTitleStyle.Render("Statistics") + "\n" + statusStyle.Render("(no data)")
	}
	plain := func(string) lipgloss.Style { return barStyle }
	byPriority := func(label string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(priorityColor(model.Priority(label)))
	}

	summary := fmt.Sprintf("%d tasks · %d overdue · %.0f min spent", s.Total, s.Overdue, s.MinutesSpent)
	return strings.Join([]string{
		chartTitleStyle.Render("Statistics") + "  " + statusStyle.Render(summary),
		renderDistribution("Tasks by Category", s.Categories, width, plain),
		renderDistribution("Tasks by Priority", s.Priorities, width, byPriority),
		renderGauge("Completion Rate", s.Rates.Completed, width),
		statusStyle.Render(fmt.Sprintf("in progress %.0f%% · pending %.0f%%", s.Rates.InProgress, s.Rates.Pending)),
	}, "\n\n")
}
