package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"pagepulse/internal/modules/analysis/domain"
	"pagepulse/internal/ui/theme"
)

// GradeStyle maps a verdict onto its traffic-light style.
func GradeStyle(g domain.Grade) lipgloss.Style {
	switch g {
	case domain.GradeGood:
		return theme.Good
	case domain.GradeNeedsImprovement:
		return theme.Warn
	default:
		return theme.Bad
	}
}

// Metric renders one "value unit" cell colored by its band.
func Metric(value float64, unit string, band domain.Band) string {
	return GradeStyle(band.Classify(value)).Render(formatMetric(value, unit))
}

// Score renders the 0-100 performance score with its own inverted grading.
func Score(score float64) string {
	return GradeStyle(domain.ClassifyScore(score)).Render(fmt.Sprintf("%.0f", score))
}

func formatMetric(value float64, unit string) string {
	if unit == "" {
		return fmt.Sprintf("%.3g", value)
	}
	return fmt.Sprintf("%.3g %s", value, unit)
}
