package domain

type Grade string

const (
	GradeGood             Grade = "good"
	GradeNeedsImprovement Grade = "needs-improvement"
	GradePoor             Grade = "poor"
)

// Band holds the fixed cutoffs for one metric kind. Good and NeedsImprovement
// are inclusive upper bounds; anything above NeedsImprovement is Poor.
type Band struct {
	Good             float64
	NeedsImprovement float64
}

// Web Vitals lab-metric cutoffs. Units match Metrics: seconds for paint and
// interactivity timings, milliseconds for blocking time, ratio for shift.
var (
	BandFCP = Band{Good: 2, NeedsImprovement: 3}
	BandLCP = Band{Good: 2.5, NeedsImprovement: 4}
	BandTTI = Band{Good: 3.8, NeedsImprovement: 7.3}
	BandTBT = Band{Good: 300, NeedsImprovement: 600}
	BandCLS = Band{Good: 0.1, NeedsImprovement: 0.25}
)

// Classify maps a metric value onto the three-level verdict: value <= good is
// Good, value <= needsImprovement is NeedsImprovement, everything else Poor.
func Classify(value, good, needsImprovement float64) Grade {
	switch {
	case value <= good:
		return GradeGood
	case value <= needsImprovement:
		return GradeNeedsImprovement
	default:
		return GradePoor
	}
}

func (b Band) Classify(value float64) Grade {
	return Classify(value, b.Good, b.NeedsImprovement)
}

// ClassifyScore grades the 0-100 performance score. The sense is inverted
// relative to the lab metrics: higher is better, >= 90 Good, >= 50
// NeedsImprovement.
func ClassifyScore(score float64) Grade {
	switch {
	case score >= 90:
		return GradeGood
	case score >= 50:
		return GradeNeedsImprovement
	default:
		return GradePoor
	}
}

// GradedMetrics applies the fixed bands to each of the five metrics. The
// presentation layer calls this per row at render time.
type GradedMetrics struct {
	FCP Grade
	LCP Grade
	TTI Grade
	TBT Grade
	CLS Grade
}

func (m Metrics) Grades() GradedMetrics {
	return GradedMetrics{
		FCP: BandFCP.Classify(m.FCP),
		LCP: BandLCP.Classify(m.LCP),
		TTI: BandTTI.Classify(m.TTI),
		TBT: BandTBT.Classify(m.TBT),
		CLS: BandCLS.Classify(m.CLS),
	}
}
