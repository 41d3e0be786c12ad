package domain_test

import (
	"testing"

	"pagepulse/internal/modules/analysis/domain"
)

func TestClassifyBoundariesAreInclusiveOnTheLowerClass(t *testing.T) {
	t.Parallel()
	cases := []struct {
		value float64
		want  domain.Grade
	}{
		{1.9, domain.GradeGood},
		{2.0, domain.GradeGood},
		{2.1, domain.GradeNeedsImprovement},
		{3.0, domain.GradeNeedsImprovement},
		{3.01, domain.GradePoor},
	}
	for _, tc := range cases {
		if got := domain.Classify(tc.value, 2, 3); got != tc.want {
			t.Fatalf("Classify(%v, 2, 3) = %s, want %s", tc.value, got, tc.want)
		}
	}
}

func TestClassifyScoreInvertedSense(t *testing.T) {
	t.Parallel()
	cases := []struct {
		score float64
		want  domain.Grade
	}{
		{100, domain.GradeGood},
		{90, domain.GradeGood},
		{89.9, domain.GradeNeedsImprovement},
		{50, domain.GradeNeedsImprovement},
		{49, domain.GradePoor},
		{0, domain.GradePoor},
	}
	for _, tc := range cases {
		if got := domain.ClassifyScore(tc.score); got != tc.want {
			t.Fatalf("ClassifyScore(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestMetricsGradesUseFixedBands(t *testing.T) {
	t.Parallel()
	m := domain.Metrics{FCP: 1.1, LCP: 4.2, TTI: 3.8, TBT: 450, CLS: 0.25}
	grades := m.Grades()
	if grades.FCP != domain.GradeGood {
		t.Fatalf("fcp grade = %s", grades.FCP)
	}
	if grades.LCP != domain.GradePoor {
		t.Fatalf("lcp grade = %s", grades.LCP)
	}
	if grades.TTI != domain.GradeGood {
		t.Fatalf("tti at its good cutoff should grade good, got %s", grades.TTI)
	}
	if grades.TBT != domain.GradeNeedsImprovement {
		t.Fatalf("tbt grade = %s", grades.TBT)
	}
	if grades.CLS != domain.GradeNeedsImprovement {
		t.Fatalf("cls at its needs-improvement cutoff should not be poor, got %s", grades.CLS)
	}
}
