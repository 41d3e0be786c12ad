package domain

import (
	"fmt"
	"time"
)

// Audit ids required of every provider payload.
const (
	AuditFirstContentfulPaint   = "first-contentful-paint"
	AuditLargestContentfulPaint = "largest-contentful-paint"
	AuditInteractive            = "interactive"
	AuditTotalBlockingTime      = "total-blocking-time"
	AuditCumulativeLayoutShift  = "cumulative-layout-shift"
)

// RawAudit is the untyped boundary document handed over by an audit provider.
// Score is the provider's 0-1 performance category score; nil marks absence.
// Audits maps audit id to its human-readable display value.
type RawAudit struct {
	Score  *float64
	Audits map[string]string
}

// BuildResult validates a raw audit payload into a typed Result. It fails
// with ErrMalformedResponse when the category score or any of the five
// required audits is absent or unparseable; no partial result is produced.
// The provider score is scaled to 0-100, the single scale used on both the
// new-analysis and re-run paths.
func BuildResult(id, url string, strategy Strategy, raw RawAudit, capturedAt time.Time) (Result, error) {
	if err := strategy.Validate(); err != nil {
		return Result{}, err
	}
	if raw.Score == nil {
		return Result{}, fmt.Errorf("%w: performance category score", ErrMalformedResponse)
	}

	fcp, err := requiredMetric(raw, AuditFirstContentfulPaint, ExtractNumeric)
	if err != nil {
		return Result{}, err
	}
	lcp, err := requiredMetric(raw, AuditLargestContentfulPaint, ExtractNumeric)
	if err != nil {
		return Result{}, err
	}
	tti, err := requiredMetric(raw, AuditInteractive, ExtractNumeric)
	if err != nil {
		return Result{}, err
	}
	tbt, err := requiredMetric(raw, AuditTotalBlockingTime, ExtractNumeric)
	if err != nil {
		return Result{}, err
	}
	cls, err := requiredMetric(raw, AuditCumulativeLayoutShift, ParseShift)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		ID:       id,
		URL:      url,
		Strategy: strategy,
		Date:     FormatDate(capturedAt),
		Score:    *raw.Score * 100,
		Metrics:  Metrics{FCP: fcp, LCP: lcp, TTI: tti, TBT: tbt, CLS: cls},
	}
	if err := result.Validate(); err != nil {
		return Result{}, err
	}
	return result, nil
}

func requiredMetric(raw RawAudit, auditID string, parse func(string) (float64, error)) (float64, error) {
	display, ok := raw.Audits[auditID]
	if !ok {
		return 0, fmt.Errorf("%w: audit %s", ErrMalformedResponse, auditID)
	}
	v, err := parse(display)
	if err != nil {
		// A present but unparseable display value is part of the malformed
		// response class rather than a value to coerce to zero.
		return 0, fmt.Errorf("%w: audit %s: %v", ErrMalformedResponse, auditID, err)
	}
	return v, nil
}
