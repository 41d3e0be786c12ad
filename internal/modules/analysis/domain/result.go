package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Strategy string

const (
	StrategyMobile  Strategy = "mobile"
	StrategyDesktop Strategy = "desktop"
)

// DateLayout is the capture-timestamp format shown to users. It is set once
// when a result is built and never recomputed.
const DateLayout = "Jan 2, 2006 3:04 PM"

var (
	ErrMalformedMetric   = errors.New("metric display value is not numeric")
	ErrMalformedResponse = errors.New("audit response is missing required fields")
	ErrProviderRequest   = errors.New("audit provider request failed")
)

// Metrics holds the five extracted lab metrics. FCP, LCP and TTI are in
// seconds, TBT in milliseconds, CLS is a unitless ratio.
type Metrics struct {
	FCP float64 `json:"fcp"`
	LCP float64 `json:"lcp"`
	TTI float64 `json:"tti"`
	TBT float64 `json:"tbt"`
	CLS float64 `json:"cls"`
}

// Result is one completed analysis run. Results are immutable after build; a
// re-run produces a wholly new Result that overwrites a history slot.
type Result struct {
	ID       string
	URL      string
	Strategy Strategy
	Date     string
	Score    float64
	Metrics  Metrics
}

func (s Strategy) Validate() error {
	switch s {
	case StrategyMobile, StrategyDesktop:
		return nil
	default:
		return fmt.Errorf("unsupported strategy %q", string(s))
	}
}

func (r Result) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(r.URL) == "" {
		return fmt.Errorf("url is required")
	}
	if err := r.Strategy.Validate(); err != nil {
		return err
	}
	return nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
