package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIndexOutOfRange signals a replace against a slot that does not exist.
// Correct callers never trigger it; seeing it means a stale index escaped
// the presentation layer.
var ErrIndexOutOfRange = errors.New("history index out of range")

type RunMetrics struct {
	FCP float64
	LCP float64
	TTI float64
	TBT float64
	CLS float64
}

// Record is one persisted analysis run. Index 0 of a history list is the most
// recently created record, except that a replaced slot keeps its position.
type Record struct {
	ID       string
	URL      string
	Strategy string
	Date     string
	Score    float64
	Metrics  RunMetrics
}

func (r Record) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("record id is required")
	}
	if strings.TrimSpace(r.URL) == "" {
		return fmt.Errorf("record url is required")
	}
	if strings.TrimSpace(r.Strategy) == "" {
		return fmt.Errorf("record strategy is required")
	}
	return nil
}

type State string

const (
	StateEmpty    State = "empty"
	StateNonEmpty State = "non-empty"
)

func StateOf(records []Record) State {
	if len(records) == 0 {
		return StateEmpty
	}
	return StateNonEmpty
}

// Prepend returns a new list with record at index 0 and every prior element
// unchanged in relative order. The input slice is not mutated.
func Prepend(records []Record, record Record) []Record {
	out := make([]Record, 0, len(records)+1)
	out = append(out, record)
	return append(out, records...)
}

// ReplaceAt returns a list identical to records except that slot index holds
// record. The refreshed slot deliberately keeps its position rather than
// moving to the front, so history order stops tracking recency for re-run
// entries.
func ReplaceAt(records []Record, index int, record Record) ([]Record, error) {
	if index < 0 || index >= len(records) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, len(records))
	}
	out := make([]Record, len(records))
	copy(out, records)
	out[index] = record
	return out, nil
}
