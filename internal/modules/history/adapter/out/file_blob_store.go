package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pagepulse/internal/modules/history/domain"
	historyout "pagepulse/internal/modules/history/port/out"
)

// recordFile is the on-disk shape of one run inside the pageSpeedResults
// blob. Kept separate from the domain type so the wire format can evolve
// behind a schema version.
type recordFile struct {
	SchemaVersion int     `json:"schema_version"`
	ID            string  `json:"id"`
	URL           string  `json:"url"`
	Strategy      string  `json:"strategy"`
	Date          string  `json:"date"`
	Score         float64 `json:"score"`
	FCP           float64 `json:"fcp"`
	LCP           float64 `json:"lcp"`
	TTI           float64 `json:"tti"`
	TBT           float64 `json:"tbt"`
	CLS           float64 `json:"cls"`
}

const blobSchemaVersion = 1

// FileBlobStore persists the whole history as one JSON key-file, written
// wholesale on every mutation. A failed write leaves the previous blob
// intact.
type FileBlobStore struct {
	path string
}

func NewFileBlobStore(path string) historyout.BlobStore {
	return &FileBlobStore{path: path}
}

func (s *FileBlobStore) Load(_ context.Context) ([]domain.Record, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.Record{}, nil
		}
		return nil, fmt.Errorf("read history blob: %w", err)
	}
	var files []recordFile
	if err := json.Unmarshal(raw, &files); err != nil {
		// A corrupt blob reads as an empty history; the next successful
		// mutation overwrites it.
		return []domain.Record{}, nil
	}
	records := make([]domain.Record, 0, len(files))
	for _, f := range files {
		// An unknown schema version reads like a corrupt blob.
		if f.SchemaVersion != blobSchemaVersion {
			return []domain.Record{}, nil
		}
		records = append(records, domain.Record{
			ID:       f.ID,
			URL:      f.URL,
			Strategy: f.Strategy,
			Date:     f.Date,
			Score:    f.Score,
			Metrics:  domain.RunMetrics{FCP: f.FCP, LCP: f.LCP, TTI: f.TTI, TBT: f.TBT, CLS: f.CLS},
		})
	}
	return records, nil
}

func (s *FileBlobStore) Save(_ context.Context, records []domain.Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	files := make([]recordFile, 0, len(records))
	for _, r := range records {
		files = append(files, recordFile{
			SchemaVersion: blobSchemaVersion,
			ID:            r.ID,
			URL:           r.URL,
			Strategy:      r.Strategy,
			Date:          r.Date,
			Score:         r.Score,
			FCP:           r.Metrics.FCP,
			LCP:           r.Metrics.LCP,
			TTI:           r.Metrics.TTI,
			TBT:           r.Metrics.TBT,
			CLS:           r.Metrics.CLS,
		})
	}
	raw, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history blob: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("write history blob: %w", err)
	}
	return nil
}
