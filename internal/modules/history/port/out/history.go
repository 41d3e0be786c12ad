package out

import (
	"context"

	"pagepulse/internal/modules/history/domain"
)

// BlobStore persists the whole history list as one serialized blob. Load
// returns an empty list for an absent or corrupt blob rather than an error.
type BlobStore interface {
	Load(ctx context.Context) ([]domain.Record, error)
	Save(ctx context.Context, records []domain.Record) error
}

// IndexProjector maintains the read-optimized runs index. It is rebuilt
// wholesale after every mutation. Close releases the backing handle.
type IndexProjector interface {
	Reset(ctx context.Context) error
	UpsertRun(ctx context.Context, position int, record domain.Record) error
	Close() error
}

type ReportWriter interface {
	Write(ctx context.Context, dir string, position int, record domain.Record) (string, error)
}
