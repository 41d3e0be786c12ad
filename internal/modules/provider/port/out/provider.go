package out

import (
	"context"

	"pagepulse/internal/modules/provider/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

// Host starts a provider binary, drives one call over its rpc contract, and
// tears it down again.
type Host interface {
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	Audit(ctx context.Context, manifest domain.Manifest, url, strategy string) (domain.AuditPayload, error)
}
