package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"pagepulse/internal/modules/provider/domain"
	providerout "pagepulse/internal/modules/provider/port/out"
	apperrors "pagepulse/internal/platform/errors"
)

type ProviderService struct {
	manifests providerout.ManifestStore
	host      providerout.Host
}

func NewProviderService(manifests providerout.ManifestStore, host providerout.Host) *ProviderService {
	return &ProviderService{manifests: manifests, host: host}
}

func (s *ProviderService) List(ctx context.Context) ([]domain.Manifest, error) {
	return s.manifests.Load(ctx)
}

func (s *ProviderService) Doctor(ctx context.Context) ([]domain.Health, error) {
	manifests, err := s.manifests.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Health, 0, len(manifests))
	for _, manifest := range manifests {
		out = append(out, s.probe(ctx, manifest))
	}
	return out, nil
}

func (s *ProviderService) probe(ctx context.Context, manifest domain.Manifest) domain.Health {
	health := domain.Health{Name: manifest.Name}
	if err := manifest.Validate(); err != nil {
		health.Error = err.Error()
		return health
	}
	if _, err := os.Stat(manifest.Binary); err != nil {
		health.Error = fmt.Sprintf("binary not reachable: %v", err)
		return health
	}
	health.BinaryReachable = true
	if err := verifyChecksum(manifest); err != nil {
		health.Error = err.Error()
		return health
	}
	health.ChecksumValid = true
	if _, err := s.host.GetMetadata(ctx, manifest); err != nil {
		health.Error = fmt.Sprintf("lifecycle: %v", err)
		return health
	}
	health.LifecycleOK = true
	return health
}

func (s *ProviderService) Audit(ctx context.Context, name, url, strategy string) (domain.AuditPayload, error) {
	manifest, err := s.find(ctx, name)
	if err != nil {
		return domain.AuditPayload{}, err
	}
	if !manifest.Enabled {
		return domain.AuditPayload{}, fmt.Errorf("%w: %s", domain.ErrProviderDisabled, name)
	}
	if err := verifyChecksum(manifest); err != nil {
		return domain.AuditPayload{}, err
	}
	return s.host.Audit(ctx, manifest, url, strategy)
}

func (s *ProviderService) find(ctx context.Context, name string) (domain.Manifest, error) {
	manifests, err := s.manifests.Load(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	for _, manifest := range manifests {
		if manifest.Name == name {
			return manifest, nil
		}
	}
	return domain.Manifest{}, fmt.Errorf("%w: provider %s", apperrors.ErrNotFound, name)
}

func verifyChecksum(manifest domain.Manifest) error {
	raw, err := os.ReadFile(manifest.Binary)
	if err != nil {
		return fmt.Errorf("read provider binary: %w", err)
	}
	sum := sha256.Sum256(raw)
	if hex.EncodeToString(sum[:]) != manifest.SHA256 {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, manifest.Name)
	}
	return nil
}
