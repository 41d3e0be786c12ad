package usecase

import (
	"context"

	"pagepulse/internal/modules/provider/dto"
	providerin "pagepulse/internal/modules/provider/port/in"
	"pagepulse/internal/modules/provider/service"
)

type Interactor struct {
	svc *service.ProviderService
}

func NewInteractor(svc *service.ProviderService) providerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.ProviderOutput, error) {
	manifests, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProviderOutput, 0, len(manifests))
	for _, manifest := range manifests {
		out = append(out, dto.ProviderOutput{
			Name:    manifest.Name,
			Version: manifest.Version,
			Binary:  manifest.Binary,
			Enabled: manifest.Enabled,
		})
	}
	return out, nil
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorOutput, error) {
	checks, err := i.svc.Doctor(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DoctorOutput, 0, len(checks))
	for _, check := range checks {
		out = append(out, dto.DoctorOutput{
			Name:            check.Name,
			ChecksumValid:   check.ChecksumValid,
			BinaryReachable: check.BinaryReachable,
			LifecycleOK:     check.LifecycleOK,
			Error:           check.Error,
		})
	}
	return out, nil
}

func (i *Interactor) Audit(ctx context.Context, input dto.AuditInput) (dto.AuditOutput, error) {
	payload, err := i.svc.Audit(ctx, input.Provider, input.URL, input.Strategy)
	if err != nil {
		return dto.AuditOutput{}, err
	}
	return dto.AuditOutput{Score: payload.Score, Audits: payload.Audits}, nil
}
