package in

import (
	"context"

	"pagepulse/internal/modules/provider/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.ProviderOutput, error)
	Doctor(ctx context.Context) ([]dto.DoctorOutput, error)
	Audit(ctx context.Context, input dto.AuditInput) (dto.AuditOutput, error)
}
