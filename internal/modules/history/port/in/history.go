package in

import (
	"context"

	"pagepulse/internal/modules/history/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.RecordOutput, error)
	Get(ctx context.Context, index int) (dto.RecordOutput, error)
	Prepend(ctx context.Context, input dto.RecordInput) ([]dto.RecordOutput, error)
	ReplaceAt(ctx context.Context, input dto.ReplaceInput) ([]dto.RecordOutput, error)
	Clear(ctx context.Context) error
	Export(ctx context.Context, dir string) ([]string, error)
}
