package in

import (
	"context"

	"pagepulse/internal/modules/analysis/dto"
)

type Usecase interface {
	Analyze(ctx context.Context, input dto.AnalyzeInput) ([]dto.ResultOutput, error)
	Rerun(ctx context.Context, input dto.RerunInput) ([]dto.ResultOutput, error)
	History(ctx context.Context) ([]dto.ResultOutput, error)
	ClearHistory(ctx context.Context) error
}
