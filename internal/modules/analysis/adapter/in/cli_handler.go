package in

import (
	"context"

	"pagepulse/internal/modules/analysis/dto"
	analysisin "pagepulse/internal/modules/analysis/port/in"
)

type CLIHandler struct {
	usecase analysisin.Usecase
}

func NewCLIHandler(usecase analysisin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Analyze(ctx context.Context, url, strategy string) ([]dto.ResultOutput, error) {
	return h.usecase.Analyze(ctx, dto.AnalyzeInput{URL: url, Strategy: strategy})
}

func (h CLIHandler) Rerun(ctx context.Context, index int) ([]dto.ResultOutput, error) {
	return h.usecase.Rerun(ctx, dto.RerunInput{Index: index})
}

func (h CLIHandler) History(ctx context.Context) ([]dto.ResultOutput, error) {
	return h.usecase.History(ctx)
}

func (h CLIHandler) ClearHistory(ctx context.Context) error {
	return h.usecase.ClearHistory(ctx)
}
