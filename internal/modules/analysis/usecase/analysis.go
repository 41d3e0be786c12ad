package usecase

import (
	"context"

	"pagepulse/internal/modules/analysis/domain"
	"pagepulse/internal/modules/analysis/dto"
	analysisin "pagepulse/internal/modules/analysis/port/in"
	"pagepulse/internal/modules/analysis/service"
	historydto "pagepulse/internal/modules/history/dto"
	historyin "pagepulse/internal/modules/history/port/in"
)

// Interactor drives the pipeline: one shared build path, with the history
// mutation (prepend for a new analysis, replace-at for a re-run) chosen per
// operation. Both operations return the full new list for display.
type Interactor struct {
	svc     *service.AnalysisService
	history historyin.Usecase
}

func NewInteractor(svc *service.AnalysisService, history historyin.Usecase) analysisin.Usecase {
	return &Interactor{svc: svc, history: history}
}

func (i *Interactor) Analyze(ctx context.Context, input dto.AnalyzeInput) ([]dto.ResultOutput, error) {
	result, err := i.svc.Analyze(ctx, input.URL, domain.Strategy(input.Strategy))
	if err != nil {
		return nil, err
	}
	records, err := i.history.Prepend(ctx, toRecordInput(result))
	if err != nil {
		return nil, err
	}
	return toOutputs(records), nil
}

func (i *Interactor) Rerun(ctx context.Context, input dto.RerunInput) ([]dto.ResultOutput, error) {
	previous, err := i.history.Get(ctx, input.Index)
	if err != nil {
		return nil, err
	}
	result, err := i.svc.Analyze(ctx, previous.URL, domain.Strategy(previous.Strategy))
	if err != nil {
		return nil, err
	}
	records, err := i.history.ReplaceAt(ctx, historydto.ReplaceInput{Index: input.Index, Record: toRecordInput(result)})
	if err != nil {
		return nil, err
	}
	return toOutputs(records), nil
}

func (i *Interactor) History(ctx context.Context) ([]dto.ResultOutput, error) {
	records, err := i.history.List(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(records), nil
}

func (i *Interactor) ClearHistory(ctx context.Context) error {
	return i.history.Clear(ctx)
}

func toRecordInput(result domain.Result) historydto.RecordInput {
	return historydto.RecordInput{
		ID:       result.ID,
		URL:      result.URL,
		Strategy: string(result.Strategy),
		Date:     result.Date,
		Score:    result.Score,
		FCP:      result.Metrics.FCP,
		LCP:      result.Metrics.LCP,
		TTI:      result.Metrics.TTI,
		TBT:      result.Metrics.TBT,
		CLS:      result.Metrics.CLS,
	}
}

func toOutputs(records []historydto.RecordOutput) []dto.ResultOutput {
	out := make([]dto.ResultOutput, 0, len(records))
	for _, record := range records {
		out = append(out, dto.ResultOutput{
			ID:       record.ID,
			URL:      record.URL,
			Strategy: record.Strategy,
			Date:     record.Date,
			Score:    record.Score,
			FCP:      record.FCP,
			LCP:      record.LCP,
			TTI:      record.TTI,
			TBT:      record.TBT,
			CLS:      record.CLS,
		})
	}
	return out
}
