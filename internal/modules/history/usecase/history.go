package usecase

import (
	"context"

	"pagepulse/internal/modules/history/domain"
	"pagepulse/internal/modules/history/dto"
	historyin "pagepulse/internal/modules/history/port/in"
	"pagepulse/internal/modules/history/service"
)

type Interactor struct {
	svc *service.HistoryService
}

func NewInteractor(svc *service.HistoryService) historyin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.RecordOutput, error) {
	records, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	return toOutputs(records), nil
}

func (i *Interactor) Get(ctx context.Context, index int) (dto.RecordOutput, error) {
	record, err := i.svc.Get(ctx, index)
	if err != nil {
		return dto.RecordOutput{}, err
	}
	return toOutput(record), nil
}

func (i *Interactor) Prepend(ctx context.Context, input dto.RecordInput) ([]dto.RecordOutput, error) {
	records, err := i.svc.Prepend(ctx, fromInput(input))
	if err != nil {
		return nil, err
	}
	return toOutputs(records), nil
}

func (i *Interactor) ReplaceAt(ctx context.Context, input dto.ReplaceInput) ([]dto.RecordOutput, error) {
	records, err := i.svc.ReplaceAt(ctx, input.Index, fromInput(input.Record))
	if err != nil {
		return nil, err
	}
	return toOutputs(records), nil
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.svc.Clear(ctx)
}

func (i *Interactor) Export(ctx context.Context, dir string) ([]string, error) {
	return i.svc.Export(ctx, dir)
}

func fromInput(input dto.RecordInput) domain.Record {
	return domain.Record{
		ID:       input.ID,
		URL:      input.URL,
		Strategy: input.Strategy,
		Date:     input.Date,
		Score:    input.Score,
		Metrics: domain.RunMetrics{
			FCP: input.FCP,
			LCP: input.LCP,
			TTI: input.TTI,
			TBT: input.TBT,
			CLS: input.CLS,
		},
	}
}

func toOutput(record domain.Record) dto.RecordOutput {
	return dto.RecordOutput{
		ID:       record.ID,
		URL:      record.URL,
		Strategy: record.Strategy,
		Date:     record.Date,
		Score:    record.Score,
		FCP:      record.Metrics.FCP,
		LCP:      record.Metrics.LCP,
		TTI:      record.Metrics.TTI,
		TBT:      record.Metrics.TBT,
		CLS:      record.Metrics.CLS,
	}
}

func toOutputs(records []domain.Record) []dto.RecordOutput {
	out := make([]dto.RecordOutput, 0, len(records))
	for _, record := range records {
		out = append(out, toOutput(record))
	}
	return out
}
