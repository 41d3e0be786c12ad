package service

import (
	"context"
	"fmt"

	"pagepulse/internal/modules/history/domain"
	historyout "pagepulse/internal/modules/history/port/out"
	"pagepulse/internal/platform/tx"
)

// HistoryService owns the run history list. All mutation goes through it, so
// the in-memory list and the persisted blob stay identical after every
// successful operation. There is no locking: operations are invoked from
// single-threaded event callbacks, and overlapping audits are prevented by
// the presentation layer's busy flag.
type HistoryService struct {
	store     historyout.BlobStore
	projector historyout.IndexProjector
	reports   historyout.ReportWriter
	txm       tx.Manager

	records []domain.Record
	loaded  bool
}

func NewHistoryService(store historyout.BlobStore, projector historyout.IndexProjector, reports historyout.ReportWriter, txm tx.Manager) *HistoryService {
	return &HistoryService{store: store, projector: projector, reports: reports, txm: txm}
}

func (s *HistoryService) List(ctx context.Context) ([]domain.Record, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *HistoryService) Get(ctx context.Context, index int) (domain.Record, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Record{}, err
	}
	if index < 0 || index >= len(s.records) {
		return domain.Record{}, fmt.Errorf("%w: %d of %d", domain.ErrIndexOutOfRange, index, len(s.records))
	}
	return s.records[index], nil
}

func (s *HistoryService) Prepend(ctx context.Context, record domain.Record) ([]domain.Record, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	next := domain.Prepend(s.records, record)
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.records = next
	return s.List(ctx)
}

func (s *HistoryService) ReplaceAt(ctx context.Context, index int, record domain.Record) ([]domain.Record, error) {
	if err := record.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	next, err := domain.ReplaceAt(s.records, index, record)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, next); err != nil {
		return nil, err
	}
	s.records = next
	return s.List(ctx)
}

// Clear is the maintenance primitive for the NonEmpty -> Empty transition.
func (s *HistoryService) Clear(ctx context.Context) error {
	if err := s.persist(ctx, nil); err != nil {
		return err
	}
	s.records = nil
	s.loaded = true
	return nil
}

func (s *HistoryService) Export(ctx context.Context, dir string) ([]string, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(s.records))
	for position, record := range s.records {
		path, err := s.reports.Write(ctx, dir, position, record)
		if err != nil {
			return nil, fmt.Errorf("export run %d: %w", position, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (s *HistoryService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	records, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	s.records = records
	s.loaded = true
	return nil
}

func (s *HistoryService) persist(ctx context.Context, records []domain.Record) error {
	return s.txm.Within(ctx, func(ctx context.Context) error {
		if err := s.store.Save(ctx, records); err != nil {
			return err
		}
		if err := s.projector.Reset(ctx); err != nil {
			return err
		}
		for position, record := range records {
			if err := s.projector.UpsertRun(ctx, position, record); err != nil {
				return err
			}
		}
		return nil
	})
}
