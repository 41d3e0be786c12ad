package in

import (
	"context"

	"pagepulse/internal/modules/history/dto"
	historyin "pagepulse/internal/modules/history/port/in"
)

type CLIHandler struct {
	usecase historyin.Usecase
}

func NewCLIHandler(usecase historyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.RecordOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Get(ctx context.Context, index int) (dto.RecordOutput, error) {
	return h.usecase.Get(ctx, index)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}

func (h CLIHandler) Export(ctx context.Context, dir string) ([]string, error) {
	return h.usecase.Export(ctx, dir)
}
