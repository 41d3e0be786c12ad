package bootstrap

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	analysisinadapter "pagepulse/internal/modules/analysis/adapter/in"
	analysisoutadapter "pagepulse/internal/modules/analysis/adapter/out"
	analysisin "pagepulse/internal/modules/analysis/port/in"
	analysisout "pagepulse/internal/modules/analysis/port/out"
	analysisservice "pagepulse/internal/modules/analysis/service"
	analysisusecase "pagepulse/internal/modules/analysis/usecase"
	historyinadapter "pagepulse/internal/modules/history/adapter/in"
	historyoutadapter "pagepulse/internal/modules/history/adapter/out"
	historyin "pagepulse/internal/modules/history/port/in"
	historyout "pagepulse/internal/modules/history/port/out"
	historyservice "pagepulse/internal/modules/history/service"
	historyusecase "pagepulse/internal/modules/history/usecase"
	providerinadapter "pagepulse/internal/modules/provider/adapter/in"
	provideroutadapter "pagepulse/internal/modules/provider/adapter/out"
	providerservice "pagepulse/internal/modules/provider/service"
	providerusecase "pagepulse/internal/modules/provider/usecase"
	"pagepulse/internal/platform/clock"
	"pagepulse/internal/platform/config"
	"pagepulse/internal/platform/id"
	"pagepulse/internal/platform/tx"
	uiapp "pagepulse/internal/ui/app"
)

type App struct {
	AnalysisCLI analysisinadapter.CLIHandler
	HistoryCLI  historyinadapter.CLIHandler
	ProviderCLI providerinadapter.CLIHandler

	analysisUC analysisin.Usecase
	historyUC  historyin.Usecase
	projector  historyout.IndexProjector
}

// Close releases the run index's database handle.
func (a *App) Close() error {
	return a.projector.Close()
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	runProjector, err := historyoutadapter.NewSQLiteRunProjector(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("new run projector: %w", err)
	}
	historyUC := historyusecase.NewInteractor(historyservice.NewHistoryService(
		historyoutadapter.NewFileBlobStore(cfg.HistoryPath()),
		runProjector,
		historyoutadapter.NewMarkdownReportWriter(),
		tx.NoopManager{},
	))

	providerUC := providerusecase.NewInteractor(providerservice.NewProviderService(
		provideroutadapter.NewFileManifestStore(cfg.DataDir),
		provideroutadapter.NewGRPCHost(),
	))

	// A missing API key is not checked here: the PageSpeed client reports it
	// on the first audit, so history-only commands work without one.
	var auditProvider analysisout.AuditProvider
	if cfg.Provider == config.ProviderPageSpeed {
		auditProvider = analysisoutadapter.NewPageSpeedClient(
			cfg.Endpoint, cfg.APIKey, time.Duration(cfg.TimeoutSeconds)*time.Second)
	} else {
		auditProvider = analysisoutadapter.NewPluginProvider(cfg.Provider, providerUC)
	}
	analysisUC := analysisusecase.NewInteractor(
		analysisservice.NewAnalysisService(clk, ids, auditProvider),
		historyUC,
	)

	return &App{
		AnalysisCLI: analysisinadapter.NewCLIHandler(analysisUC),
		HistoryCLI:  historyinadapter.NewCLIHandler(historyUC),
		ProviderCLI: providerinadapter.NewCLIHandler(providerUC),
		analysisUC:  analysisUC,
		historyUC:   historyUC,
		projector:   runProjector,
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.analysisUC, exportBridge{history: app.historyUC})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// exportBridge narrows the history usecase to the single method the TUI
// needs for report export.
type exportBridge struct {
	history historyin.Usecase
}

func (b exportBridge) Export(ctx context.Context, dir string) ([]string, error) {
	return b.history.Export(ctx, dir)
}
