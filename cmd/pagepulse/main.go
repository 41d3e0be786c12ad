package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pagepulse/internal/bootstrap"
	"pagepulse/internal/modules/analysis/domain"
	analysisdto "pagepulse/internal/modules/analysis/dto"
	"pagepulse/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string
	var verbose bool

	root := &cobra.Command{
		Use:           "pagepulse",
		Short:         "Web page performance analyzer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logrus.SetLevel(logrus.WarnLevel)
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", defaultDataDir(), "data directory")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newAnalyzeCmd(&dataDir))
	root.AddCommand(newHistoryCmd(&dataDir))
	root.AddCommand(newProviderCmd(&dataDir))
	return root
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".pagepulse")
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.Load(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run pagepulse terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newAnalyzeCmd(dataDir *string) *cobra.Command {
	var strategy string
	analyze := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Audit a page and store the run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			results, err := app.AnalysisCLI.Analyze(context.Background(), args[0], strategy)
			if err != nil {
				return err
			}
			if len(results) > 0 {
				printRun(cmd, results[0])
			}
			return nil
		},
	}
	analyze.Flags().StringVar(&strategy, "strategy", "mobile", "audit strategy: mobile|desktop")
	return analyze
}

func newHistoryCmd(dataDir *string) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Stored run history"}

	history.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			runs, err := app.AnalysisCLI.History(context.Background())
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no runs")
				return nil
			}
			for i, r := range runs {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%.0f (%s)\t%s\n",
					i, r.Date, r.Strategy, r.Score, domain.ClassifyScore(r.Score), r.URL)
			}
			return nil
		},
	})

	var showIndex int
	show := &cobra.Command{
		Use:   "show --index <n>",
		Short: "Show one run with graded metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			r, err := app.HistoryCLI.Get(context.Background(), showIndex)
			if err != nil {
				return err
			}
			printRun(cmd, analysisdto.ResultOutput{
				ID: r.ID, URL: r.URL, Strategy: r.Strategy, Date: r.Date, Score: r.Score,
				FCP: r.FCP, LCP: r.LCP, TTI: r.TTI, TBT: r.TBT, CLS: r.CLS,
			})
			return nil
		},
	}
	show.Flags().IntVar(&showIndex, "index", 0, "run index, 0 is the newest")
	history.AddCommand(show)

	var rerunIndex int
	rerun := &cobra.Command{
		Use:   "rerun --index <n>",
		Short: "Re-audit a run's page and replace it in place",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			results, err := app.AnalysisCLI.Rerun(context.Background(), rerunIndex)
			if err != nil {
				return err
			}
			if rerunIndex < len(results) {
				printRun(cmd, results[rerunIndex])
			}
			return nil
		},
	}
	rerun.Flags().IntVar(&rerunIndex, "index", 0, "run index, 0 is the newest")
	history.AddCommand(rerun)

	history.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete all stored runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.HistoryCLI.Clear(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
			return nil
		},
	})

	var exportDir string
	export := &cobra.Command{
		Use:   "export --dir <path>",
		Short: "Write per-run markdown reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if exportDir == "" {
				return fmt.Errorf("--dir is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			files, err := app.HistoryCLI.Export(context.Background(), exportDir)
			if err != nil {
				return err
			}
			for _, f := range files {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
	export.Flags().StringVar(&exportDir, "dir", "", "output directory")
	history.AddCommand(export)

	return history
}

func newProviderCmd(dataDir *string) *cobra.Command {
	provider := &cobra.Command{Use: "provider", Short: "Audit provider plugins"}

	provider.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List provider manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			providers, err := app.ProviderCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(providers) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no providers configured")
				return nil
			}
			for _, p := range providers {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t binary=%s\n", p.Name, p.Version, p.Enabled, p.Binary)
			}
			return nil
		},
	})

	provider.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate provider checksums and lifecycle",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			results, err := app.ProviderCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no providers configured")
				return nil
			}
			failed := false
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s checksum=%t binary=%t lifecycle=%t", r.Name, r.ChecksumValid, r.BinaryReachable, r.LifecycleOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
				if !r.ChecksumValid || !r.BinaryReachable || !r.LifecycleOK {
					failed = true
				}
			}
			if failed {
				return fmt.Errorf("provider doctor found failing checks")
			}
			return nil
		},
	})

	return provider
}

func printRun(cmd *cobra.Command, r analysisdto.ResultOutput) {
	grades := domain.Metrics{FCP: r.FCP, LCP: r.LCP, TTI: r.TTI, TBT: r.TBT, CLS: r.CLS}.Grades()
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "url: %s\nstrategy: %s\nwhen: %s\n", r.URL, r.Strategy, r.Date)
	_, _ = fmt.Fprintf(out, "score: %.0f (%s)\n", r.Score, domain.ClassifyScore(r.Score))
	_, _ = fmt.Fprintf(out, "FCP: %.3g s (%s)\n", r.FCP, grades.FCP)
	_, _ = fmt.Fprintf(out, "LCP: %.3g s (%s)\n", r.LCP, grades.LCP)
	_, _ = fmt.Fprintf(out, "TTI: %.3g s (%s)\n", r.TTI, grades.TTI)
	_, _ = fmt.Fprintf(out, "TBT: %.3g ms (%s)\n", r.TBT, grades.TBT)
	_, _ = fmt.Fprintf(out, "CLS: %.3g (%s)\n", r.CLS, grades.CLS)
}
