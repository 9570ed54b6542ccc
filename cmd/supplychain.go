package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/visionflow/internal/chat"
	"github.com/sells-group/visionflow/internal/httpapi"
	"github.com/sells-group/visionflow/internal/inspect"
	"github.com/sells-group/visionflow/internal/normalize"
	"github.com/sells-group/visionflow/internal/ops"
	"github.com/sells-group/visionflow/internal/repo"
	"github.com/sells-group/visionflow/internal/store"
	"github.com/sells-group/visionflow/pkg/orchestrate"
)

var supplychainPort int

var supplychainCmd = &cobra.Command{
	Use:   "supplychain",
	Short: "Start the supply-chain inspection service",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		seeds, err := loadSeeds()
		if err != nil {
			return err
		}

		historyLog, closeStore, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer closeStore()

		analyzer := newAnalyzer()
		inspectSvc := inspect.New(analyzer, newFetcher(), historyLog, inspect.Options{
			BoxPolicy: normalize.InspectionPolicy{
				TempMin: cfg.Inspection.TempMin,
				TempMax: cfg.Inspection.TempMax,
			},
			LabelPolicy: normalize.LabelPolicy{
				AestheticMin:  cfg.Label.AestheticMin,
				ConfidenceMin: cfg.Label.ConfidenceMin,
			},
			BatchLimit: cfg.Inspection.BatchLimit,
		})

		opsSvc := ops.New(repo.NewMemoryOrders(seeds.Orders))

		var relay orchestrate.Client
		if cfg.Orchestrate.Key != "" {
			var opts []orchestrate.Option
			if cfg.Orchestrate.TokenURL != "" {
				opts = append(opts, orchestrate.WithTokenURL(cfg.Orchestrate.TokenURL))
			}
			if cfg.Orchestrate.RunsURL != "" {
				opts = append(opts, orchestrate.WithRunsURL(cfg.Orchestrate.RunsURL))
			}
			relay = orchestrate.NewClient(cfg.Orchestrate.Key, opts...)
		}
		chatSvc := chat.New(relay)

		handler := httpapi.NewSupplychainRouter(inspectSvc, opsSvc, chatSvc, analyzer.Configured())

		port := supplychainPort
		if port == 0 {
			port = cfg.Server.SupplychainPort
		}
		return listenAndServe(ctx, port, handler, "supplychain")
	},
}

func init() {
	supplychainCmd.Flags().IntVar(&supplychainPort, "port", 0, "listen port (default from config)")
	rootCmd.AddCommand(supplychainCmd)
}
