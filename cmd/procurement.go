package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/visionflow/internal/httpapi"
	"github.com/sells-group/visionflow/internal/procure"
	"github.com/sells-group/visionflow/internal/repo"
)

var procurementPort int

var procurementCmd = &cobra.Command{
	Use:   "procurement",
	Short: "Start the procurement document-intelligence service",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		seeds, err := loadSeeds()
		if err != nil {
			return err
		}

		analyzer := newAnalyzer()
		svc := procure.New(
			analyzer,
			newFetcher(),
			repo.NewMemoryBudgets(seeds.Budgets),
			repo.NewMemoryPurchaseOrders(seeds.PurchaseOrders),
			repo.NewMemoryInventory(seeds.Inventory),
			repo.NewMemoryPaidInvoices(seeds.PaidInvoices),
		)

		handler := httpapi.NewProcurementRouter(svc, analyzer.Configured())

		port := procurementPort
		if port == 0 {
			port = cfg.Server.ProcurementPort
		}
		return listenAndServe(ctx, port, handler, "procurement")
	},
}

func init() {
	procurementCmd.Flags().IntVar(&procurementPort, "port", 0, "listen port (default from config)")
	rootCmd.AddCommand(procurementCmd)
}
