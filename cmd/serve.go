package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/huangsam/onboard/core"
	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/internal/httpapi"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the manifest, calibration and audits over HTTP.",
	Long: `Start an HTTP API that delivers the rules manifest and scores measurements.

Endpoints:
  GET  /healthz
  GET  /v1/manifest              (ETag and Cache-Control for edge caching)
  GET  /v1/rules
  GET  /v1/calibration
  POST /v1/audit?cohort=saas&submit=true
  GET  /v1/benchmarks/{cohort}

Examples:
  # Serve on the default address
  onboard serve

  # Serve a custom manifest with a fitted calibration
  onboard serve --addr :8080 --manifest rules.yaml --calibration calibration.json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		engine, err := core.LoadEngine(cfg)
		if err != nil {
			contract.LogFatal("Cannot load scoring engine", err)
		}

		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := httpapi.NewServer(engine, storeManager, clock, slog.Default())
		if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
			contract.LogFatal("HTTP server failed", err)
		}
	},
}
