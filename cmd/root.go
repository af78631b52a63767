package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/dispatchrec/app"
	"github.com/kilianp07/dispatchrec/config"
	"github.com/kilianp07/dispatchrec/infra/logger"
)

var (
	cfgPath  string
	addrFlag string
)

var rootCmd = &cobra.Command{
	Use:   "dispatchrec",
	Short: "Serve the in-memory dispatch record API",
	Long: `Serve the dispatch record API over HTTP.

Records live in memory only and are lost on exit. Routes:
  /api/dispatches                          list, create
  /api/dispatches/{id}                     read, update, delete
  /api/dispatches/{id}/response-times      add a sample
  /api/response-times                      service-wide tracker
  /metrics                                 when a prometheus sink is configured

Settings can be overridden with K_<SECTION>__<KEY> variables,
for example K_HTTP__TOKEN.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file (empty to use environment only)")
	rootCmd.Flags().StringVar(&addrFlag, "addr", "", "listen address, overrides http.address")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addrFlag != "" {
		cfg.HTTP.Address = addrFlag
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
