package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/dispatchrec/config"
	"github.com/kilianp07/dispatchrec/core/dispatch"
	coremetrics "github.com/kilianp07/dispatchrec/core/metrics"
	"github.com/kilianp07/dispatchrec/core/responsetime"
	"github.com/kilianp07/dispatchrec/infra/logger"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a create/read/update/delete walk-through against an in-memory manager",
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return err
	}
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return fmt.Errorf("metrics sink: %w", err)
	}
	logg := logger.New("demo")
	mgr := dispatch.NewManager(logger.New("dispatch"))
	mgr.SetMetrics(sink)
	return walkthrough(mgr, logg)
}

func walkthrough(mgr *dispatch.Manager, logg logger.Logger) error {
	const id dispatch.ID = 101
	if _, err := mgr.Create(id, "Robbery in progress"); err != nil {
		return err
	}
	rec, ok := mgr.Read(id)
	if !ok {
		return fmt.Errorf("dispatch %d missing after create", id)
	}
	logg.Infof("created dispatch %d: %q", id, rec.Description())

	for _, v := range []float64{300, 450} {
		if err := mgr.AddResponseTime(id, v); err != nil {
			return err
		}
	}
	logg.Infof("dispatch %d average response time: %g", id, rec.AverageResponseTime())

	if err := mgr.Update(id, "Resolved"); err != nil {
		return err
	}
	logg.Infof("updated dispatch %d: %q", id, rec.Description())

	if err := mgr.Delete(id); err != nil {
		return err
	}
	if _, ok := mgr.Read(id); ok {
		return fmt.Errorf("dispatch %d still present after delete", id)
	}
	logg.Infof("deleted dispatch %d", id)

	tracker := responsetime.NewTracker()
	tracker.AddResponseTime(300)
	tracker.AddResponseTime(450)
	logg.Infof("tracker average response time: %g over %d samples", tracker.AverageResponseTime(), tracker.Count())
	return nil
}
