package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/coverflow/internal/config"
	"github.com/ytget/coverflow/internal/loader"
	"github.com/ytget/coverflow/internal/platform"
)

var scanCmd = &cobra.Command{
	Use:   "scan <source>",
	Short: "Fetch every cover of a collection without opening a window",
	Long: `Opens the source the way the carousel does and pages through it,
fetching each image once. Reports how many images loaded and lists the
ones that failed. Exits non-zero when any image failed.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	params := cfg.Params()
	if err := params.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	c, err := platform.OpenSource(ctx, args[0], platform.NewPlaylistSource())
	if err != nil {
		return fmt.Errorf("error opening %s: %w", args[0], err)
	}

	workers := parallel
	if workers < 1 && cfg != nil && cfg.MaxParallel != nil {
		workers = *cfg.MaxParallel
	}
	if workers < 1 {
		workers = config.DefaultMaxParallel
	}

	svc := loader.NewService(loader.NewDefaultFetcher(), workers)
	if err := svc.Start(context.Background()); err != nil {
		return fmt.Errorf("error starting loader: %w", err)
	}
	defer svc.Stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scanning %s (%d items)\n", c.Title, c.Len())

	report, err := loader.Scan(ctx, svc, loader.NewInbox(workers*2), c, params, func(upper, total int) {
		fmt.Fprintf(out, "  %d / %d\n", upper+1, total)
	})
	if err != nil {
		return fmt.Errorf("scan interrupted: %w", err)
	}

	fmt.Fprintf(out, "Loaded %d of %d images in %s\n", report.Completed, report.Items, report.Elapsed.Round(time.Millisecond))
	if len(report.Failed) == 0 {
		return nil
	}
	fmt.Fprintf(out, "Failed %d:\n", len(report.Failed))
	for _, job := range report.Failed {
		fmt.Fprintf(out, "  [%d] %s: %s\n", job.Index, job.Location, job.LastError)
	}
	return fmt.Errorf("%d of %d images failed", len(report.Failed), report.Items)
}
