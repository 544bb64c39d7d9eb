package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/ytget/coverflow/internal/config"
	"github.com/ytget/coverflow/internal/loader"
	"github.com/ytget/coverflow/internal/platform"
	"github.com/ytget/coverflow/internal/ui"
)

const (
	AppID   = "com.ytget.coverflow"
	AppName = "Cover Flow"

	WindowWidth  = 960
	WindowHeight = 640
)

var (
	debugMode             bool
	quietMode             bool
	configPath            string
	version, commit, date string

	parallel int
	demo     bool
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "coverflow [source]",
	Short: "Browse images as a 3D cover flow carousel",
	Long: `coverflow shows a collection of images as a carousel of tilted panels.
The source may be an image directory, a YouTube playlist URL, a .jsonl
playlist dump, a .txt file with one image URL per line, or a single image URL.
Without a source the last opened collection is restored.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runGUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is "+config.DefaultConfigPath()+")")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Log with file and line information")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Disable logging")
	rootCmd.PersistentFlags().IntVarP(&parallel, "parallel", "p", 0, "Maximum parallel image fetches (0 keeps the configured value)")
	rootCmd.Flags().BoolVar(&demo, "demo", false, "Start the demo slideshow")
}

func initLogging() {
	switch {
	case quietMode:
		log.SetOutput(io.Discard)
	case debugMode:
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("coverflow %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("coverflow %s\n", version)
}

// loadConfig reads the config file. A missing file at the default
// location is not an error.
func loadConfig() (*config.FileConfig, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	log.Printf("Loaded config from %s", path)
	return cfg, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log.Printf("%s %s starting...", AppName, version)

	fyneApp := app.NewWithID(AppID)
	fyneApp.Settings().SetTheme(ui.NewCompactTheme())

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(fyneApp)
	settings.Apply(cfg)
	if parallel > 0 {
		settings.SetMaxParallelFetches(parallel)
	}

	loaderSvc := loader.NewService(loader.NewDefaultFetcher(), settings.GetMaxParallelFetches())
	if err := loaderSvc.Start(context.Background()); err != nil {
		return fmt.Errorf("error starting loader: %w", err)
	}
	defer func() {
		if err := loaderSvc.Stop(); err != nil {
			log.Printf("Failed to stop loader: %v", err)
		}
	}()

	root := ui.NewRootUI(window, fyneApp, loaderSvc, platform.NewPlaylistSource())
	if len(args) == 1 {
		root.LoadSource(args[0])
	} else {
		root.Restore()
	}
	if demo {
		root.SetDemo(true)
	}

	window.ShowAndRun()
	return nil
}
