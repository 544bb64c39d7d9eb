package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the command tree with args and returns what it printed.
// Flag variables are restored afterwards.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	origConfig, origForce, origParallel := configPath, forceInit, parallel
	origDebug, origQuiet := debugMode, quietMode
	t.Cleanup(func() {
		configPath, forceInit, parallel = origConfig, origForce, origParallel
		debugMode, quietMode = origDebug, origQuiet
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func TestQuietFlagExists(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("quiet")
	if flag == nil {
		t.Fatal("--quiet flag not found")
	}
	if flag.DefValue != "false" {
		t.Errorf("--quiet default = %q, want %q", flag.DefValue, "false")
	}
	if flag.Shorthand != "q" {
		t.Errorf("--quiet shorthand = %q, want %q", flag.Shorthand, "q")
	}
}

func TestParallelFlagExists(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("parallel")
	if flag == nil {
		t.Fatal("--parallel flag not found")
	}
	if flag.DefValue != "0" {
		t.Errorf("--parallel default = %q, want %q", flag.DefValue, "0")
	}
}

func TestRootAcceptsAtMostOneSource(t *testing.T) {
	if err := rootCmd.Args(rootCmd, []string{"a", "b"}); err == nil {
		t.Error("Expected an error for two sources")
	}
	if err := rootCmd.Args(rootCmd, []string{"a"}); err != nil {
		t.Errorf("Expected one source to be accepted, got %v", err)
	}
}

func TestInitLogging_Quiet(t *testing.T) {
	origDebug, origQuiet := debugMode, quietMode
	defer func() {
		debugMode, quietMode = origDebug, origQuiet
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	}()

	debugMode = true
	quietMode = true
	initLogging()

	if log.Writer() != io.Discard {
		t.Error("Expected logging to be discarded")
	}
	if log.Flags()&log.Lshortfile != 0 {
		t.Error("Expected quiet to take precedence over debug")
	}
}

func TestVersionTemplate(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	defer SetVersionInfo(origVersion, origCommit, origDate)

	SetVersionInfo("1.2.3", "none", "unknown")
	if got := versionTemplate(); got != "coverflow 1.2.3\n" {
		t.Errorf("Expected plain version, got %q", got)
	}

	SetVersionInfo("1.2.3", "abc123", "2026-01-02")
	got := versionTemplate()
	if !strings.Contains(got, "commit: abc123") || !strings.Contains(got, "built:  2026-01-02") {
		t.Errorf("Expected commit and date, got %q", got)
	}
}

func TestLoadConfig_MissingDefaultIsNotAnError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	origConfig := configPath
	defer func() { configPath = origConfig }()

	configPath = ""
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg != nil {
		t.Errorf("Expected nil config, got %+v", cfg)
	}

	configPath = filepath.Join(t.TempDir(), "missing.toml")
	if _, err := loadConfig(); err == nil {
		t.Error("Expected an error for an explicit missing file")
	}
}
