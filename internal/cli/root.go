package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"golocate/internal/app"
	"golocate/internal/config"
	"golocate/internal/system"
)

// globalFlags are the persistent flags shared by every command.
var globalFlags struct {
	configPath     string
	logLevel       string
	goInstallation string
	probeTimeout   time.Duration
}

// installDirs overrides the default install locations when non-nil.
var installDirs []string

var rootCmd = &cobra.Command{
	Use:   "golocate",
	Short: "golocate – find Go runtimes and tools",
	Long:  "golocate discovers installed Go toolchains, probes their version and environment, and resolves where each Go tool lives.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&globalFlags.configPath, "config", "", "config file (default ~/.golocate/config.toml)")
	pf.StringVar(&globalFlags.logLevel, "log-level", "", "log level: debug|info|warn|error")
	pf.StringVar(&globalFlags.goInstallation, "go-installation", "", "go executable or directory to prefer")
	pf.DurationVar(&globalFlags.probeTimeout, "probe-timeout", 0, "timeout for each go version/env probe")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadApp builds the application context from config file, environment and
// flags, in increasing precedence.
func loadApp() (*app.App, *config.FileSource, error) {
	src, err := config.NewFileSource(globalFlags.configPath)
	if err != nil {
		return nil, nil, err
	}
	cfg := src.Config()
	var source config.Source = src
	if v := strings.TrimSpace(globalFlags.goInstallation); v != "" {
		cfg.GoInstallation = v
		source = config.Static(v)
	}
	if globalFlags.probeTimeout > 0 {
		cfg.ProbeTimeout = globalFlags.probeTimeout
	}
	if v := strings.TrimSpace(globalFlags.logLevel); v != "" {
		cfg.LogLevel = v
	}
	if err := system.SetLevel(cfg.LogLevel); err != nil {
		return nil, nil, err
	}
	a := app.New(app.Options{
		Config:      cfg,
		Source:      source,
		InstallDirs: installDirs,
	})
	return a, src, nil
}

// resolveProject returns project when set, else the enclosing git root of
// the working directory, else the working directory.
func resolveProject(ctx context.Context, a *app.App, project string) string {
	if strings.TrimSpace(project) != "" {
		return project
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	if root, err := system.GitRoot(ctx, a.Executor, wd); err == nil && root != "" {
		return root
	}
	return wd
}
