package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"golocate/internal/config"
	"golocate/internal/server"
	"golocate/internal/system"
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "address to bind (host:port), default from config")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve runtime and tool lookups over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, src, err := loadApp()
		if err != nil {
			return err
		}
		defer a.Close()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = a.Config.ListenAddr
		}

		// Handle Ctrl+C
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		go func() {
			err := src.Watch(ctx, func(cfg config.Config) {
				system.Logger.Info("config changed", "path", src.Path())
				if err := system.SetLevel(cfg.LogLevel); err != nil {
					system.Logger.Warn("invalid log level", "err", err)
				}
				a.ResetRuntimes()
			})
			if err != nil {
				system.Logger.Warn("config watch disabled", "err", err)
			}
		}()

		srv := &server.Server{Addr: addr, Backend: a}
		return srv.Start(ctx)
	},
}
