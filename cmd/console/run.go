package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"alfredoptarigan/cv-warehouse/internal/client"
	"alfredoptarigan/cv-warehouse/internal/config"
	"alfredoptarigan/cv-warehouse/internal/console"
	"alfredoptarigan/cv-warehouse/internal/shell"
	"alfredoptarigan/cv-warehouse/pkg/log"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Serve the console",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if apiURL != "" {
			cfg.Console.APIBaseURL = apiURL
		}
		if port != "" {
			cfg.Console.Port = port
		}
		if logLevel != "" {
			cfg.Server.LogLevel = logLevel
		}

		base := log.InitLog(log.ParseLevel(cfg.Server.LogLevel))
		defer func() { _ = base.Sync() }()
		undo := zap.ReplaceGlobals(base)
		defer undo()

		sugar := zap.S().Named("console")
		sugar.Infow("starting console", "api", cfg.Console.APIBaseURL, "port", cfg.Console.Port)
		defer sugar.Info("console stopped")

		api := client.New(cfg.Console.APIBaseURL, cfg.Console.RequestTimeout)
		layout := console.DefaultLayout()

		server, err := shell.New(shell.Options{
			Layout:    layout,
			BodyLimit: int(cfg.Storage.MaxFileSize) + 1<<20,
			AccessLog: true,
			Factory: func(dialogs console.Dialogs) (*console.Console, error) {
				return console.New(console.Options{
					Layout:         layout,
					Analyzer:       api,
					Warehouse:      api,
					Ranker:         api,
					Dialogs:        dialogs,
					Clock:          clock.RealClock{},
					Debounce:       cfg.Console.SearchDebounce,
					RequestTimeout: cfg.Console.RequestTimeout,
				})
			},
		})
		if err != nil {
			return fmt.Errorf("creating console server: %w", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		go func() {
			<-ctx.Done()
			sugar.Info("shutting down console")
			if err := server.Shutdown(); err != nil {
				sugar.Errorw("console forced to shutdown", "error", err)
			}
		}()

		return server.Listen(fmt.Sprintf(":%s", cfg.Console.Port))
	},
}
