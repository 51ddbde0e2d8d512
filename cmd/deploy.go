package cmd

import (
	"context"
	"deployer/internal/config"
	"deployer/internal/db"
	"deployer/internal/deployer"
	"deployer/internal/logger"
	"deployer/internal/repository"
	"deployer/internal/server"
	"deployer/internal/watcher"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func runDeploy(cmd *cobra.Command, args []string) error {
	defer logger.Sync()
	// from here on errors are runtime failures, not usage mistakes
	cmd.SilenceUsage = true

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// cobra prints the returned error
	return deploy(ctx, cfg)
}

func deploy(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", deployer.ErrInputValidation, err)
	}

	target := cfg.Target()
	if err := deployer.Preflight(target); err != nil {
		return err
	}

	uploader, err := deployer.NewUploader(target.Server, cfg.Timeout)
	if err != nil {
		return err
	}

	if err := db.Init(); err != nil {
		return err
	}
	histRepo := repository.NewHistoryRepository()

	d := deployer.New(target, uploader, deployer.Options{
		SettleDelay: cfg.SettleDelay,
		Recorder:    histRepo,
	})

	if cfg.StatusAddr != "" {
		srv := server.New(d, histRepo, cfg.StatusAddr)
		srv.Start()

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				logger.Log.Warn("failed to stop status server", zap.Error(err))
			}
		}()
	}

	outcome, err := d.Deploy(ctx, cfg.Watch)
	if err != nil {
		return err
	}

	if outcome == deployer.OutcomeDone {
		logger.Log.Info("one-time deployment completed",
			zap.String("uri", target.URI))
		return nil
	}

	return watch(ctx, d, cfg.BufferSize)
}

func watch(ctx context.Context, d *deployer.Deployer, bufferSize int) error {
	w, err := watcher.New(d.Target().File, bufferSize)
	if err != nil {
		return fmt.Errorf("%w: %w", deployer.ErrWatchSubscription, err)
	}
	defer w.Stop()

	logger.Log.Info("watching for file changes, press Ctrl+C to stop",
		zap.String("file", w.Path()))

	d.Watch(ctx, w.Events())
	return nil
}
