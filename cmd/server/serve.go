package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"newsletter-go/internal/app"
	"newsletter-go/internal/config"
	"newsletter-go/internal/emailclient"
	"newsletter-go/internal/logging"
	"newsletter-go/internal/telemetry"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand(opts *rootOptions) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve /health_check and /subscriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(opts.configDir)
			if err != nil {
				return fmt.Errorf("failed to read configuration: %w", err)
			}
			return serve(cmd.Context(), settings, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving (postgres backend only)")
	return cmd
}

func serve(ctx context.Context, settings *config.Settings, migrate bool) error {
	logger := logging.NewLogger(settings.Application.LogLevel)

	tp, err := telemetry.InitTracing(settings.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		if err := telemetry.ShutdownTracing(context.Background(), tp); err != nil {
			logger.WithError(err).Error("Error shutting down tracer provider")
		}
	}()

	repo, closeRepo, err := openRepository(ctx, settings, logger, migrate)
	if err != nil {
		return err
	}
	defer closeRepo()

	emailClient, err := newEmailClient(settings.EmailClient)
	if err != nil {
		return err
	}

	application := app.Build(&app.Config{
		ServiceName:     settings.Telemetry.ServiceName,
		Address:         settings.Application.Address(),
		Logger:          logger,
		TracerProvider:  tp,
		GinMode:         settings.Application.GinMode,
		Repository:      repo,
		EmailClient:     emailClient,
		SendOnSubscribe: settings.EmailClient.SendOnSubscribe,
	})

	logger.WithFields(logrus.Fields{
		"address":         settings.Application.Address(),
		"storage_backend": settings.Storage.Backend,
	}).Info("Configuration loaded")

	errCh := make(chan error, 1)
	go func() {
		errCh <- application.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-quit:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exited")
	return nil
}

func newEmailClient(settings config.EmailClientSettings) (*emailclient.Client, error) {
	sender, err := settings.Sender()
	if err != nil {
		return nil, fmt.Errorf("invalid email_client.sender_email: %w", err)
	}
	return emailclient.New(
		settings.BaseURL,
		sender,
		settings.AuthorizationToken.Expose(),
		settings.Timeout(),
	), nil
}
