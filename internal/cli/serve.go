package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"logistics/internal/auth"
	"logistics/internal/handlers"
	"logistics/internal/logger"
	"logistics/internal/service"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, rootOpts, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides SERVER_ADDRESS)")
	return cmd
}

func runServe(ctx context.Context, rootOpts *RootOptions, addr string) error {
	e, err := openEnv(ctx, rootOpts)
	if err != nil {
		return err
	}
	defer e.Close()

	if addr == "" {
		addr = e.cfg.ServerAddress
	}

	tokens, err := auth.NewTokenIssuer(e.cfg.JWT.Secret, e.cfg.JWT.TTL)
	if err != nil {
		return err
	}

	svc := service.New(e.store, e.log)
	h := handlers.NewHandler(svc, tokens, e.log)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handlers.NewRouter(h),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		e.log.Info("starting server", slog.String("addr", addr), slog.String("env", e.cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	e.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		e.log.Error("shutdown failed", logger.Err(err))
		return err
	}
	return nil
}
