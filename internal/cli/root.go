package cli

import (
	"context"
	"fmt"
	"log/slog"

	"logistics/db"
	"logistics/db/migrations"
	"logistics/internal/config"
	"logistics/internal/logger"

	"github.com/spf13/cobra"
)

// RootOptions - общие флаги всех команд
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand создает корневую команду logistics.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "logistics",
		Short: "Logistics marketplace",
		Long: `Marketplace where customers post transport requests and suppliers bid on them.

Configuration is read from environment variables (and .env):
` + config.Usage(),
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "optional YAML config file")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewInitDBCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

// env - всё, что нужно командам для работы с базой
type env struct {
	cfg   *config.Config
	log   *slog.Logger
	store *db.Storage
}

func (e *env) Close() error {
	return e.store.Close()
}

// openEnv читает конфиг, подключается к базе и применяет миграции.
func openEnv(ctx context.Context, opts *RootOptions) (*env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	log := logger.Setup(cfg.Env)

	conn, err := db.Open(ctx, cfg.DB.Driver, cfg.DB.DSN, db.PoolConfig{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}

	if err := migrations.Run(conn.DB, cfg.DB.Driver); err != nil {
		conn.Close()
		return nil, fmt.Errorf("cannot migrate: %w", err)
	}

	log.Debug("database ready", slog.String("driver", cfg.DB.Driver))
	return &env{cfg: cfg, log: log, store: db.NewStorage(conn)}, nil
}
