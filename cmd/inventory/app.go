package main

import (
	"context"
	"fmt"

	"github.com/rogerio-castellano/inventory-store/internal/config"
	"github.com/rogerio-castellano/inventory-store/internal/db"
	"github.com/rogerio-castellano/inventory-store/internal/logging"
	"github.com/rogerio-castellano/inventory-store/internal/redissvc"
	"github.com/rogerio-castellano/inventory-store/internal/repo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// newLogger is swapped out by tests.
var newLogger = logging.New

// app carries everything a command needs once PersistentPreRunE has run.
type app struct {
	v          *viper.Viper
	configPath string
	verbose    bool

	cfg     *config.Config
	logger  *zap.Logger
	repo    repo.InventoryRepository
	closers []func() error
}

func newApp() *app {
	return &app{v: config.New()}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inventory",
		Short: "Track item quantities in a JSON-backed inventory",
		Long: `inventory keeps a mapping from item name to quantity.

Run without arguments to execute the demo sequence: add apple and banana,
attempt an invalid add, remove some apples, remove a missing item, then
print the apple stock, low-stock items and a full report before saving.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runDemo,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./inventory-config.{yaml,toml,json})")
	flags.String("file", "", "inventory file (default inventory.json)")
	flags.String("storage", "", "storage driver: file, postgres or redis")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	_ = a.v.BindPFlag("inventory.file", flags.Lookup("file"))
	_ = a.v.BindPFlag("storage.driver", flags.Lookup("storage"))

	cmd.AddCommand(
		a.addCmd(),
		a.removeCmd(),
		a.getCmd(),
		a.lowCmd(),
		a.reportCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.LogLevel, a.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	a.closers = append(a.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	r, err := a.openRepository(cmd.Context())
	if err != nil {
		return err
	}
	a.repo = r
	return nil
}

func (a *app) openRepository(ctx context.Context) (repo.InventoryRepository, error) {
	switch a.cfg.Storage {
	case config.StoragePostgres:
		database, err := db.Connect(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, database.Close)
		if err := db.Migrate(ctx, database); err != nil {
			return nil, err
		}
		a.logger.Debug("Using Postgres storage")
		return repo.NewPostgresInventoryRepository(database), nil

	case config.StorageRedis:
		rs, err := redissvc.Connect(ctx, a.cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rs.Close)
		a.logger.Debug("Using Redis storage", zap.String("addr", a.cfg.RedisAddr))
		return repo.NewRedisInventoryRepository(rs.Rdb(), a.cfg.RedisKeyPrefix), nil

	case config.StorageFile:
		a.logger.Debug("Using file storage", zap.String("file", a.cfg.File))
		return repo.NewJSONFileRepository(a.cfg.File), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", a.cfg.Storage)
}

// close releases resources in reverse order of acquisition.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}
