package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/frahmantamala/expense-tracker/internal"
	expenseDatamodel "github.com/frahmantamala/expense-tracker/internal/core/datamodel/expense"
	"github.com/frahmantamala/expense-tracker/internal/expense"
	"github.com/frahmantamala/expense-tracker/internal/expense/memory"
	"github.com/frahmantamala/expense-tracker/internal/expense/mongodb"
	"github.com/frahmantamala/expense-tracker/internal/expense/postgres"
	"gorm.io/driver/sqlite"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Store is what the server needs from a backend.
type Store interface {
	expense.Repository
	Ping(ctx context.Context) error
}

// openStore connects the configured backend. The returned close func is
// never nil.
func openStore(ctx context.Context, cfg internal.DatabaseConfig, lg *slog.Logger) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case internal.DriverMemory:
		lg.Warn("using the in-memory store, data is lost on exit")
		return memory.New(), noop, nil

	case internal.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		repo := mongodb.NewExpenseRepository(client.Database(cfg.Name).Collection(cfg.Collection))

		idxCtx, cancel := internal.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
		if err := repo.EnsureIndexes(idxCtx); err != nil {
			lg.Warn("failed to ensure mongo indexes", "error", err)
		}
		return repo, func() error { return client.Disconnect(context.Background()) }, nil

	case internal.DriverPostgres, internal.DriverSQLite:
		db, err := openGorm(cfg)
		if err != nil {
			return nil, noop, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, noop, fmt.Errorf("failed to get sql db: %w", err)
		}
		return postgres.NewExpenseRepository(db), sqlDB.Close, nil
	}

	return nil, noop, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

// openGorm opens the SQL store. sqlite gets its schema from AutoMigrate,
// postgres from the goose migrations.
func openGorm(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormLogger.Default.LogMode(gormLogger.Silent)}

	var dialector gorm.Dialector
	if cfg.Driver == internal.DriverSQLite {
		dialector = sqlite.Open(cfg.GetDSN())
	} else {
		dialector = gormPostgres.Open(cfg.GetDSN())
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	if cfg.Driver == internal.DriverSQLite {
		if strings.Contains(cfg.GetDSN(), ":memory:") {
			// every new connection to :memory: is a fresh database
			sqlDB.SetMaxOpenConns(1)
		}
		if err := db.AutoMigrate(&expenseDatamodel.Expense{}); err != nil {
			return nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
	}

	pingCtx, cancel := internal.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
