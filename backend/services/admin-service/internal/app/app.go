package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/config"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

const (
	maxRetries     = 5
	connectTimeout = 5 * time.Second
	initialBackoff = 500 * time.Millisecond
)

type App struct {
	Config *config.Config
	DB     *pgxpool.Pool
}

func NewApp(cfg *config.Config) (*App, error) {
	effectiveURL := cfg.DBUrl
	if cfg.LDFlag_UsingIsolatedSchema {
		var err error
		effectiveURL, err = utils.WithIsolatedRole(cfg.DBUrl, cfg.UniqueRunnerID, cfg.UniqueRunNumber)
		if err != nil {
			return nil, err
		}
		utils.Logger.Infof("Using isolated schema; connecting as role %s",
			strings.ToLower(cfg.UniqueRunnerID+"-"+cfg.UniqueRunNumber))
	} else {
		utils.Logger.Info("Isolated schema disabled; using public schema.")
	}

	dbPool, err := connectWithRetry(effectiveURL)
	if err != nil {
		return nil, err
	}

	return &App{
		Config: cfg,
		DB:     dbPool,
	}, nil
}

func connectWithRetry(databaseURL string) (*pgxpool.Pool, error) {
	backoff := initialBackoff
	var lastErr error

	for i := 1; i <= maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		pool, err := newDBPool(ctx, databaseURL)
		cancel()
		if err == nil {
			utils.Logger.Infof("Successfully connected to database on attempt %d", i)
			return pool, nil
		}
		lastErr = err

		utils.Logger.WithError(err).Warnf(
			"Failed to connect to database %s on attempt %d/%d. Retrying in %v...",
			utils.RedactDBURL(databaseURL), i, maxRetries, backoff,
		)
		if i < maxRetries {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, lastErr)
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
		utils.Logger.Info("Database connection closed.")
	}
}

// newDBPool retires idle sockets before upstream proxies drop them and
// keeps the rest warm with a periodic health check.
func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	return pgxpool.ConnectConfig(ctx, cfg)
}
