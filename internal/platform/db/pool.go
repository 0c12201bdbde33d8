package db

import (
	"context"
	"fmt"
	"time"

	"usdtcalc/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// CreatePoolAndPing connects to Postgres, retrying with exponential backoff
// until the database answers a ping or the attempts are exhausted.
func CreatePoolAndPing(ctx context.Context, cfg config.DbServer) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.GetConnectionStr())
	if err != nil {
		return nil, fmt.Errorf("failed to parse db config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "usdtcalc"

	attempts := cfg.ConnectAttempts
	if attempts <= 0 {
		attempts = 1
	}
	delay := time.Duration(cfg.ConnectRetryDelayMs) * time.Millisecond

	for i := 0; i < attempts; i++ {
		var pool *pgxpool.Pool
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		if i == attempts-1 {
			break
		}
		logrus.WithError(err).WithFields(logrus.Fields{"attempt": i + 1, "max_attempts": attempts}).Warn("Postgres is not reachable yet")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay * time.Duration(1<<i)):
		}
	}
	return nil, fmt.Errorf("failed to connect to db after %d attempts: %w", attempts, err)
}
