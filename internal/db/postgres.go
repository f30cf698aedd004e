package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

const (
	defaultMaxOpenConns = 25
	defaultMaxIdleConns = 5
	defaultConnLifetime = time.Hour
	defaultConnIdleTime = 30 * time.Minute
	defaultPingTimeout  = 5 * time.Second
)

// NewPostgres creates a pgx/stdlib backed *sql.DB pool and validates the
// connection, retrying a fixed number of times with a fixed delay. This is
// the only automatic retry in the process; request paths never retry.
func NewPostgres(dsn string, attempts int, delay time.Duration, logger *zap.Logger) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("db: empty DSN")
	}
	if attempts < 1 {
		attempts = 1
	}

	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(defaultMaxOpenConns)
	sqlDB.SetMaxIdleConns(defaultMaxIdleConns)
	sqlDB.SetConnMaxLifetime(defaultConnLifetime)
	sqlDB.SetConnMaxIdleTime(defaultConnIdleTime)

	var pingErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		pingErr = ping(sqlDB)
		if pingErr == nil {
			return sqlDB, nil
		}
		logger.Warn("postgres not reachable",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Error(pingErr),
		)
		if attempt < attempts {
			time.Sleep(delay)
		}
	}

	sqlDB.Close()
	return nil, pingErr
}

func ping(sqlDB *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
