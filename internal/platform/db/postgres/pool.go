package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ogurasousui/hr-records-api/internal/platform/config"
	"github.com/sirupsen/logrus"
)

// BuildPoolConfig は database 設定から pgxpool.Config を構築します。
func BuildPoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres: parse config: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	}

	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	if cfg.ConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.ConnMaxIdleTime
	}

	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	if cfg.TimeZone != "" {
		poolCfg.ConnConfig.RuntimeParams["timezone"] = cfg.TimeZone
	}

	if cfg.ClientEncoding != "" {
		poolCfg.ConnConfig.RuntimeParams["client_encoding"] = cfg.ClientEncoding
	}

	return poolCfg, nil
}

// NewPool は pgxpool.Pool を生成し、起動時のヘルスチェックを行います。
// ヘルスチェックに失敗した場合はプールを閉じてエラーを返します。
func NewPool(ctx context.Context, cfg config.DatabaseConfig, logger logrus.FieldLogger) (*pgxpool.Pool, error) {
	poolCfg, err := BuildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	version, err := HealthCheck(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"host":      cfg.Host,
			"database":  cfg.Name,
			"max_conns": poolCfg.MaxConns,
			"version":   version,
		}).Info("database connected")
	}

	return pool, nil
}

// Pinger はヘルスチェックに必要な操作です。pgxpool.Pool と互換性があります。
type Pinger interface {
	Ping(ctx context.Context) error
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// HealthCheck は疎通確認を行い、サーバーのバージョン文字列を返します。
func HealthCheck(ctx context.Context, db Pinger) (string, error) {
	if err := db.Ping(ctx); err != nil {
		return "", fmt.Errorf("postgres: ping: %w", err)
	}

	var version string
	if err := db.QueryRow(ctx, `SELECT version()`).Scan(&version); err != nil {
		return "", fmt.Errorf("postgres: query version: %w", err)
	}

	return version, nil
}
