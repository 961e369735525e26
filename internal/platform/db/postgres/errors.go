package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/hr-records-api/internal/core/storage"
)

// PostgreSQL の SQLSTATE コードです。
const (
	UniqueViolationCode        = "23505"
	ForeignKeyViolationCode    = "23503"
	CheckViolationCode         = "23514"
	NotNullViolationCode       = "23502"
	StringDataRightTruncation  = "22001"
	NumericValueOutOfRangeCode = "22003"
	TooManyConnectionsCode     = "53300"
	AdminShutdownCode          = "57P01"
	CannotConnectNowCode       = "57P03"
	QueryCanceledCode          = "57014"
)

// IsTransient は接続断やタイムアウトなど、再試行で解消し得るエラーかどうかを判定します。
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.HasPrefix(pgErr.Code, "08") {
			return true
		}
		switch pgErr.Code {
		case TooManyConnectionsCode, AdminShutdownCode, CannotConnectNowCode, QueryCanceledCode:
			return true
		}
	}

	return false
}

// WrapTransient は一時的な障害であれば storage.ErrUnavailable を付与し、それ以外はそのまま返します。
func WrapTransient(err error) error {
	if err == nil || errors.Is(err, storage.ErrUnavailable) {
		return err
	}
	if IsTransient(err) {
		return fmt.Errorf("%w: %w", storage.ErrUnavailable, err)
	}
	return err
}

// HasCode は err が指定した SQLSTATE の PostgreSQL エラーかどうかを判定します。
func HasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
