package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type txContextKey struct{}

type txStarter interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

var (
	readOnlyTx  = pgx.TxOptions{AccessMode: pgx.ReadOnly}
	readWriteTx = pgx.TxOptions{AccessMode: pgx.ReadWrite}
	// snapshotTx は複数の集計クエリが同じ時点のデータを読むためのオプションです。
	snapshotTx = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
)

// TransactionManager は社員・スキル更新と集計読み取りのトランザクション境界を管理します。
// 既にコンテキストにトランザクションがあれば新たに開始せず、それを使います。
type TransactionManager struct {
	pool txStarter
}

// NewTransactionManager は TransactionManager を生成します。pool が nil なら nil を返し、
// その場合の各メソッドは fn をそのまま実行します。
func NewTransactionManager(pool txStarter) *TransactionManager {
	if pool == nil {
		return nil
	}
	return &TransactionManager{pool: pool}
}

// WithinReadOnly は読み取り専用トランザクション内で fn を実行します。
func (m *TransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	return m.run(ctx, readOnlyTx, fn)
}

// WithinReadWrite は読み書きトランザクション内で fn を実行します。
func (m *TransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	return m.run(ctx, readWriteTx, fn)
}

// WithinReadOnlySnapshot は REPEATABLE READ の読み取り専用トランザクション内で fn を実行します。
// fn 内のクエリはすべて最初のクエリ時点のスナップショットを参照します。
func (m *TransactionManager) WithinReadOnlySnapshot(ctx context.Context, fn func(context.Context) error) error {
	return m.run(ctx, snapshotTx, fn)
}

func (m *TransactionManager) run(ctx context.Context, opts pgx.TxOptions, fn func(context.Context) error) error {
	if fn == nil {
		return fmt.Errorf("postgres: transaction function is required")
	}
	if m == nil {
		return fn(ctx)
	}
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.pool.BeginTx(ctx, opts)
	if err != nil {
		return WrapTransient(fmt.Errorf("postgres: begin %s tx: %w", describeTx(opts), err))
	}

	fnErr := fn(context.WithValue(ctx, txContextKey{}, tx))
	return finishTx(ctx, tx, fnErr)
}

// finishTx は fnErr が nil ならコミットし、そうでなければロールバックします。
func finishTx(ctx context.Context, tx pgx.Tx, fnErr error) error {
	if fnErr != nil {
		return errors.Join(fnErr, rollback(ctx, tx))
	}

	if err := tx.Commit(ctx); err != nil {
		commitErr := fmt.Errorf("postgres: commit: %w", err)
		if errors.Is(err, pgx.ErrTxClosed) {
			return commitErr
		}
		return errors.Join(commitErr, rollback(ctx, tx))
	}
	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("postgres: rollback: %w", err)
	}
	return nil
}

func describeTx(opts pgx.TxOptions) string {
	mode := "read-write"
	if opts.AccessMode == pgx.ReadOnly {
		mode = "read-only"
	}
	if opts.IsoLevel == pgx.RepeatableRead {
		return "snapshot " + mode
	}
	return mode
}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	if ctx == nil {
		return nil, false
	}
	tx, ok := ctx.Value(txContextKey{}).(pgx.Tx)
	return tx, ok
}

// QueryerFromContext はコンテキストのトランザクションを返し、無ければ fallback を返します。
func QueryerFromContext(ctx context.Context, fallback Queryer) Queryer {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return fallback
}

// Queryer は pgx.Tx と pgxpool.Pool が共に満たすクエリ実行インターフェースです。
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}
