package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/hr-records-api/internal/core/auth"
	pgdb "github.com/ogurasousui/hr-records-api/internal/platform/db/postgres"
)

// UserRepository は PostgreSQL を利用した認証ユーザー永続化の実装です。
type UserRepository struct {
	pool pgdb.Queryer
}

// NewUserRepository は UserRepository を生成します。
func NewUserRepository(pool pgdb.Queryer) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create はユーザーを新規作成します。
func (r *UserRepository) Create(ctx context.Context, u *auth.User) (*auth.User, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO users (username, password_hash, role, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, username, password_hash, role, created_at
    `, u.Username, u.PasswordHash, string(u.Role), u.CreatedAt)

	created, err := scanUser(row)
	if err != nil {
		return nil, translateUserPgError(err)
	}
	return created, nil
}

// FindByUsername はユーザー名でユーザーを取得します。
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, username, password_hash, role, created_at
          FROM users
         WHERE username = $1
         LIMIT 1
    `, username)

	found, err := scanUser(row)
	if err != nil {
		return nil, translateUserPgError(err)
	}
	return found, nil
}

func scanUser(row pgx.Row) (*auth.User, error) {
	var (
		id        int64
		username  string
		hash      string
		role      string
		createdAt time.Time
	)

	if err := row.Scan(&id, &username, &hash, &role, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}

	return &auth.User{
		ID:           id,
		Username:     username,
		PasswordHash: hash,
		Role:         auth.Role(role),
		CreatedAt:    createdAt,
	}, nil
}

func translateUserPgError(err error) error {
	if err == nil {
		return nil
	}
	if pgdb.HasCode(err, pgdb.UniqueViolationCode) {
		return auth.ErrUsernameAlreadyExists
	}
	return pgdb.WrapTransient(err)
}
