package auth

import "context"

// Repository はユーザー永続化の抽象です。
type Repository interface {
	// FindByUsername は該当ユーザーが無ければ ErrUserNotFound を返します。
	FindByUsername(ctx context.Context, username string) (*User, error)
	// Create は重複するユーザー名に対して ErrUsernameAlreadyExists を返します。
	Create(ctx context.Context, user *User) (*User, error)
}
