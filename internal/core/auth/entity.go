package auth

import (
	"strings"
	"time"
)

// Role はユーザーの権限ロールです。
type Role string

const (
	RoleHR       Role = "HR"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
)

// User は認証ユーザーです。PasswordHash は bcrypt ハッシュです。
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// ParseRole はロール名を検証します。空文字は Employee として扱います。
func ParseRole(raw string) (Role, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return RoleEmployee, nil
	}
	switch role := Role(trimmed); role {
	case RoleHR, RoleManager, RoleEmployee:
		return role, nil
	default:
		return "", ErrInvalidRole
	}
}

// Allows はロールが allowed のいずれかに含まれるかを判定します。
func (r Role) Allows(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
