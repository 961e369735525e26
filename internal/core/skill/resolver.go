package skill

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Resolver はスキル名からスキル ID を解決し、存在しなければ作成します。
// 呼び出し元のトランザクションはコンテキスト経由で引き継がれます。
type Resolver struct {
	repo Repository
}

// NewResolver は Resolver を生成します。
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve はスキル名に対応する ID を返します。
// 同名スキルを並行して作成しようとして競合した場合は、一度だけ再検索します。
func (r *Resolver) Resolve(ctx context.Context, name string) (int64, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, ErrInvalidName
	}

	found, err := r.repo.FindByName(ctx, trimmed)
	if err == nil {
		return found.ID, nil
	}
	if !errors.Is(err, ErrSkillNotFound) {
		return 0, fmt.Errorf("skill: find %q: %w", trimmed, err)
	}

	created, err := r.repo.Create(ctx, trimmed)
	if err == nil {
		return created.ID, nil
	}
	if !errors.Is(err, ErrSkillAlreadyExists) {
		return 0, fmt.Errorf("skill: create %q: %w", trimmed, err)
	}

	found, err = r.repo.FindByName(ctx, trimmed)
	if err != nil {
		return 0, fmt.Errorf("skill: find %q after conflict: %w", trimmed, err)
	}
	return found.ID, nil
}
