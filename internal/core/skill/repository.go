package skill

import "context"

// Repository はスキル永続化の抽象です。
type Repository interface {
	// FindByName は名前の完全一致でスキルを検索します。存在しなければ ErrSkillNotFound を返します。
	FindByName(ctx context.Context, name string) (*Skill, error)
	// Create はスキルを作成します。同名のスキルが既に存在する場合は ErrSkillAlreadyExists を返します。
	Create(ctx context.Context, name string) (*Skill, error)
	List(ctx context.Context) ([]*Skill, error)
}
