package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/hr-records-api/internal/core/skill"
	pgdb "github.com/ogurasousui/hr-records-api/internal/platform/db/postgres"
)

// SkillRepository は PostgreSQL を利用したスキル永続化の実装です。
type SkillRepository struct {
	pool pgdb.Queryer
}

// NewSkillRepository は SkillRepository を生成します。
func NewSkillRepository(pool pgdb.Queryer) *SkillRepository {
	return &SkillRepository{pool: pool}
}

// FindByName は名前の完全一致でスキルを取得します。
func (r *SkillRepository) FindByName(ctx context.Context, name string) (*skill.Skill, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name
          FROM skills
         WHERE name = $1
         LIMIT 1
    `, name)

	var s skill.Skill
	if err := row.Scan(&s.ID, &s.Name); err != nil {
		return nil, translateSkillPgError(err)
	}
	return &s, nil
}

// Create はスキルを作成します。
// 同名の行が並行して挿入されていた場合は文を失敗させずに ErrSkillAlreadyExists を返すため、
// 呼び出し側のトランザクションは中断されません。
func (r *SkillRepository) Create(ctx context.Context, name string) (*skill.Skill, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO skills (name)
        VALUES ($1)
        ON CONFLICT (name) DO NOTHING
        RETURNING id, name
    `, name)

	var s skill.Skill
	if err := row.Scan(&s.ID, &s.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, skill.ErrSkillAlreadyExists
		}
		return nil, translateSkillPgError(err)
	}
	return &s, nil
}

// List はすべてのスキルを名前順に返します。
func (r *SkillRepository) List(ctx context.Context) ([]*skill.Skill, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, name
          FROM skills
         ORDER BY name
    `)
	if err != nil {
		return nil, translateSkillPgError(err)
	}
	defer rows.Close()

	skills := make([]*skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, translateSkillPgError(err)
		}
		skills = append(skills, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, translateSkillPgError(err)
	}
	return skills, nil
}

func translateSkillPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return skill.ErrSkillNotFound
	}
	if pgdb.HasCode(err, pgdb.UniqueViolationCode) {
		return skill.ErrSkillAlreadyExists
	}
	return pgdb.WrapTransient(err)
}
