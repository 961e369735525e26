package skill

import "context"

// Service はスキル参照系のユースケースです。
type Service struct {
	repo Repository
}

// NewService は Service を生成します。
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListSkills は全スキルを名前順で返します。
func (s *Service) ListSkills(ctx context.Context) ([]*Skill, error) {
	skills, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if skills == nil {
		skills = []*Skill{}
	}
	return skills, nil
}
