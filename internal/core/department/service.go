package department

import "context"

// Service は部署参照のユースケースです。
type Service struct {
	repo Repository
}

// NewService は Service を生成します。
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListDepartments は全部署を名前順で返します。
func (s *Service) ListDepartments(ctx context.Context) ([]*Department, error) {
	departments, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if departments == nil {
		departments = []*Department{}
	}
	return departments, nil
}
