package employee

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ogurasousui/hr-records-api/internal/core/skill"
	"github.com/shopspring/decimal"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// SkillResolver はスキル名を ID に解決します。コンテキスト上のトランザクション内で動作します。
type SkillResolver interface {
	Resolve(ctx context.Context, name string) (int64, error)
}

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// Service は社員に関するユースケースをまとめます。
type Service struct {
	repo     Repository
	resolver SkillResolver
	clock    Clock
	tx       TransactionManager
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	CreateEmployee(ctx context.Context, in EmployeeInput) (int64, error)
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	ListEmployees(ctx context.Context, in ListEmployeesInput) (*ListEmployeesResult, error)
	UpdateEmployee(ctx context.Context, id int64, in EmployeeInput) error
	DeleteEmployee(ctx context.Context, id int64) error
	ListEmployeeSkills(ctx context.Context, id int64) ([]*skill.Skill, error)
	AddEmployeeSkill(ctx context.Context, id int64, in AddSkillInput) (int64, error)
	ListEmployeeProjects(ctx context.Context, id int64) ([]*Project, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, resolver SkillResolver, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, resolver: resolver, clock: clock, tx: tx}
}

// EmployeeInput は社員作成・更新時の入力です。更新時も全項目を上書きします。
type EmployeeInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        *string
	DepartmentID int64
	Position     *string
	Salary       *decimal.Decimal
	HireDate     *time.Time
	Status       *Status
	Skills       []string
}

// AddSkillInput は社員へのスキル追加の入力です。SkillID が優先されます。
type AddSkillInput struct {
	SkillID int64
	Name    string
}

// ListEmployeesInput は一覧取得時の入力です。
type ListEmployeesInput struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
	Search    string
}

// ListEmployeesResult は一覧取得結果を表します。
type ListEmployeesResult struct {
	Employees  []*Employee
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

// CreateEmployee は社員を作成し、スキルを解決して関連付けます。
func (s *Service) CreateEmployee(ctx context.Context, in EmployeeInput) (int64, error) {
	validated, err := s.validateInput(in)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		now := s.clock.Now()
		emp := validated.employee
		emp.CreatedAt = now
		emp.UpdatedAt = now

		createdID, err := s.repo.Create(txCtx, emp)
		if err != nil {
			return err
		}

		if err := s.replaceSkills(txCtx, createdID, validated.skills); err != nil {
			return err
		}

		id = createdID
		return nil
	}); err != nil {
		return 0, err
	}

	return id, nil
}

// UpdateEmployee は社員情報を上書きし、スキル関連付けを置き換えます。
func (s *Service) UpdateEmployee(ctx context.Context, id int64, in EmployeeInput) error {
	if id <= 0 {
		return ErrInvalidID
	}

	validated, err := s.validateInput(in)
	if err != nil {
		return err
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		emp := validated.employee
		emp.ID = id
		emp.UpdatedAt = s.clock.Now()

		if err := s.repo.Update(txCtx, emp); err != nil {
			return err
		}

		return s.replaceSkills(txCtx, id, validated.skills)
	})
}

// DeleteEmployee は社員とスキル関連付けを削除します。
func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}

// GetEmployee はスキルを含めて社員を取得します。
func (s *Service) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if err := s.attachSkills(txCtx, []*Employee{found}); err != nil {
			return err
		}

		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListEmployees は検索・並び替え・ページングを適用した社員一覧を返します。
// 件数、ページ本体、スキルは同じ読み取りトランザクションで取得します。
func (s *Service) ListEmployees(ctx context.Context, in ListEmployeesInput) (*ListEmployeesResult, error) {
	page := in.Page
	if page <= 0 {
		page = defaultPage
	}

	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	sortBy, err := ParseSortField(in.SortBy)
	if err != nil {
		return nil, err
	}

	filter := ListEmployeesFilter{
		Search:     strings.TrimSpace(in.Search),
		SortBy:     sortBy,
		Descending: strings.EqualFold(strings.TrimSpace(in.SortOrder), "desc"),
		Limit:      limit,
		Offset:     pageOffset(page, limit),
	}

	var (
		employees []*Employee
		total     int
	)

	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, count, err := s.repo.List(txCtx, filter)
		if err != nil {
			return err
		}

		if err := s.attachSkills(txCtx, found); err != nil {
			return err
		}

		employees = found
		total = count
		return nil
	}); err != nil {
		return nil, err
	}

	if employees == nil {
		employees = []*Employee{}
	}

	return &ListEmployeesResult{
		Employees:  employees,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages(total, limit),
	}, nil
}

// ListEmployeeSkills は社員に関連付けられたスキルを返します。
func (s *Service) ListEmployeeSkills(ctx context.Context, id int64) ([]*skill.Skill, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	var skills []*skill.Skill
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.FindByID(txCtx, id); err != nil {
			return err
		}

		byEmployee, err := s.repo.ListSkills(txCtx, []int64{id})
		if err != nil {
			return err
		}

		skills = byEmployee[id]
		return nil
	}); err != nil {
		return nil, err
	}

	if skills == nil {
		skills = []*skill.Skill{}
	}
	return skills, nil
}

// AddEmployeeSkill は社員にスキルを一件追加し、スキル ID を返します。
// 名前で指定された場合は必要に応じてスキルを作成します。
func (s *Service) AddEmployeeSkill(ctx context.Context, id int64, in AddSkillInput) (int64, error) {
	if id <= 0 {
		return 0, ErrInvalidID
	}

	name := strings.TrimSpace(in.Name)
	if in.SkillID <= 0 {
		if name == "" || utf8.RuneCountInString(name) > maxSkillLength {
			return 0, ErrInvalidSkill
		}
	}

	var skillID int64
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.FindByID(txCtx, id); err != nil {
			return err
		}

		resolved := in.SkillID
		if resolved <= 0 {
			var err error
			resolved, err = s.resolver.Resolve(txCtx, name)
			if err != nil {
				return err
			}
		}

		if err := s.repo.AddSkill(txCtx, id, resolved); err != nil {
			return err
		}

		skillID = resolved
		return nil
	}); err != nil {
		return 0, err
	}

	return skillID, nil
}

// ListEmployeeProjects は社員が参加しているプロジェクトを開始日の新しい順で返します。
func (s *Service) ListEmployeeProjects(ctx context.Context, id int64) ([]*Project, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}

	var projects []*Project
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.FindByID(txCtx, id); err != nil {
			return err
		}

		found, err := s.repo.ListProjects(txCtx, id)
		if err != nil {
			return err
		}

		projects = found
		return nil
	}); err != nil {
		return nil, err
	}

	if projects == nil {
		projects = []*Project{}
	}
	return projects, nil
}

func (s *Service) replaceSkills(ctx context.Context, employeeID int64, names []string) error {
	skillIDs := make([]int64, 0, len(names))
	seen := make(map[int64]struct{}, len(names))
	for _, name := range names {
		skillID, err := s.resolver.Resolve(ctx, name)
		if err != nil {
			return fmt.Errorf("employee: resolve skill %q: %w", name, err)
		}
		if _, ok := seen[skillID]; ok {
			continue
		}
		seen[skillID] = struct{}{}
		skillIDs = append(skillIDs, skillID)
	}

	return s.repo.ReplaceSkills(ctx, employeeID, skillIDs)
}

func (s *Service) attachSkills(ctx context.Context, employees []*Employee) error {
	if len(employees) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.ID)
	}

	byEmployee, err := s.repo.ListSkills(ctx, ids)
	if err != nil {
		return err
	}

	for _, emp := range employees {
		names := make([]string, 0, len(byEmployee[emp.ID]))
		for _, sk := range byEmployee[emp.ID] {
			names = append(names, sk.Name)
		}
		emp.Skills = names
	}
	return nil
}

// pageOffset は (page-1)*limit を返します。int に収まらない場合は math.MaxInt に飽和させ、
// どの行よりも後ろを指す空ページになります。
func pageOffset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

func totalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}
