package employee

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	maxNameLength     = 50
	maxEmailLength    = 255
	maxPhoneLength    = 30
	maxPositionLength = 100
	maxSkillLength    = 100
)

var maxSalary = decimal.RequireFromString("9999999.99")

// validatedEmployee は検証と正規化を終えた入力です。
type validatedEmployee struct {
	employee *Employee
	skills   []string
}

func (s *Service) validateInput(in EmployeeInput) (*validatedEmployee, error) {
	firstName, err := normalizeRequired(in.FirstName, maxNameLength, ErrInvalidFirstName)
	if err != nil {
		return nil, err
	}

	lastName, err := normalizeRequired(in.LastName, maxNameLength, ErrInvalidLastName)
	if err != nil {
		return nil, err
	}

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	if in.DepartmentID <= 0 {
		return nil, ErrInvalidDepartmentID
	}

	phone, err := normalizeOptional(in.Phone, maxPhoneLength, ErrInvalidPhone)
	if err != nil {
		return nil, err
	}

	position, err := normalizeOptional(in.Position, maxPositionLength, ErrInvalidPosition)
	if err != nil {
		return nil, err
	}

	salary, err := normalizeSalary(in.Salary)
	if err != nil {
		return nil, err
	}

	hireDate, err := normalizeHireDate(in.HireDate, s.clock.Now())
	if err != nil {
		return nil, err
	}

	status := StatusActive
	if in.Status != nil {
		if !isValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		status = *in.Status
	}

	skills, err := NormalizeSkills(in.Skills)
	if err != nil {
		return nil, err
	}

	return &validatedEmployee{
		employee: &Employee{
			FirstName:    firstName,
			LastName:     lastName,
			Email:        email,
			Phone:        phone,
			DepartmentID: in.DepartmentID,
			Position:     position,
			Salary:       salary,
			HireDate:     hireDate,
			Status:       status,
		},
		skills: skills,
	}, nil
}

// NormalizeSkills はスキル名を前後の空白除去、空要素除外、大文字小文字を無視した重複排除で正規化します。
// 重複した場合は最初に現れた表記を残します。
func NormalizeSkills(raw []string) ([]string, error) {
	seen := make(map[string]struct{}, len(raw))
	normalized := make([]string, 0, len(raw))
	for _, name := range raw {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		if utf8.RuneCountInString(trimmed) > maxSkillLength {
			return nil, ErrInvalidSkill
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, trimmed)
	}
	return normalized, nil
}

func normalizeRequired(raw string, maxLength int, invalid error) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > maxLength {
		return "", invalid
	}
	return trimmed, nil
}

func normalizeOptional(raw *string, maxLength int, invalid error) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > maxLength {
		return nil, invalid
	}
	return &trimmed, nil
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || len(trimmed) > maxEmailLength {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return "", ErrInvalidEmail
	}
	return trimmed, nil
}

func normalizeSalary(raw *decimal.Decimal) (decimal.NullDecimal, error) {
	if raw == nil {
		return decimal.NullDecimal{}, nil
	}
	if raw.IsNegative() || raw.GreaterThan(maxSalary) {
		return decimal.NullDecimal{}, ErrInvalidSalary
	}
	return decimal.NewNullDecimal(raw.Round(2)), nil
}

func normalizeHireDate(raw *time.Time, now time.Time) (*time.Time, error) {
	date := normalizeDate(raw)
	if date == nil {
		return nil, nil
	}
	utc := now.UTC()
	today := normalizeDate(&utc)
	if date.After(*today) {
		return nil, ErrInvalidHireDate
	}
	return date, nil
}

func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	normalized := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &normalized
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusActive, StatusOnLeave, StatusTerminated:
		return true
	default:
		return false
	}
}
