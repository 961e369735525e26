package employee

import "errors"

var (
	ErrInvalidID           = errors.New("employee: invalid id")
	ErrInvalidFirstName    = errors.New("employee: invalid first name")
	ErrInvalidLastName     = errors.New("employee: invalid last name")
	ErrInvalidEmail        = errors.New("employee: invalid email")
	ErrInvalidPhone        = errors.New("employee: invalid phone")
	ErrInvalidDepartmentID = errors.New("employee: invalid department id")
	ErrInvalidPosition     = errors.New("employee: invalid position")
	ErrInvalidSalary       = errors.New("employee: invalid salary")
	ErrInvalidHireDate     = errors.New("employee: invalid hire date")
	ErrInvalidStatus       = errors.New("employee: invalid status")
	ErrInvalidSkill        = errors.New("employee: invalid skill")
	ErrInvalidPage         = errors.New("employee: invalid page")
	ErrInvalidPageSize     = errors.New("employee: invalid page size")
	ErrInvalidSortField    = errors.New("employee: invalid sort field")
	ErrEmployeeNotFound    = errors.New("employee: not found")
	ErrEmailAlreadyExists  = errors.New("employee: email already exists")
	ErrDuplicateEntry      = errors.New("employee: duplicate entry")
	ErrDepartmentNotFound  = errors.New("employee: department not found")
	ErrInvalidReference    = errors.New("employee: invalid reference")
	ErrValueTooLong        = errors.New("employee: value too long")
)

var validationErrors = []error{
	ErrInvalidID,
	ErrInvalidFirstName,
	ErrInvalidLastName,
	ErrInvalidEmail,
	ErrInvalidPhone,
	ErrInvalidDepartmentID,
	ErrInvalidPosition,
	ErrInvalidSalary,
	ErrInvalidHireDate,
	ErrInvalidStatus,
	ErrInvalidSkill,
	ErrInvalidPage,
	ErrInvalidPageSize,
	ErrInvalidSortField,
}

// IsValidationError は入力検証で弾かれたエラーかどうかを判定します。
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
