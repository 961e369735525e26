package employee

import "strings"

// SortField は一覧で並び替え可能な項目です。
// 列式への対応付けは永続化層が固定の表で行います。
type SortField string

const (
	SortByID             SortField = "id"
	SortByFirstName      SortField = "first_name"
	SortByLastName       SortField = "last_name"
	SortByFullName       SortField = "full_name"
	SortByEmail          SortField = "email"
	SortByDepartmentName SortField = "department_name"
	SortByPosition       SortField = "position"
	SortBySalary         SortField = "salary"
	SortByHireDate       SortField = "hire_date"
	SortByStatus         SortField = "status"
	SortByCreatedAt      SortField = "created_at"
)

var sortAliases = map[string]SortField{
	"d.name": SortByDepartmentName,
}

// ParseSortField は呼び出し側の指定を許可リストと照合します。
// 空文字は ID 順、"e." 接頭辞付きの指定も受け付けます。
func ParseSortField(raw string) (SortField, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return SortByID, nil
	}
	if field, ok := sortAliases[key]; ok {
		return field, nil
	}
	key = strings.TrimPrefix(key, "e.")

	field := SortField(key)
	switch field {
	case SortByID, SortByFirstName, SortByLastName, SortByFullName, SortByEmail,
		SortByDepartmentName, SortByPosition, SortBySalary, SortByHireDate,
		SortByStatus, SortByCreatedAt:
		return field, nil
	default:
		return "", ErrInvalidSortField
	}
}
