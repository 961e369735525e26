package report

import "errors"

var (
	ErrInvalidMonths = errors.New("report: invalid months")
	ErrInvalidDays   = errors.New("report: invalid days")
)
