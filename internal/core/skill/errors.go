package skill

import "errors"

var (
	ErrInvalidName        = errors.New("skill: invalid name")
	ErrSkillNotFound      = errors.New("skill: not found")
	ErrSkillAlreadyExists = errors.New("skill: already exists")
)
