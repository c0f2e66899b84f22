package leads

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrDuplicate  = errors.New("duplicate lead")
	ErrNotFound   = errors.New("lead not found")
)
