package engine

import "errors"

var (
	ErrInputNotFound = errors.New("input file not found")
	ErrEmptyInput    = errors.New("input file is empty")
	ErrNoCatalog     = errors.New("region catalog not configured")
)
