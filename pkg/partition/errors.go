package partition

import "errors"

var (
	ErrInvalidFileSize    = errors.New("file size must be positive")
	ErrInvalidWorkerCount = errors.New("worker count must be positive")
)
