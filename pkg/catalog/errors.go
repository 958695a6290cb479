package catalog

import "errors"

var (
	ErrCatalogNotFound = errors.New("catalog file not found")
	ErrInvalidCatalog  = errors.New("invalid catalog")
)
