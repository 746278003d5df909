package apperrors

import "errors"

var (
	ErrEmptyDataset       = errors.New("dataset has no columns or no rows")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrFileTooLarge       = errors.New("uploaded file exceeds size limit")
	ErrCatalogUnavailable = errors.New("column description catalog unavailable")
)
