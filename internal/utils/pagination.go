package utils

import "github.com/workrec/workhour-api/internal/constants"

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// NormalizePagination clamps body-supplied page/pageSize values into valid
// pagination parameters. Endpoints carry pagination in the POST body, not the
// query string.
func NormalizePagination(page, pageSize int) PaginationParams {
	if page < constants.MinPage {
		page = constants.MinPage
	}
	if pageSize <= 0 || pageSize > constants.MaxPageSize {
		pageSize = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
}
