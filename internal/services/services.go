package services

import "catalog-backend/internal/repository"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NormalizeListParams clamps paging to the admin list defaults.
func NormalizeListParams(params repository.ListParams) repository.ListParams {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = defaultPageSize
	}
	if params.Limit > maxPageSize {
		params.Limit = maxPageSize
	}
	return params
}
