package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/property-management-api/internal/constants"
)

// PaginationParams holds the pagination parameters
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// GetPaginationParams reads page and limit from the query string. ok is
// false when the client asked for neither, meaning the full list.
func GetPaginationParams(c *gin.Context) (params PaginationParams, ok bool) {
	rawPage, hasPage := c.GetQuery("page")
	rawLimit, hasLimit := c.GetQuery("limit")
	if !hasPage && !hasLimit {
		return PaginationParams{}, false
	}

	page, err := strconv.Atoi(rawPage)
	if err != nil || page < constants.MinPage {
		page = constants.MinPage
	}
	if page > constants.MaxPage {
		page = constants.MaxPage
	}
	limit, err := strconv.Atoi(rawLimit)
	if err != nil || limit < 1 || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}, true
}

// Response builds the metadata block for a page holding total items overall.
func (p PaginationParams) Response(total int64) PaginationResponse {
	return PaginationResponse{Page: p.Page, Limit: p.Limit, Total: total}
}
