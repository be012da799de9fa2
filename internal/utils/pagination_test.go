package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/property-management-api/internal/constants"
)

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		query  string
		wantOK bool
		want   PaginationParams
	}{
		{name: "absent", query: "", wantOK: false},
		{name: "explicit", query: "?page=3&limit=10", wantOK: true, want: PaginationParams{Page: 3, Limit: 10, Offset: 20}},
		{name: "page only", query: "?page=2", wantOK: true, want: PaginationParams{Page: 2, Limit: constants.DefaultPageSize, Offset: constants.DefaultPageSize}},
		{name: "limit too large", query: "?limit=1000", wantOK: true, want: PaginationParams{Page: 1, Limit: constants.DefaultPageSize, Offset: 0}},
		{name: "page capped", query: "?page=9223372036854775807&limit=100", wantOK: true, want: PaginationParams{Page: constants.MaxPage, Limit: 100, Offset: (constants.MaxPage - 1) * 100}},
		{name: "garbage", query: "?page=x&limit=-4", wantOK: true, want: PaginationParams{Page: 1, Limit: constants.DefaultPageSize, Offset: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest("GET", "/api/payments/history"+tt.query, nil)

			got, ok := GetPaginationParams(c)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
