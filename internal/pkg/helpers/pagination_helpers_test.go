package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0))
	assert.Equal(t, 1, ClampPage(-5))
	assert.Equal(t, 1, ClampPage(1))
	assert.Equal(t, 42, ClampPage(42))
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 5)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 5, limit)

	offset, limit = CalculateOffsetLimit(3, 5)
	assert.Equal(t, uint64(10), offset)
	assert.Equal(t, 5, limit)

	// Page zero and negative pages normalize to the first page.
	offset, _ = CalculateOffsetLimit(0, 5)
	assert.Equal(t, uint64(0), offset)

	// Out-of-range sizes fall back to the default.
	_, limit = CalculateOffsetLimit(1, 0)
	assert.Equal(t, DefaultPageSize, limit)
	_, limit = CalculateOffsetLimit(1, MaxPageSize+1)
	assert.Equal(t, DefaultPageSize, limit)
}

func paginationContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return ctx
}

func TestParsePaginationParams(t *testing.T) {
	page, size := ParsePaginationParams(paginationContext(""))
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, size)

	page, size = ParsePaginationParams(paginationContext("page=3&size=25"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, size)
}

func TestParsePaginationParamsWithSize(t *testing.T) {
	// An absent size falls back to the endpoint's own default.
	page, size := ParsePaginationParamsWithSize(paginationContext(""), 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)

	// An explicit size still wins.
	_, size = ParsePaginationParamsWithSize(paginationContext("size=7"), 10)
	assert.Equal(t, 7, size)

	// Unusable values fall back to the default too.
	_, size = ParsePaginationParamsWithSize(paginationContext("size=0"), 10)
	assert.Equal(t, 10, size)
	_, size = ParsePaginationParamsWithSize(paginationContext("size=overflow"), 10)
	assert.Equal(t, 10, size)
}

func TestNewPaginationInfo(t *testing.T) {
	// 7 items at page size 5: a full page and a remainder page of 2.
	info := NewPaginationInfo(7, 2, 5)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 2, info.TotalPages)
	assert.Equal(t, int64(7), info.TotalItems)

	// An exact multiple does not add a trailing empty page.
	info = NewPaginationInfo(10, 1, 5)
	assert.Equal(t, 2, info.TotalPages)

	info = NewPaginationInfo(0, 1, 5)
	assert.Equal(t, 0, info.TotalPages)
	assert.Equal(t, int64(0), info.TotalItems)
}
