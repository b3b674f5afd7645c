package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func ctxWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParsePageParams_Defaults(t *testing.T) {
	params := ParsePageParams(ctxWithQuery(""))
	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
}

func TestParsePageParams_InvalidValuesFallBack(t *testing.T) {
	params := ParsePageParams(ctxWithQuery("page=abc&limit=-5"))
	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)

	params = ParsePageParams(ctxWithQuery("page=0"))
	assert.Equal(t, DefaultPage, params.Page)
}

func TestParsePageParams_LimitClamped(t *testing.T) {
	params := ParsePageParams(ctxWithQuery("limit=10000"))
	assert.Equal(t, MaxLimit, params.Limit)
}

func TestParsePageParamsWithDefault(t *testing.T) {
	params := ParsePageParamsWithDefault(ctxWithQuery(""), 24)
	assert.Equal(t, 24, params.Limit)

	params = ParsePageParamsWithDefault(ctxWithQuery("limit=5"), 24)
	assert.Equal(t, 5, params.Limit)
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(2, 10, 35)
	assert.Equal(t, 4, info.TotalPages)
	assert.Equal(t, int64(35), info.TotalItems)
	assert.True(t, info.HasNext)
	assert.True(t, info.HasPrev)

	info = NewPageInfo(1, 10, 0)
	assert.Equal(t, 0, info.TotalPages)
	assert.False(t, info.HasNext)
	assert.False(t, info.HasPrev)

	// 超出总页数时分页信息仍然有效
	info = NewPageInfo(9, 10, 35)
	assert.False(t, info.HasNext)
	assert.True(t, info.HasPrev)
}

func TestGetOffset(t *testing.T) {
	p := &PageParams{Page: 3, Limit: 12}
	assert.Equal(t, 24, p.GetOffset())
}
