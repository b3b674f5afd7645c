package pagination

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageParams 分页参数
type PageParams struct {
	Page  int `json:"page" form:"page"`
	Limit int `json:"limit" form:"limit"`
}

// PageInfo 分页信息
type PageInfo struct {
	Page       int   `json:"page"`        // 当前页
	Limit      int   `json:"limit"`       // 每页大小
	TotalItems int64 `json:"total_items"` // 总记录数
	TotalPages int   `json:"total_pages"` // 总页数
	HasNext    bool  `json:"has_next"`    // 是否有下一页
	HasPrev    bool  `json:"has_prev"`    // 是否有上一页
}

// 分页配置
const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 200
)

// ParsePageParams 从请求中解析分页参数
func ParsePageParams(c *gin.Context) *PageParams {
	return ParsePageParamsWithDefault(c, DefaultLimit)
}

// ParsePageParamsWithDefault 从请求中解析分页参数（实体级默认每页大小）
func ParsePageParamsWithDefault(c *gin.Context, defaultLimit int) *PageParams {
	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", strconv.Itoa(defaultLimit))

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = DefaultPage
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return &PageParams{
		Page:  page,
		Limit: limit,
	}
}

// NewPageInfo 计算分页信息
func NewPageInfo(page, limit int, total int64) *PageInfo {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return &PageInfo{
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// GetOffset 计算offset
func (p *PageParams) GetOffset() int {
	return (p.Page - 1) * p.Limit
}

// GetLimit 计算limit
func (p *PageParams) GetLimit() int {
	return p.Limit
}
