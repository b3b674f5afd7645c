package services

import (
	"strings"

	"vaatco/pkg/pagination"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListQuery 通用列表查询参数
type ListQuery struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}

// ParseListQuery 从请求中解析列表查询参数
func ParseListQuery(c *gin.Context, defaultLimit int) *ListQuery {
	pageParams := pagination.ParsePageParamsWithDefault(c, defaultLimit)

	return &ListQuery{
		Page:      pageParams.Page,
		Limit:     pageParams.Limit,
		Search:    strings.TrimSpace(c.Query("search")),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
}

// applySearch 在白名单字段集上构造大小写不敏感的子串匹配（OR组合）
func applySearch(query *gorm.DB, search string, fields []string) *gorm.DB {
	if search == "" || len(fields) == 0 {
		return query
	}

	pattern := "%" + search + "%"
	conditions := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields))
	for _, field := range fields {
		conditions = append(conditions, field+" ILIKE ?")
		args = append(args, pattern)
	}

	return query.Where(strings.Join(conditions, " OR "), args...)
}

// applySort 在白名单列上排序，非法列回退到默认排序
func applySort(query *gorm.DB, sortBy, sortOrder string, sortable map[string]bool, defaultColumn string) *gorm.DB {
	column := defaultColumn
	if sortBy != "" && sortable[sortBy] {
		column = sortBy
	}

	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}

	return query.Order(column + " " + direction)
}

// paginate 独立计算总数后做有界查询，返回分页信息。
// 超出总页数的page返回空列表和有效的分页信息，不报错。
func paginate(query *gorm.DB, page, limit int, dest interface{}) (*pagination.PageInfo, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return nil, err
	}

	return pagination.NewPageInfo(page, limit, total), nil
}

// ParseBoolFilter 解析三态布尔过滤参数（缺省表示不过滤）
func ParseBoolFilter(c *gin.Context, name string) *bool {
	value := c.Query(name)
	if value == "" {
		return nil
	}
	result := value == "true"
	return &result
}
