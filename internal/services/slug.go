package services

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"

	"vaatco/pkg/errors"

	"gorm.io/gorm"
)

// 碰撞重试上限，超过后返回冲突错误而不是无限循环
const maxSlugAttempts = 20

// Slugify 将名称/标题归一化为URL安全的slug：
// 小写、去标点、空白折叠为连字符
func Slugify(source string) string {
	var b strings.Builder
	lastHyphen := true // 抑制开头的连字符

	for _, r := range strings.ToLower(strings.TrimSpace(source)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.Trim(b.String(), "-")
}

// uniqueSlug 基于探测函数生成唯一slug，冲突时追加随机数偏移重试
func uniqueSlug(base string, taken func(slug string) (bool, error)) (string, error) {
	slug := base
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		exists, err := taken(slug)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, rand.Intn(1000)+attempt)
	}
	return "", errors.NewConflict("slug", base)
}

// SlugGenerator slug生成器，基于数据库探测唯一性
type SlugGenerator struct {
	db *gorm.DB
}

// NewSlugGenerator 创建slug生成器
func NewSlugGenerator(db *gorm.DB) *SlugGenerator {
	return &SlugGenerator{db: db}
}

// Generate 为指定实体类型生成唯一slug，更新时通过excludeID排除自身。
// 唯一性保证基于探测时刻，并发创建可能在持久化时触发唯一约束冲突，
// 调用方应将该冲突视为可重试错误。
func (g *SlugGenerator) Generate(model interface{}, source string, excludeID uint) (string, error) {
	base := Slugify(source)
	if base == "" {
		base = "item"
	}

	return uniqueSlug(base, func(slug string) (bool, error) {
		query := g.db.Model(model).Where("slug = ?", slug)
		if excludeID != 0 {
			query = query.Where("id <> ?", excludeID)
		}
		var count int64
		if err := query.Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	})
}
