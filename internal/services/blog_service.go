package services

import (
	"strings"
	"time"

	"vaatco/internal/database"
	"vaatco/internal/models"
	"vaatco/pkg/errors"
	"vaatco/pkg/logger"
	"vaatco/pkg/pagination"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 阅读速度基准（词/分钟），用于估算阅读时长
const wordsPerMinute = 200

// CreateBlogRequest 创建文章请求
type CreateBlogRequest struct {
	Title          string   `json:"title" binding:"required,min=5,max=200"`
	Excerpt        string   `json:"excerpt" binding:"required,min=10,max=500"`
	Content        string   `json:"content" binding:"required,min=50"`
	FeaturedImage  string   `json:"featured_image" binding:"omitempty,url"`
	Images         []string `json:"images" binding:"omitempty,dive,url"`
	Tags           []string `json:"tags" binding:"omitempty,dive,min=1,max=30"`
	Status         string   `json:"status" binding:"omitempty,oneof=draft published archived"`
	IsFeatured     bool     `json:"is_featured"`
	SeoTitle       string   `json:"seo_title" binding:"max=200"`
	SeoDescription string   `json:"seo_description" binding:"max=500"`
	SeoKeywords    []string `json:"seo_keywords"`
}

// UpdateBlogRequest 更新文章请求
type UpdateBlogRequest struct {
	Title          *string  `json:"title" binding:"omitempty,min=5,max=200"`
	Excerpt        *string  `json:"excerpt" binding:"omitempty,min=10,max=500"`
	Content        *string  `json:"content" binding:"omitempty,min=50"`
	FeaturedImage  *string  `json:"featured_image" binding:"omitempty,url"`
	Images         []string `json:"images" binding:"omitempty,dive,url"`
	Tags           []string `json:"tags" binding:"omitempty,dive,min=1,max=30"`
	Status         *string  `json:"status" binding:"omitempty,oneof=draft published archived"`
	IsFeatured     *bool    `json:"is_featured"`
	SeoTitle       *string  `json:"seo_title" binding:"omitempty,max=200"`
	SeoDescription *string  `json:"seo_description" binding:"omitempty,max=500"`
	SeoKeywords    []string `json:"seo_keywords"`
}

// BlogFilter 文章列表过滤条件
type BlogFilter struct {
	Status     string
	Tag        string
	IsFeatured *bool
	AuthorID   *uint
}

// BlogService 博客服务
type BlogService struct {
	db    *gorm.DB
	slugs *SlugGenerator
}

// NewBlogService 创建博客服务实例
func NewBlogService() *BlogService {
	db := database.GetDB()
	return &BlogService{
		db:    db,
		slugs: NewSlugGenerator(db),
	}
}

// 文章可排序列白名单
var blogSortable = map[string]bool{
	"title":        true,
	"publish_date": true,
	"created_at":   true,
	"views":        true,
}

// estimateReadTime 按空白分词估算阅读时长（分钟，向上取整，最少1）
func estimateReadTime(content string) int {
	words := len(strings.Fields(content))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

func (s *BlogService) filtered(filter *BlogFilter) *gorm.DB {
	query := s.db.Model(&models.Blog{})
	if filter == nil {
		return query
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Tag != "" {
		query = query.Where("tags @> ?", datatypes.JSONSlice[string]{filter.Tag})
	}
	if filter.IsFeatured != nil {
		query = query.Where("is_featured = ?", *filter.IsFeatured)
	}
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	return query
}

// published 已发布且发布时间已到的文章
func (s *BlogService) published() *gorm.DB {
	return s.db.Model(&models.Blog{}).
		Where("status = ? AND publish_date IS NOT NULL AND publish_date <= ?",
			models.BlogStatusPublished, time.Now())
}

// List 分页查询文章（管理端，全状态）
func (s *BlogService) List(q *ListQuery, filter *BlogFilter) ([]models.Blog, *pagination.PageInfo, error) {
	query := s.filtered(filter)
	query = applySearch(query, q.Search, []string{"title", "excerpt", "content"})
	query = applySort(query, q.SortBy, q.SortOrder, blogSortable, "created_at")

	var blogs []models.Blog
	pageInfo, err := paginate(query.Preload("Author"), q.Page, q.Limit, &blogs)
	if err != nil {
		return nil, nil, errors.From(err, "Blog")
	}
	return blogs, pageInfo, nil
}

// ListPublic 公开分页查询已发布文章
func (s *BlogService) ListPublic(q *ListQuery, tag string, isFeatured *bool) ([]models.Blog, *pagination.PageInfo, error) {
	query := s.published()
	if tag != "" {
		query = query.Where("tags @> ?", datatypes.JSONSlice[string]{tag})
	}
	if isFeatured != nil {
		query = query.Where("is_featured = ?", *isFeatured)
	}
	query = applySearch(query, q.Search, []string{"title", "excerpt", "content"})
	query = applySort(query, q.SortBy, q.SortOrder, blogSortable, "publish_date")

	var blogs []models.Blog
	pageInfo, err := paginate(query.Preload("Author"), q.Page, q.Limit, &blogs)
	if err != nil {
		return nil, nil, errors.From(err, "Blog")
	}
	return blogs, pageInfo, nil
}

// Featured 公开查询推荐文章
func (s *BlogService) Featured(limit int) ([]models.Blog, error) {
	if limit <= 0 || limit > 20 {
		limit = 3
	}
	var blogs []models.Blog
	err := s.published().Preload("Author").
		Where("is_featured = ?", true).
		Order("publish_date DESC").
		Limit(limit).
		Find(&blogs).Error
	if err != nil {
		return nil, errors.From(err, "Blog")
	}
	return blogs, nil
}

// Recent 公开查询最新文章
func (s *BlogService) Recent(limit int) ([]models.Blog, error) {
	if limit <= 0 || limit > 20 {
		limit = 5
	}
	var blogs []models.Blog
	err := s.published().Preload("Author").
		Order("publish_date DESC").
		Limit(limit).
		Find(&blogs).Error
	if err != nil {
		return nil, errors.From(err, "Blog")
	}
	return blogs, nil
}

// GetByID 按ID查询文章（管理端）
func (s *BlogService) GetByID(id uint) (*models.Blog, error) {
	var blog models.Blog
	err := s.db.Preload("Author").Preload("LastModifiedBy").First(&blog, id).Error
	if err != nil {
		return nil, errors.From(err, "Blog")
	}
	return &blog, nil
}

// GetBySlug 公开按slug查询已发布文章并记录浏览
func (s *BlogService) GetBySlug(slug string) (*models.Blog, error) {
	var blog models.Blog
	err := s.published().Preload("Author").Where("slug = ?", slug).First(&blog).Error
	if err != nil {
		return nil, errors.From(err, "Blog")
	}

	if counter := GetViewCounter(); counter != nil {
		counter.Increment("blogs", blog.ID)
	}
	return &blog, nil
}

// Tags 公开查询已发布文章用到的全部标签
func (s *BlogService) Tags() ([]string, error) {
	var tags []string
	err := s.published().
		Select("DISTINCT jsonb_array_elements_text(tags)").
		Scan(&tags).Error
	if err != nil {
		return nil, errors.From(err, "Blog")
	}
	return tags, nil
}

// Create 创建文章。发布状态在创建时即打上发布时间戳。
func (s *BlogService) Create(authorID uint, req *CreateBlogRequest) (*models.Blog, error) {
	slug, err := s.slugs.Generate(&models.Blog{}, req.Title, 0)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.BlogStatusDraft
	}

	blog := &models.Blog{
		Title:          req.Title,
		Slug:           slug,
		Excerpt:        req.Excerpt,
		Content:        req.Content,
		FeaturedImage:  req.FeaturedImage,
		ReadTime:       estimateReadTime(req.Content),
		Images:         datatypes.JSONSlice[string](req.Images),
		Tags:           datatypes.JSONSlice[string](req.Tags),
		Status:         status,
		IsFeatured:     req.IsFeatured,
		SeoTitle:       req.SeoTitle,
		SeoDescription: req.SeoDescription,
		SeoKeywords:    datatypes.JSONSlice[string](req.SeoKeywords),
		AuthorID:       authorID,
	}
	if status == models.BlogStatusPublished {
		now := time.Now()
		blog.PublishDate = &now
	}

	if err := s.db.Create(blog).Error; err != nil {
		if appErr := errors.From(err, "Blog"); appErr.Code == errors.CodeConflict {
			return nil, errors.NewConflict("slug", slug)
		}
		logger.GetLogger().Errorf("创建文章失败: %v", err)
		return nil, errors.From(err, "Blog")
	}
	return blog, nil
}

// Update 更新文章。标题变化时重新派生slug，内容变化时重算阅读时长。
// 首次进入发布状态时打上发布时间戳，此后状态变化不再清除或改写该时间戳。
func (s *BlogService) Update(actorID, id uint, req *UpdateBlogRequest) (*models.Blog, error) {
	blog, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != blog.Title {
		slug, err := s.slugs.Generate(&models.Blog{}, *req.Title, id)
		if err != nil {
			return nil, err
		}
		blog.Title = *req.Title
		blog.Slug = slug
	}
	if req.Excerpt != nil {
		blog.Excerpt = *req.Excerpt
	}
	if req.Content != nil && *req.Content != blog.Content {
		blog.Content = *req.Content
		blog.ReadTime = estimateReadTime(*req.Content)
	}
	if req.FeaturedImage != nil {
		blog.FeaturedImage = *req.FeaturedImage
	}
	if req.Images != nil {
		blog.Images = datatypes.JSONSlice[string](req.Images)
	}
	if req.Tags != nil {
		blog.Tags = datatypes.JSONSlice[string](req.Tags)
	}
	if req.Status != nil {
		blog.Status = *req.Status
		if *req.Status == models.BlogStatusPublished && blog.PublishDate == nil {
			now := time.Now()
			blog.PublishDate = &now
		}
	}
	if req.IsFeatured != nil {
		blog.IsFeatured = *req.IsFeatured
	}
	if req.SeoTitle != nil {
		blog.SeoTitle = *req.SeoTitle
	}
	if req.SeoDescription != nil {
		blog.SeoDescription = *req.SeoDescription
	}
	if req.SeoKeywords != nil {
		blog.SeoKeywords = datatypes.JSONSlice[string](req.SeoKeywords)
	}
	blog.LastModifiedByID = &actorID

	if err := s.db.Save(blog).Error; err != nil {
		logger.GetLogger().Errorf("更新文章失败: %v", err)
		return nil, errors.From(err, "Blog")
	}
	return blog, nil
}

// ToggleFeatured 切换推荐标记
func (s *BlogService) ToggleFeatured(actorID, id uint) (*models.Blog, error) {
	blog, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	blog.IsFeatured = !blog.IsFeatured
	blog.LastModifiedByID = &actorID
	if err := s.db.Save(blog).Error; err != nil {
		return nil, errors.From(err, "Blog")
	}
	return blog, nil
}

// Delete 删除文章
func (s *BlogService) Delete(id uint) error {
	blog, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(blog).Error; err != nil {
		logger.GetLogger().Errorf("删除文章失败: %v", err)
		return errors.From(err, "Blog")
	}
	return nil
}
