package repository

import (
	"errors"
	"time"

	"github.com/blogicum-next/internal/models"

	"gorm.io/gorm"
)

// commentCountSelect 列表查询时用子查询填充 comment_count
const commentCountSelect = "posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count"

// PostRepository 文章数据访问接口
type PostRepository interface {
	List(filter PostListFilter) ([]models.Post, PageResult, error)
	GetByID(id uint) (*models.Post, error)
	Create(post *models.Post) error
	Update(post *models.Post) error
	Delete(id uint) error
}

// GormPostRepository GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// List 文章列表
// 公开可见过滤、评论数填充和页码钳制都在这一层完成，页码超出末页时回落到末页。
func (r *GormPostRepository) List(filter PostListFilter) ([]models.Post, PageResult, error) {
	query := r.db.Model(&models.Post{})

	if filter.OnlyVisible {
		now := time.Now()
		if filter.Now != nil {
			now = *filter.Now
		}
		query = query.
			Joins("LEFT JOIN categories ON categories.id = posts.category_id").
			Where("posts.is_published = ?", true).
			Where("posts.pub_date <= ?", now).
			Where("posts.category_id IS NULL OR categories.is_published = ?", true)
	}
	if filter.CategoryID > 0 {
		query = query.Where("posts.category_id = ?", filter.CategoryID)
	}
	if filter.AuthorID > 0 {
		query = query.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.Search != "" {
		query = query.Where(`posts.title LIKE ? ESCAPE '\'`, likeContains(filter.Search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, PageResult{}, err
	}

	page, totalPage := ClampPage(filter.Page, filter.PageSize, total)
	result := PageResult{
		Page:      page,
		PageSize:  filter.PageSize,
		Total:     total,
		TotalPage: totalPage,
	}

	if filter.WithCommentCount {
		query = query.Select(commentCountSelect)
	}
	query = applyPagination(query, page, filter.PageSize)

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "posts.pub_date DESC"
	}

	var posts []models.Post
	if err := query.
		Order(orderBy).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Find(&posts).Error; err != nil {
		return nil, PageResult{}, err
	}
	return posts, result, nil
}

// GetByID 根据 ID 获取文章（带作者、分类、地点和评论数）
func (r *GormPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.
		Select(commentCountSelect).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create 创建文章
func (r *GormPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update 更新文章
func (r *GormPostRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete 删除文章，同一事务内级联删除其评论
func (r *GormPostRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}
