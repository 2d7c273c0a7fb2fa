package service

import (
	"regexp"
	"strings"

	"github.com/blogicum-next/internal/constants"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/repository"
)

// slugPattern 允许拉丁字母、数字、连字符和下划线
var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// CategoryService 分类业务服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Title       string
	Description string
	Slug        string
	IsPublished *bool
}

// ListPublic 获取公开分类列表
func (s *CategoryService) ListPublic(page, pageSize int) ([]models.Category, int64, error) {
	filter := repository.CategoryListFilter{
		Page:          page,
		PageSize:      pageSize,
		OnlyPublished: true,
	}
	return s.repo.List(filter)
}

// ListAdmin 获取后台分类列表
func (s *CategoryService) ListAdmin(search string, page, pageSize int) ([]models.Category, int64, error) {
	filter := repository.CategoryListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
	}
	return s.repo.List(filter)
}

// GetByID 获取分类
func (s *CategoryService) GetByID(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	if err := validateSlug(input.Slug); err != nil {
		return nil, err
	}
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	count, err := s.repo.CountBySlug(input.Slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	isPublished := true
	if input.IsPublished != nil {
		isPublished = *input.IsPublished
	}

	category := models.Category{
		Title:       input.Title,
		Description: input.Description,
		Slug:        input.Slug,
		IsPublished: isPublished,
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := validateSlug(input.Slug); err != nil {
		return nil, err
	}
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	count, err := s.repo.CountBySlug(input.Slug, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	category.Title = input.Title
	category.Description = input.Description
	category.Slug = input.Slug
	if input.IsPublished != nil {
		category.IsPublished = *input.IsPublished
	}

	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类，引用它的文章分类被置空而不是级联删除
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// SetPublished 上线/下线分类
// 下线会连带隐藏其下所有文章的公开可见性
func (s *CategoryService) SetPublished(id uint, isPublished bool) (*models.Category, error) {
	category, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	category.IsPublished = isPublished
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) validateInput(input *CategoryInput) error {
	fields := map[string]string{}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" || len([]rune(input.Title)) > constants.TitleMaxLength {
		fields["title"] = "error.validation_failed"
	}
	if strings.TrimSpace(input.Description) == "" {
		fields["description"] = "error.validation_failed"
	}

	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}

func validateSlug(slug string) error {
	if slug == "" || len(slug) > constants.SlugMaxLength || !slugPattern.MatchString(slug) {
		return ErrSlugInvalid
	}
	return nil
}
