package service

import (
	"strings"
	"time"

	"github.com/blogicum-next/internal/constants"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/repository"
)

// PostService 文章业务服务
type PostService struct {
	repo         repository.PostRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
}

// NewPostService 创建文章服务
func NewPostService(
	repo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	userRepo repository.UserRepository,
) *PostService {
	return &PostService{
		repo:         repo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		userRepo:     userRepo,
	}
}

// PostInput 创建/更新文章输入
// author 和 is_published 不在其中：作者固定为当前登录用户，发布标记走模型默认值
type PostInput struct {
	Title      string
	Text       string
	PubDate    time.Time
	Image      string
	CategoryID *uint
	LocationID *uint
}

// ListIndex 首页文章列表（仅公开可见，按发布时间倒序，带评论数）
func (s *PostService) ListIndex(page, pageSize int) ([]models.Post, repository.PageResult, error) {
	filter := repository.PostListFilter{
		Page:             page,
		PageSize:         pageSize,
		OnlyVisible:      true,
		WithCommentCount: true,
	}
	return s.repo.List(filter)
}

// ListByCategory 分类页文章列表
// 分类不存在或已下线时整页返回 ErrNotFound，而不是空列表
func (s *PostService) ListByCategory(slug string, page, pageSize int) (*models.Category, []models.Post, repository.PageResult, error) {
	category, err := s.categoryRepo.GetBySlug(slug, true)
	if err != nil {
		return nil, nil, repository.PageResult{}, err
	}
	if category == nil {
		return nil, nil, repository.PageResult{}, ErrNotFound
	}

	filter := repository.PostListFilter{
		Page:             page,
		PageSize:         pageSize,
		CategoryID:       category.ID,
		OnlyVisible:      true,
		WithCommentCount: true,
	}
	posts, result, err := s.repo.List(filter)
	if err != nil {
		return nil, nil, repository.PageResult{}, err
	}
	return category, posts, result, nil
}

// ListByAuthor 个人主页文章列表
// 本人访问时展示全部文章（含未发布和定时发布），其他人只看到公开可见部分
func (s *PostService) ListByAuthor(username string, viewerID uint, page, pageSize int) (*models.User, []models.Post, repository.PageResult, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, nil, repository.PageResult{}, err
	}
	if user == nil {
		return nil, nil, repository.PageResult{}, ErrNotFound
	}

	filter := repository.PostListFilter{
		Page:             page,
		PageSize:         pageSize,
		AuthorID:         user.ID,
		OnlyVisible:      viewerID != user.ID,
		WithCommentCount: true,
	}
	posts, result, err := s.repo.List(filter)
	if err != nil {
		return nil, nil, repository.PageResult{}, err
	}
	return user, posts, result, nil
}

// GetVisible 获取文章详情
// 对访问者不可见的文章与不存在的文章一样返回 ErrNotFound，不泄露存在性
func (s *PostService) GetVisible(id uint, viewerID uint) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil || !IsPostVisible(post, viewerID, time.Now()) {
		return nil, ErrNotFound
	}
	return post, nil
}

// GetOwned 获取本人的文章（编辑/删除前的归属检查）
func (s *PostService) GetOwned(id uint, authorID uint) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if post.AuthorID != authorID {
		return nil, ErrForbidden
	}
	return post, nil
}

// Create 创建文章，作者固定为当前用户
func (s *PostService) Create(authorID uint, input PostInput) (*models.Post, error) {
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	post := models.Post{
		Title:       input.Title,
		Text:        input.Text,
		PubDate:     input.PubDate,
		IsPublished: true,
		Image:       input.Image,
		AuthorID:    authorID,
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
	}
	if err := s.repo.Create(&post); err != nil {
		return nil, err
	}
	return s.repo.GetByID(post.ID)
}

// Update 更新文章，仅限作者本人，作者和发布标记不可改
func (s *PostService) Update(id uint, authorID uint, input PostInput) (*models.Post, error) {
	post, err := s.GetOwned(id, authorID)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Text = input.Text
	post.PubDate = input.PubDate
	post.Image = input.Image
	post.CategoryID = input.CategoryID
	post.LocationID = input.LocationID
	post.Author = nil
	post.Category = nil
	post.Location = nil

	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	return s.repo.GetByID(post.ID)
}

// ListAdmin 管理端文章列表，不做可见性过滤
func (s *PostService) ListAdmin(search string, authorID uint, page, pageSize int) ([]models.Post, repository.PageResult, error) {
	filter := repository.PostListFilter{
		Page:             page,
		PageSize:         pageSize,
		Search:           strings.TrimSpace(search),
		AuthorID:         authorID,
		WithCommentCount: true,
	}
	return s.repo.List(filter)
}

// SetPublished 管理端上线/下线文章
func (s *PostService) SetPublished(id uint, isPublished bool) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	post.IsPublished = isPublished
	post.Author = nil
	post.Category = nil
	post.Location = nil

	if err := s.repo.Update(post); err != nil {
		return nil, err
	}
	return s.repo.GetByID(id)
}

// Delete 删除文章，仅限作者本人，评论随之删除
func (s *PostService) Delete(id uint, authorID uint) error {
	if _, err := s.GetOwned(id, authorID); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *PostService) validateInput(input *PostInput) error {
	fields := map[string]string{}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		fields["title"] = "error.validation_failed"
	} else if len([]rune(input.Title)) > constants.TitleMaxLength {
		fields["title"] = "error.validation_failed"
	}
	if strings.TrimSpace(input.Text) == "" {
		fields["text"] = "error.validation_failed"
	}
	if input.PubDate.IsZero() {
		fields["pub_date"] = "error.validation_failed"
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(*input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			fields["category"] = "error.category_not_found"
		}
	}
	if input.LocationID != nil {
		location, err := s.locationRepo.GetByID(*input.LocationID)
		if err != nil {
			return err
		}
		if location == nil {
			fields["location"] = "error.location_not_found"
		}
	}

	if len(fields) > 0 {
		return NewValidationError(fields)
	}
	return nil
}
