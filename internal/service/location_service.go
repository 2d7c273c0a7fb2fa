package service

import (
	"strings"

	"github.com/blogicum-next/internal/constants"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/repository"
)

// LocationService 地点业务服务
type LocationService struct {
	repo repository.LocationRepository
}

// NewLocationService 创建地点服务
func NewLocationService(repo repository.LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

// LocationInput 创建/更新地点输入
type LocationInput struct {
	Name        string
	IsPublished *bool
}

// ListPublic 获取公开地点列表
func (s *LocationService) ListPublic(page, pageSize int) ([]models.Location, int64, error) {
	filter := repository.LocationListFilter{
		Page:          page,
		PageSize:      pageSize,
		OnlyPublished: true,
	}
	return s.repo.List(filter)
}

// ListAdmin 获取后台地点列表
func (s *LocationService) ListAdmin(search string, page, pageSize int) ([]models.Location, int64, error) {
	filter := repository.LocationListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
	}
	return s.repo.List(filter)
}

// GetByID 获取地点
func (s *LocationService) GetByID(id uint) (*models.Location, error) {
	location, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, ErrNotFound
	}
	return location, nil
}

// Create 创建地点
func (s *LocationService) Create(input LocationInput) (*models.Location, error) {
	if err := validateLocationName(input.Name); err != nil {
		return nil, err
	}

	isPublished := true
	if input.IsPublished != nil {
		isPublished = *input.IsPublished
	}

	location := models.Location{
		Name:        strings.TrimSpace(input.Name),
		IsPublished: isPublished,
	}
	if err := s.repo.Create(&location); err != nil {
		return nil, err
	}
	return &location, nil
}

// Update 更新地点
func (s *LocationService) Update(id uint, input LocationInput) (*models.Location, error) {
	location, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := validateLocationName(input.Name); err != nil {
		return nil, err
	}

	location.Name = strings.TrimSpace(input.Name)
	if input.IsPublished != nil {
		location.IsPublished = *input.IsPublished
	}

	if err := s.repo.Update(location); err != nil {
		return nil, err
	}
	return location, nil
}

// Delete 删除地点，引用它的文章地点被置空
func (s *LocationService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func validateLocationName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > constants.TitleMaxLength {
		return NewValidationError(map[string]string{"name": "error.validation_failed"})
	}
	return nil
}
