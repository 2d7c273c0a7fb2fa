package repository

import (
	"errors"
	"strings"

	"github.com/blogicum-next/internal/models"

	"gorm.io/gorm"
)

// LocationRepository 地点数据访问接口
type LocationRepository interface {
	List(filter LocationListFilter) ([]models.Location, int64, error)
	GetByID(id uint) (*models.Location, error)
	Create(location *models.Location) error
	Update(location *models.Location) error
	Delete(id uint) error
}

// GormLocationRepository GORM 实现
type GormLocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository 创建地点仓库
func NewLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// List 地点列表
func (r *GormLocationRepository) List(filter LocationListFilter) ([]models.Location, int64, error) {
	query := r.db.Model(&models.Location{})

	if filter.OnlyPublished {
		query = query.Where("is_published = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where(`name LIKE ? ESCAPE '\'`, likeContains(search))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var locations []models.Location
	if err := query.Order("created_at DESC").Find(&locations).Error; err != nil {
		return nil, 0, err
	}
	return locations, total, nil
}

// GetByID 根据 ID 获取地点
func (r *GormLocationRepository) GetByID(id uint) (*models.Location, error) {
	var location models.Location
	if err := r.db.First(&location, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

// Create 创建地点
func (r *GormLocationRepository) Create(location *models.Location) error {
	return r.db.Create(location).Error
}

// Update 更新地点
func (r *GormLocationRepository) Update(location *models.Location) error {
	return r.db.Save(location).Error
}

// Delete 删除地点，同一事务内将引用它的文章地点置空
func (r *GormLocationRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("location_id = ?", id).
			Update("location_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Location{}, id).Error
	})
}
