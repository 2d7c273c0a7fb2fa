package admin

import (
	"errors"
	"strconv"

	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminLocations 地点列表 (Admin)
func (h *Handler) GetAdminLocations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	search := c.Query("search")

	locations, total, err := h.LocationService.ListAdmin(search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.location_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, locations, response.NewPagination(page, pageSize, total))
}

// LocationRequest 创建/更新地点请求
type LocationRequest struct {
	Name        string `json:"name" binding:"required"`
	IsPublished *bool  `json:"is_published"`
}

func respondLocationWriteError(c *gin.Context, err error, fallbackKey string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondAdminValidationError(c, verr)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.location_not_found", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}

// CreateAdminLocation 创建地点 (Admin)
func (h *Handler) CreateAdminLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	location, err := h.LocationService.Create(service.LocationInput{
		Name:        req.Name,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		respondLocationWriteError(c, err, "error.location_create_failed")
		return
	}

	response.Success(c, location)
}

// UpdateAdminLocation 更新地点 (Admin)
func (h *Handler) UpdateAdminLocation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	location, err := h.LocationService.Update(id, service.LocationInput{
		Name:        req.Name,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		respondLocationWriteError(c, err, "error.location_update_failed")
		return
	}

	response.Success(c, location)
}

// DeleteAdminLocation 删除地点 (Admin)
// 关联文章不删除，仅解除地点归属
func (h *Handler) DeleteAdminLocation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.LocationService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.location_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.location_delete_failed", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
