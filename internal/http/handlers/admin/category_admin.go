package admin

import (
	"errors"
	"strconv"

	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/i18n"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || value == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(value), true
}

// respondAdminValidationError 按请求语言展开字段级校验错误。
func respondAdminValidationError(c *gin.Context, verr *service.ValidationError) {
	locale := i18n.ResolveLocale(c)
	fields := make(map[string]string, len(verr.Fields))
	for field, key := range verr.Fields {
		fields[field] = i18n.T(locale, key)
	}
	response.ErrorWithData(c, response.CodeBadRequest, i18n.T(locale, "error.validation_failed"), gin.H{"fields": fields})
}

// GetAdminCategories 分类列表 (Admin)，含未公开分类
func (h *Handler) GetAdminCategories(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	search := c.Query("search")

	categories, total, err := h.CategoryService.ListAdmin(search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, categories, response.NewPagination(page, pageSize, total))
}

// CategoryRequest 创建/更新分类请求
type CategoryRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	IsPublished *bool  `json:"is_published"`
}

func (r CategoryRequest) toServiceInput() service.CategoryInput {
	return service.CategoryInput{
		Title:       r.Title,
		Description: r.Description,
		Slug:        r.Slug,
		IsPublished: r.IsPublished,
	}
}

func respondCategoryWriteError(c *gin.Context, err error, fallbackKey string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		respondAdminValidationError(c, verr)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.category_not_found", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeBadRequest, "error.slug_exists", nil)
	case errors.Is(err, service.ErrSlugInvalid):
		respondError(c, response.CodeBadRequest, "error.slug_invalid", nil)
	default:
		respondError(c, response.CodeInternal, fallbackKey, err)
	}
}

// CreateAdminCategory 创建分类 (Admin)
func (h *Handler) CreateAdminCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Create(req.toServiceInput())
	if err != nil {
		respondCategoryWriteError(c, err, "error.category_create_failed")
		return
	}

	response.Success(c, category)
}

// UpdateAdminCategory 更新分类 (Admin)
func (h *Handler) UpdateAdminCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.Update(id, req.toServiceInput())
	if err != nil {
		respondCategoryWriteError(c, err, "error.category_update_failed")
		return
	}

	response.Success(c, category)
}

// SetPublishedRequest 上线/下线请求
type SetPublishedRequest struct {
	IsPublished *bool `json:"is_published" binding:"required"`
}

// SetAdminCategoryPublished 上线/下线分类 (Admin)
// 下线分类会同时隐藏分类下的全部文章
func (h *Handler) SetAdminCategoryPublished(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetPublishedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsPublished == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	category, err := h.CategoryService.SetPublished(id, *req.IsPublished)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.category_update_failed", err)
		return
	}

	response.Success(c, category)
}

// DeleteAdminCategory 删除分类 (Admin)
// 关联文章不删除，仅解除分类归属
func (h *Handler) DeleteAdminCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.CategoryService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.category_delete_failed", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
