package public

import (
	"github.com/blogicum-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListCategories 公开分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	page, pageSize := parsePagination(c, 50)

	categories, total, err := h.CategoryService.ListPublic(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, categories, response.NewPagination(page, pageSize, total))
}

// ListLocations 公开地点列表
func (h *Handler) ListLocations(c *gin.Context) {
	page, pageSize := parsePagination(c, 50)

	locations, total, err := h.LocationService.ListPublic(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.location_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, locations, response.NewPagination(page, pageSize, total))
}
