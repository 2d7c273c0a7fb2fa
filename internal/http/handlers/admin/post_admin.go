package admin

import (
	"errors"
	"strconv"

	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAdminPosts 文章列表 (Admin)，含未发布与定时发布的文章
func (h *Handler) GetAdminPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	search := c.Query("search")

	var authorID uint
	if raw := c.Query("author_id"); raw != "" {
		if value, err := strconv.ParseUint(raw, 10, 64); err == nil {
			authorID = uint(value)
		}
	}

	posts, result, err := h.PostService.ListAdmin(search, authorID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.post_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, posts, response.NewPagination(result.Page, result.PageSize, result.Total))
}

// SetAdminPostPublished 上线/下线文章 (Admin)
// 管理端的内容审核开关，作者侧无法修改该标记
func (h *Handler) SetAdminPostPublished(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetPublishedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsPublished == nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	post, err := h.PostService.SetPublished(id, *req.IsPublished)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.post_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.post_update_failed", err)
		return
	}

	response.Success(c, post)
}
