package public

import (
	"errors"
	"strconv"
	"time"

	"github.com/blogicum-next/internal/http/handlers/shared"
	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return 0, false
	}
	return uint(value), true
}

func parsePagination(c *gin.Context, defaultSize int) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultSize)))
	if pageSize <= 0 {
		pageSize = defaultSize
	}
	return shared.NormalizePagination(page, pageSize)
}

func (h *Handler) postsPerPage() int {
	if h.Config != nil && h.Config.Blog.PostsPerPage > 0 {
		return h.Config.Blog.PostsPerPage
	}
	return 10
}

// ListPosts 首页文章列表
func (h *Handler) ListPosts(c *gin.Context) {
	page, pageSize := parsePagination(c, h.postsPerPage())

	posts, result, err := h.PostService.ListIndex(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.post_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, posts, response.NewPagination(result.Page, result.PageSize, result.Total))
}

// ListCategoryPosts 分类页文章列表
// 分类不存在或已下线时整页 404，与空分类返回空列表相区分
func (h *Handler) ListCategoryPosts(c *gin.Context) {
	slug := c.Param("slug")
	page, pageSize := parsePagination(c, h.postsPerPage())

	category, posts, result, err := h.PostService.ListByCategory(slug, page, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.category_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.post_fetch_failed", err)
		}
		return
	}

	response.SuccessWithPage(c, gin.H{
		"category": category,
		"posts":    posts,
	}, response.NewPagination(result.Page, result.PageSize, result.Total))
}

// ListProfilePosts 个人主页文章列表
// 本人访问时包含未发布与定时发布的文章，其他访客只能看到公开内容
func (h *Handler) ListProfilePosts(c *gin.Context) {
	username := c.Param("username")
	viewerID := currentUserID(c)
	page, pageSize := parsePagination(c, h.postsPerPage())

	user, posts, result, err := h.PostService.ListByAuthor(username, viewerID, page, pageSize)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.post_fetch_failed", err)
		}
		return
	}

	response.SuccessWithPage(c, gin.H{
		"profile": userProfileResponse(user),
		"posts":   posts,
	}, response.NewPagination(result.Page, result.PageSize, result.Total))
}

// GetPost 文章详情
// 未公开的文章仅作者本人可见，其余一律 404
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	viewerID := currentUserID(c)

	post, err := h.PostService.GetVisible(id, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.post_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.post_fetch_failed", err)
		}
		return
	}

	response.Success(c, post)
}

// PostRequest 创建/更新文章请求
// author 与 is_published 不接受客户端传入
type PostRequest struct {
	Title      string    `json:"title" binding:"required"`
	Text       string    `json:"text" binding:"required"`
	PubDate    time.Time `json:"pub_date"`
	Image      string    `json:"image"`
	CategoryID *uint     `json:"category_id"`
	LocationID *uint     `json:"location_id"`
}

func (r PostRequest) toServiceInput() service.PostInput {
	return service.PostInput{
		Title:      r.Title,
		Text:       r.Text,
		PubDate:    r.PubDate,
		Image:      r.Image,
		CategoryID: r.CategoryID,
		LocationID: r.LocationID,
	}
}

// CreatePost 创建文章
func (h *Handler) CreatePost(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	post, err := h.PostService.Create(userID, req.toServiceInput())
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			respondValidationError(c, verr)
		default:
			respondError(c, response.CodeInternal, "error.post_create_failed", err)
		}
		return
	}

	response.Success(c, post)
}

// GetOwnPost 编辑/删除前的确认获取，仅作者本人可操作
// 前端编辑页和删除确认页复用这一接口回显当前内容
func (h *Handler) GetOwnPost(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	post, err := h.PostService.GetOwned(id, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.post_not_found", nil)
		case errors.Is(err, service.ErrForbidden):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		default:
			respondError(c, response.CodeInternal, "error.post_fetch_failed", err)
		}
		return
	}

	response.Success(c, post)
}

// UpdatePost 更新文章，仅作者本人可操作
func (h *Handler) UpdatePost(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	post, err := h.PostService.Update(id, userID, req.toServiceInput())
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			respondValidationError(c, verr)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.post_not_found", nil)
		case errors.Is(err, service.ErrForbidden):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		default:
			respondError(c, response.CodeInternal, "error.post_update_failed", err)
		}
		return
	}

	response.Success(c, post)
}

// DeletePost 删除文章及其全部评论，仅作者本人可操作
func (h *Handler) DeletePost(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.PostService.Delete(id, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.post_not_found", nil)
		case errors.Is(err, service.ErrForbidden):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		default:
			respondError(c, response.CodeInternal, "error.post_delete_failed", err)
		}
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
