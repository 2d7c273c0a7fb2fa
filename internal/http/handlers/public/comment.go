package public

import (
	"errors"

	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListComments 文章评论列表，按发表时间正序
func (h *Handler) ListComments(c *gin.Context) {
	postID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	viewerID := currentUserID(c)

	comments, err := h.CommentService.ListForPost(postID, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.post_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.post_fetch_failed", err)
		}
		return
	}

	response.Success(c, comments)
}

// CommentRequest 发表/更新评论请求
type CommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// AddComment 发表评论
func (h *Handler) AddComment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	comment, err := h.CommentService.Add(postID, userID, req.Text)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			respondValidationError(c, verr)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.post_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.comment_create_failed", err)
		}
		return
	}

	response.Success(c, comment)
}

// GetOwnComment 删除确认前的获取，仅评论作者本人可操作
func (h *Handler) GetOwnComment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseUintParam(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.CommentService.GetOwned(commentID, postID, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.comment_not_found", nil)
		case errors.Is(err, service.ErrForbidden):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		default:
			respondError(c, response.CodeInternal, "error.post_fetch_failed", err)
		}
		return
	}

	response.Success(c, comment)
}

// UpdateComment 更新评论，仅评论作者本人可操作
func (h *Handler) UpdateComment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseUintParam(c, "comment_id")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	comment, err := h.CommentService.Update(commentID, postID, userID, req.Text)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			respondValidationError(c, verr)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.comment_not_found", nil)
		case errors.Is(err, service.ErrForbidden):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		default:
			respondError(c, response.CodeInternal, "error.comment_update_failed", err)
		}
		return
	}

	response.Success(c, comment)
}

// DeleteComment 删除评论，仅评论作者本人可操作
func (h *Handler) DeleteComment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	postID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	commentID, ok := parseUintParam(c, "comment_id")
	if !ok {
		return
	}

	if err := h.CommentService.Delete(commentID, postID, userID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.comment_not_found", nil)
		case errors.Is(err, service.ErrForbidden):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		default:
			respondError(c, response.CodeInternal, "error.comment_delete_failed", err)
		}
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
