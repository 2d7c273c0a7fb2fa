package public

import (
	"github.com/blogicum-next/internal/constants"
	"github.com/blogicum-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadFile 上传文章配图或头像
func (h *Handler) UploadFile(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.upload_invalid", nil)
		return
	}
	scene := c.DefaultPostForm("scene", constants.UploadScenePost)

	url, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		respondError(c, response.CodeInternal, "error.upload_failed", err)
		return
	}

	response.Success(c, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}
