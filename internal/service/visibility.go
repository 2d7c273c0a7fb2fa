package service

import (
	"time"

	"github.com/blogicum-next/internal/models"
)

// IsPostVisible 判断文章对指定访问者是否可见
// 作者永远可见自己的文章；其他人要求：已发布、发布时间已到、
// 分类为空或分类已发布。字段缺省一律按不可见处理。
func IsPostVisible(post *models.Post, viewerID uint, now time.Time) bool {
	if post == nil {
		return false
	}
	if viewerID != 0 && post.AuthorID == viewerID {
		return true
	}
	if !post.IsPublished {
		return false
	}
	if post.PubDate.IsZero() || post.PubDate.After(now) {
		return false
	}
	if post.CategoryID != nil {
		if post.Category == nil || !post.Category.IsPublished {
			return false
		}
	}
	return true
}
