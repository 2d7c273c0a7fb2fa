package service

import (
	"strings"
	"time"

	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/queue"
	"github.com/blogicum-next/internal/repository"
)

// CommentService 评论业务服务
type CommentService struct {
	repo        repository.CommentRepository
	postRepo    repository.PostRepository
	queueClient *queue.Client
}

// NewCommentService 创建评论服务
func NewCommentService(
	repo repository.CommentRepository,
	postRepo repository.PostRepository,
	queueClient *queue.Client,
) *CommentService {
	return &CommentService{
		repo:        repo,
		postRepo:    postRepo,
		queueClient: queueClient,
	}
}

// ListForPost 获取文章评论列表（时间正序）
// 文章对访问者不可见时返回 ErrNotFound
func (s *CommentService) ListForPost(postID uint, viewerID uint) ([]models.Comment, error) {
	if _, err := s.visiblePost(postID, viewerID); err != nil {
		return nil, err
	}
	return s.repo.ListByPost(postID)
}

// Add 发表评论
// 评论对象必须对当前用户可见，评论作者固定为当前用户
func (s *CommentService) Add(postID uint, authorID uint, text string) (*models.Comment, error) {
	post, err := s.visiblePost(postID, authorID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, NewValidationError(map[string]string{"text": "error.validation_failed"})
	}

	comment := models.Comment{
		Text:     text,
		PostID:   postID,
		AuthorID: authorID,
	}
	if err := s.repo.Create(&comment); err != nil {
		return nil, err
	}

	// 通知文章作者，失败不影响评论结果
	if s.queueClient != nil {
		if err := s.queueClient.EnqueueCommentNotification(comment.ID); err != nil {
			logger.Warnw("comment_notification_enqueue_failed",
				"comment_id", comment.ID,
				"post_id", post.ID,
				"error", err,
			)
		}
	}

	return s.repo.GetByID(comment.ID)
}

// Update 更新评论，仅限评论作者，且评论必须属于指定文章
func (s *CommentService) Update(commentID, postID, authorID uint, text string) (*models.Comment, error) {
	comment, err := s.owned(commentID, postID, authorID)
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, NewValidationError(map[string]string{"text": "error.validation_failed"})
	}

	comment.Text = text
	comment.Author = nil
	if err := s.repo.Update(comment); err != nil {
		return nil, err
	}
	return s.repo.GetByID(comment.ID)
}

// Delete 删除评论，仅限评论作者
func (s *CommentService) Delete(commentID, postID, authorID uint) error {
	if _, err := s.owned(commentID, postID, authorID); err != nil {
		return err
	}
	return s.repo.Delete(commentID)
}

// GetOwned 获取本人的评论（删除确认页使用）
func (s *CommentService) GetOwned(commentID, postID, authorID uint) (*models.Comment, error) {
	return s.owned(commentID, postID, authorID)
}

func (s *CommentService) visiblePost(postID uint, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil || !IsPostVisible(post, viewerID, time.Now()) {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *CommentService) owned(commentID, postID, authorID uint) (*models.Comment, error) {
	comment, err := s.repo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil || comment.PostID != postID {
		return nil, ErrNotFound
	}
	if comment.AuthorID != authorID {
		return nil, ErrForbidden
	}
	return comment, nil
}
