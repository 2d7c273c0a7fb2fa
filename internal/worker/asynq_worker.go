package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/provider"
	"github.com/blogicum-next/internal/queue"
	"github.com/blogicum-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCommentNotification, c.handleCommentNotification)
}

// handleCommentNotification 评论通知：给文章作者发邮件
// 自己评论自己的文章不发通知
func (c *Consumer) handleCommentNotification(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_comment_notification_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CommentNotificationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_comment_notification_unmarshal_failed", "error", err)
		return err
	}
	if payload.CommentID == 0 {
		logger.Debugw("worker_comment_notification_skip_invalid_payload", "comment_id", payload.CommentID)
		return nil
	}

	comment, err := c.CommentRepo.GetByID(payload.CommentID)
	if err != nil {
		logger.Warnw("worker_comment_notification_fetch_comment_failed", "comment_id", payload.CommentID, "error", err)
		return err
	}
	if comment == nil {
		logger.Debugw("worker_comment_notification_skip_comment_not_found", "comment_id", payload.CommentID)
		return nil
	}

	post, err := c.PostRepo.GetByID(comment.PostID)
	if err != nil {
		logger.Warnw("worker_comment_notification_fetch_post_failed", "comment_id", comment.ID, "post_id", comment.PostID, "error", err)
		return err
	}
	if post == nil {
		logger.Debugw("worker_comment_notification_skip_post_not_found", "comment_id", comment.ID, "post_id", comment.PostID)
		return nil
	}
	if post.AuthorID == comment.AuthorID {
		logger.Debugw("worker_comment_notification_skip_self_comment", "comment_id", comment.ID, "post_id", post.ID)
		return nil
	}

	author, err := c.UserRepo.GetByID(post.AuthorID)
	if err != nil {
		logger.Warnw("worker_comment_notification_fetch_author_failed", "post_id", post.ID, "author_id", post.AuthorID, "error", err)
		return err
	}
	if author == nil || strings.TrimSpace(author.Email) == "" {
		logger.Debugw("worker_comment_notification_skip_empty_receiver", "post_id", post.ID, "author_id", post.AuthorID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_comment_notification_skip_email_service_nil", "comment_id", comment.ID)
		return nil
	}

	commenterName := ""
	if comment.Author != nil {
		commenterName = comment.Author.FullName()
	}
	input := service.CommentNotificationInput{
		PostTitle:     post.Title,
		CommentAuthor: commenterName,
		CommentText:   comment.Text,
	}
	if err := c.EmailService.SendCommentNotification(author.Email, input, ""); err != nil {
		logger.Warnw("worker_comment_notification_send_failed",
			"comment_id", comment.ID,
			"post_id", post.ID,
			"receiver_email", author.Email,
			"error", err,
		)
		return err
	}
	return nil
}
