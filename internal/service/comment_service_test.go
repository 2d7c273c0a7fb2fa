package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCommentServiceTest(t *testing.T) (*CommentService, *PostService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Location{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	postRepo := repository.NewPostRepository(db)
	commentSvc := NewCommentService(repository.NewCommentRepository(db), postRepo, nil)
	postSvc := NewPostService(
		postRepo,
		repository.NewCategoryRepository(db),
		repository.NewLocationRepository(db),
		repository.NewUserRepository(db),
	)
	return commentSvc, postSvc, db
}

func TestCommentAddOnVisiblePost(t *testing.T) {
	commentSvc, postSvc, db := setupCommentServiceTest(t)
	author := createServiceTestUser(t, db, "author")
	reader := createServiceTestUser(t, db, "reader")

	post, err := postSvc.Create(author.ID, PostInput{Title: "t", Text: "x", PubDate: time.Now().Add(-time.Hour)})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	comment, err := commentSvc.Add(post.ID, reader.ID, "  不错的文章  ")
	if err != nil {
		t.Fatalf("add comment failed: %v", err)
	}
	if comment.Text != "不错的文章" {
		t.Fatalf("text not trimmed: %q", comment.Text)
	}
	if comment.AuthorID != reader.ID {
		t.Fatalf("author want %d got %d", reader.ID, comment.AuthorID)
	}

	if _, err := commentSvc.Add(post.ID, reader.ID, "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank text want validation error, got %v", err)
	}
}

func TestCommentAddRequiresVisiblePost(t *testing.T) {
	commentSvc, postSvc, db := setupCommentServiceTest(t)
	author := createServiceTestUser(t, db, "author")
	reader := createServiceTestUser(t, db, "reader")

	// 发布时间在未来，仅作者可见
	post, err := postSvc.Create(author.ID, PostInput{Title: "定时", Text: "x", PubDate: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	if _, err := commentSvc.Add(post.ID, reader.ID, "抢沙发"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("invisible post want ErrNotFound, got %v", err)
	}
	if _, err := commentSvc.ListForPost(post.ID, reader.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("list on invisible post want ErrNotFound, got %v", err)
	}

	// 作者可以评论自己的未公开文章
	if _, err := commentSvc.Add(post.ID, author.ID, "备注一下"); err != nil {
		t.Fatalf("author comment failed: %v", err)
	}
	comments, err := commentSvc.ListForPost(post.ID, author.ID)
	if err != nil {
		t.Fatalf("author list failed: %v", err)
	}
	if len(comments) != 1 {
		t.Fatalf("comments len want 1 got %d", len(comments))
	}
}

func TestCommentUpdateDeleteOwnership(t *testing.T) {
	commentSvc, postSvc, db := setupCommentServiceTest(t)
	author := createServiceTestUser(t, db, "author")
	reader := createServiceTestUser(t, db, "reader")
	other := createServiceTestUser(t, db, "other")

	post, err := postSvc.Create(author.ID, PostInput{Title: "t", Text: "x", PubDate: time.Now().Add(-time.Hour)})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	otherPost, err := postSvc.Create(author.ID, PostInput{Title: "t2", Text: "x", PubDate: time.Now().Add(-time.Hour)})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	comment, err := commentSvc.Add(post.ID, reader.ID, "原始内容")
	if err != nil {
		t.Fatalf("add comment failed: %v", err)
	}

	// 非作者不可改
	if _, err := commentSvc.Update(comment.ID, post.ID, other.ID, "篡改"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("update by other want ErrForbidden, got %v", err)
	}
	// 文章不匹配时按不存在处理
	if _, err := commentSvc.Update(comment.ID, otherPost.ID, reader.ID, "改"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update with wrong post want ErrNotFound, got %v", err)
	}

	updated, err := commentSvc.Update(comment.ID, post.ID, reader.ID, "修改后")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Text != "修改后" {
		t.Fatalf("text want 修改后 got %q", updated.Text)
	}

	if err := commentSvc.Delete(comment.ID, post.ID, other.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("delete by other want ErrForbidden, got %v", err)
	}
	if err := commentSvc.Delete(comment.ID, post.ID, reader.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := commentSvc.GetOwned(comment.ID, post.ID, reader.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted comment want ErrNotFound, got %v", err)
	}
}
