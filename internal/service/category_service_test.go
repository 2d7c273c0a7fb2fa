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

func setupCategoryServiceTest(t *testing.T) (*CategoryService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func TestCategoryCreateValidatesSlug(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	cases := []string{"", "带中文", "has space", "slash/slug", strings.Repeat("a", 100)}
	for _, slug := range cases {
		if _, err := svc.Create(CategoryInput{Title: "t", Description: "d", Slug: slug}); !errors.Is(err, ErrSlugInvalid) {
			t.Fatalf("slug %q want ErrSlugInvalid, got %v", slug, err)
		}
	}

	category, err := svc.Create(CategoryInput{Title: "旅行", Description: "路上见闻", Slug: "travel_2026-a"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !category.IsPublished {
		t.Fatalf("default should be published")
	}
}

func TestCategoryCreateRejectsDuplicateSlug(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	if _, err := svc.Create(CategoryInput{Title: "a", Description: "d", Slug: "dup"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(CategoryInput{Title: "b", Description: "d", Slug: "dup"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("want ErrSlugExists, got %v", err)
	}

	// 更新到已占用的 slug 同样拒绝
	other, err := svc.Create(CategoryInput{Title: "c", Description: "d", Slug: "other"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Update(other.ID, CategoryInput{Title: "c", Description: "d", Slug: "dup"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("update want ErrSlugExists, got %v", err)
	}
	// 保持自己的 slug 不算冲突
	if _, err := svc.Update(other.ID, CategoryInput{Title: "c2", Description: "d", Slug: "other"}); err != nil {
		t.Fatalf("update self slug failed: %v", err)
	}
}

func TestCategoryDeleteDetachesPosts(t *testing.T) {
	svc, db := setupCategoryServiceTest(t)

	category, err := svc.Create(CategoryInput{Title: "a", Description: "d", Slug: "to-delete"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	user := &models.User{Username: "author", Email: "a@example.com", PasswordHash: "x", Status: "active"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	post := &models.Post{Title: "t", Text: "x", PubDate: time.Now(), IsPublished: true, AuthorID: user.ID, CategoryID: &category.ID}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	if err := svc.Delete(category.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var got models.Post
	if err := db.First(&got, post.ID).Error; err != nil {
		t.Fatalf("reload post failed: %v", err)
	}
	if got.CategoryID != nil {
		t.Fatalf("post category_id should be detached, got %v", *got.CategoryID)
	}

	if err := svc.Delete(category.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete want ErrNotFound, got %v", err)
	}
}
