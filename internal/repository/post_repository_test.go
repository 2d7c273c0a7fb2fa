package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/blogicum-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupPostRepositoryTest(t *testing.T) (*GormPostRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Location{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewPostRepository(db), db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Status:       "active",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, slug string, published bool) *models.Category {
	t.Helper()
	category := &models.Category{
		Title:       slug,
		Slug:        slug,
		IsPublished: published,
	}
	if err := db.Select("*").Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func createTestPost(t *testing.T, db *gorm.DB, title string, authorID uint, categoryID *uint, published bool, pubDate time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       title,
		Text:        "text",
		PubDate:     pubDate,
		IsPublished: published,
		AuthorID:    authorID,
		CategoryID:  categoryID,
	}
	if err := db.Select("*").Create(post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	return post
}

func TestListOnlyVisibleFiltersHiddenPosts(t *testing.T) {
	repo, db := setupPostRepositoryTest(t)
	author := createTestUser(t, db, "author")
	visible := createTestCategory(t, db, "visible", true)
	hidden := createTestCategory(t, db, "hidden", false)
	now := time.Now()

	createTestPost(t, db, "published", author.ID, &visible.ID, true, now.Add(-time.Hour))
	createTestPost(t, db, "no-category", author.ID, nil, true, now.Add(-time.Hour))
	createTestPost(t, db, "unpublished", author.ID, &visible.ID, false, now.Add(-time.Hour))
	createTestPost(t, db, "scheduled", author.ID, &visible.ID, true, now.Add(time.Hour))
	createTestPost(t, db, "hidden-category", author.ID, &hidden.ID, true, now.Add(-time.Hour))

	posts, result, err := repo.List(PostListFilter{Page: 1, PageSize: 10, OnlyVisible: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 2 {
		t.Fatalf("total want 2 got %d", result.Total)
	}
	got := map[string]bool{}
	for _, post := range posts {
		got[post.Title] = true
	}
	if !got["published"] || !got["no-category"] {
		t.Fatalf("visible posts missing, got=%v", got)
	}

	// 不过滤时全部可见
	_, result, err = repo.List(PostListFilter{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if result.Total != 5 {
		t.Fatalf("total want 5 got %d", result.Total)
	}
}

func TestListOrdersByPubDateDesc(t *testing.T) {
	repo, db := setupPostRepositoryTest(t)
	author := createTestUser(t, db, "author")
	now := time.Now()

	createTestPost(t, db, "oldest", author.ID, nil, true, now.Add(-3*time.Hour))
	createTestPost(t, db, "newest", author.ID, nil, true, now.Add(-time.Hour))
	createTestPost(t, db, "middle", author.ID, nil, true, now.Add(-2*time.Hour))

	posts, _, err := repo.List(PostListFilter{Page: 1, PageSize: 10, OnlyVisible: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("len want 3 got %d", len(posts))
	}
	if posts[0].Title != "newest" || posts[1].Title != "middle" || posts[2].Title != "oldest" {
		t.Fatalf("order wrong: %s, %s, %s", posts[0].Title, posts[1].Title, posts[2].Title)
	}
}

func TestListFillsCommentCount(t *testing.T) {
	repo, db := setupPostRepositoryTest(t)
	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	now := time.Now()

	post := createTestPost(t, db, "with-comments", author.ID, nil, true, now.Add(-time.Hour))
	createTestPost(t, db, "without-comments", author.ID, nil, true, now.Add(-2*time.Hour))

	for i := 0; i < 3; i++ {
		comment := &models.Comment{Text: "c", PostID: post.ID, AuthorID: reader.ID}
		if err := db.Create(comment).Error; err != nil {
			t.Fatalf("create comment failed: %v", err)
		}
	}

	posts, _, err := repo.List(PostListFilter{Page: 1, PageSize: 10, WithCommentCount: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	counts := map[string]int64{}
	for _, item := range posts {
		counts[item.Title] = item.CommentCount
	}
	if counts["with-comments"] != 3 {
		t.Fatalf("comment count want 3 got %d", counts["with-comments"])
	}
	if counts["without-comments"] != 0 {
		t.Fatalf("comment count want 0 got %d", counts["without-comments"])
	}
}

func TestListClampsPageToLastPage(t *testing.T) {
	repo, db := setupPostRepositoryTest(t)
	author := createTestUser(t, db, "author")
	now := time.Now()
	for i := 0; i < 5; i++ {
		createTestPost(t, db, fmt.Sprintf("post-%d", i), author.ID, nil, true, now.Add(-time.Duration(i+1)*time.Hour))
	}

	// 共 3 页，请求第 99 页落到第 3 页
	posts, result, err := repo.List(PostListFilter{Page: 99, PageSize: 2, OnlyVisible: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Page != 3 {
		t.Fatalf("page want 3 got %d", result.Page)
	}
	if result.TotalPage != 3 {
		t.Fatalf("total page want 3 got %d", result.TotalPage)
	}
	if len(posts) != 1 {
		t.Fatalf("last page len want 1 got %d", len(posts))
	}

	// 空结果回落到第一页
	_, result, err = repo.List(PostListFilter{Page: 7, PageSize: 2, OnlyVisible: true, Search: "no-such-title"})
	if err != nil {
		t.Fatalf("list empty failed: %v", err)
	}
	if result.Page != 1 || result.TotalPage != 0 {
		t.Fatalf("empty result page want 1/0 got %d/%d", result.Page, result.TotalPage)
	}
}

func TestListSearchByTitle(t *testing.T) {
	repo, db := setupPostRepositoryTest(t)
	author := createTestUser(t, db, "author")
	now := time.Now()
	createTestPost(t, db, "川西环线七日记", author.ID, nil, true, now.Add(-time.Hour))
	createTestPost(t, db, "回锅肉的做法", author.ID, nil, true, now.Add(-2*time.Hour))

	posts, result, err := repo.List(PostListFilter{Page: 1, PageSize: 10, Search: "川西"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if result.Total != 1 || len(posts) != 1 {
		t.Fatalf("search total want 1 got %d", result.Total)
	}
	if posts[0].Title != "川西环线七日记" {
		t.Fatalf("search hit wrong post: %s", posts[0].Title)
	}
}

func TestListSearchEscapesWildcards(t *testing.T) {
	repo, db := setupPostRepositoryTest(t)
	author := createTestUser(t, db, "author")
	now := time.Now()
	createTestPost(t, db, "全场 50% 折扣", author.ID, nil, true, now.Add(-time.Hour))
	createTestPost(t, db, "全场 50 折扣", author.ID, nil, true, now.Add(-2*time.Hour))
	createTestPost(t, db, "a_b 命名规范", author.ID, nil, true, now.Add(-3*time.Hour))
	createTestPost(t, db, "axb 命名规范", author.ID, nil, true, now.Add(-4*time.Hour))

	// % 按字面量匹配而不是通配一切
	posts, result, err := repo.List(PostListFilter{Page: 1, PageSize: 10, Search: "50%"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if result.Total != 1 || len(posts) != 1 || posts[0].Title != "全场 50% 折扣" {
		t.Fatalf("literal %% search want 1 exact hit, got total %d", result.Total)
	}

	// _ 同样不作为单字符通配符
	posts, result, err = repo.List(PostListFilter{Page: 1, PageSize: 10, Search: "a_b"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if result.Total != 1 || len(posts) != 1 || posts[0].Title != "a_b 命名规范" {
		t.Fatalf("literal _ search want 1 exact hit, got total %d", result.Total)
	}
}

func TestGetByIDReturnsNilWhenMissing(t *testing.T) {
	repo, _ := setupPostRepositoryTest(t)
	post, err := repo.GetByID(12345)
	if err != nil {
		t.Fatalf("get missing failed: %v", err)
	}
	if post != nil {
		t.Fatalf("expected nil post")
	}
}

func TestDeleteCascadesComments(t *testing.T) {
	repo, db := setupPostRepositoryTest(t)
	author := createTestUser(t, db, "author")
	reader := createTestUser(t, db, "reader")
	now := time.Now()

	post := createTestPost(t, db, "to-delete", author.ID, nil, true, now.Add(-time.Hour))
	other := createTestPost(t, db, "to-keep", author.ID, nil, true, now.Add(-2*time.Hour))
	if err := db.Create(&models.Comment{Text: "c1", PostID: post.ID, AuthorID: reader.ID}).Error; err != nil {
		t.Fatalf("create comment failed: %v", err)
	}
	if err := db.Create(&models.Comment{Text: "c2", PostID: other.ID, AuthorID: reader.ID}).Error; err != nil {
		t.Fatalf("create comment failed: %v", err)
	}

	if err := repo.Delete(post.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var postCount int64
	if err := db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&postCount).Error; err != nil {
		t.Fatalf("count posts failed: %v", err)
	}
	if postCount != 0 {
		t.Fatalf("post still exists")
	}

	var commentCount int64
	if err := db.Model(&models.Comment{}).Count(&commentCount).Error; err != nil {
		t.Fatalf("count comments failed: %v", err)
	}
	if commentCount != 1 {
		t.Fatalf("comment count want 1 got %d", commentCount)
	}
}
