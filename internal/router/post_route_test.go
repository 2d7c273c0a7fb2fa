package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blogicum-next/internal/config"
	publichandlers "github.com/blogicum-next/internal/http/handlers/public"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/provider"
	"github.com/blogicum-next/internal/repository"
	"github.com/blogicum-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupPostDetailRoute 只挂文章详情路由和可选身份中间件，
// 走与线上一致的 /api/v1/public 路径。
func setupPostDetailRoute(t *testing.T) (*gin.Engine, *gorm.DB, *service.UserAuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Location{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.UserJWT.SecretKey = "0123456789abcdef0123456789abcdef"
	cfg.UserJWT.ExpireHours = 1

	userRepo := repository.NewUserRepository(db)
	container := &provider.Container{
		Config:   cfg,
		UserRepo: userRepo,
		PostService: service.NewPostService(
			repository.NewPostRepository(db),
			repository.NewCategoryRepository(db),
			repository.NewLocationRepository(db),
			userRepo,
		),
	}
	handler := publichandlers.New(container)

	r := gin.New()
	public := r.Group("/api/v1/public")
	public.Use(OptionalUserJWTMiddleware(cfg.UserJWT.SecretKey, userRepo))
	public.GET("/posts/:id", handler.GetPost)

	return r, db, service.NewUserAuthService(cfg, userRepo)
}

func getPostDetail(t *testing.T, r *gin.Engine, postID uint, token string) (int, json.RawMessage) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/public/posts/%d", postID), nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int             `json:"status_code"`
		Data       json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode, resp.Data
}

func TestPostDetailRouteAuthorVisibility(t *testing.T) {
	r, db, authSvc := setupPostDetailRoute(t)

	author := &models.User{Username: "author", Email: "author@example.com", PasswordHash: "x", Status: "active"}
	if err := db.Create(author).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	post := &models.Post{
		Title:       "定时发布：明天见",
		Text:        "还没到发布时间",
		PubDate:     time.Now().Add(24 * time.Hour),
		IsPublished: true,
		AuthorID:    author.ID,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	// 游客访问未到发布时间的文章：404 信封
	statusCode, _ := getPostDetail(t, r, post.ID, "")
	if statusCode != 404 {
		t.Fatalf("anonymous status_code want 404 got %d", statusCode)
	}

	// 作者带 Token 通过同一路由能看到
	token, _, err := authSvc.GenerateUserJWT(author)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	statusCode, data := getPostDetail(t, r, post.ID, token)
	if statusCode != 0 {
		t.Fatalf("author status_code want 0 got %d", statusCode)
	}
	var got struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal post failed: %v", err)
	}
	if got.ID != post.ID || got.Title != post.Title {
		t.Fatalf("author should see own scheduled post, got %+v", got)
	}

	// 其他登录用户与游客同样拿到 404
	other := &models.User{Username: "reader", Email: "reader@example.com", PasswordHash: "x", Status: "active"}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	otherToken, _, err := authSvc.GenerateUserJWT(other)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}
	statusCode, _ = getPostDetail(t, r, post.ID, otherToken)
	if statusCode != 404 {
		t.Fatalf("other user status_code want 404 got %d", statusCode)
	}
}
