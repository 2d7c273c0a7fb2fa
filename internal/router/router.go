package router

import (
	"fmt"
	"strings"

	"github.com/blogicum-next/internal/cache"
	"github.com/blogicum-next/internal/config"
	adminhandlers "github.com/blogicum-next/internal/http/handlers/admin"
	publichandlers "github.com/blogicum-next/internal/http/handlers/public"
	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "bg"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 静态文件服务（上传的图片）- 必须放在最前面
	r.Static("/uploads", "./uploads")

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		// 挂可选身份中间件：作者带 Token 访问时能看到自己未公开的内容
		public := apiV1.Group("/public")
		public.Use(OptionalUserJWTMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			public.GET("/posts", publicHandler.ListPosts)
			public.GET("/posts/:id", publicHandler.GetPost)
			public.GET("/posts/:id/comments", publicHandler.ListComments)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/categories/:slug/posts", publicHandler.ListCategoryPosts)
			public.GET("/locations", publicHandler.ListLocations)
			public.GET("/profiles/:username/posts", publicHandler.ListProfilePosts)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, loginRule, KeyByIP), publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/profile", publicHandler.UpdateUserProfile)
			user.PUT("/me/password", publicHandler.ChangeUserPassword)
			user.POST("/posts", publicHandler.CreatePost)
			// 编辑/删除确认页回显当前内容
			user.GET("/posts/:id/edit", publicHandler.GetOwnPost)
			user.GET("/posts/:id/delete", publicHandler.GetOwnPost)
			user.PUT("/posts/:id", publicHandler.UpdatePost)
			user.DELETE("/posts/:id", publicHandler.DeletePost)
			user.POST("/posts/:id/comments", publicHandler.AddComment)
			user.GET("/posts/:id/comments/:comment_id/delete", publicHandler.GetOwnComment)
			user.PUT("/posts/:id/comments/:comment_id", publicHandler.UpdateComment)
			user.DELETE("/posts/:id/comments/:comment_id", publicHandler.DeleteComment)
			user.POST("/upload", publicHandler.UploadFile)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.GET("/me", adminHandler.GetCurrentAdmin)
				authorized.PUT("/password", adminHandler.ChangeAdminPassword)

				// 管理员与角色
				authorized.GET("/admins", adminHandler.GetAdmins)
				authorized.PUT("/admins/:id/roles", adminHandler.SetAdminRoles)

				// 内容管理
				authorized.GET("/posts", adminHandler.GetAdminPosts)
				authorized.PUT("/posts/:id/publish", adminHandler.SetAdminPostPublished)

				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateAdminCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateAdminCategory)
				authorized.PUT("/categories/:id/publish", adminHandler.SetAdminCategoryPublished)
				authorized.DELETE("/categories/:id", adminHandler.DeleteAdminCategory)

				authorized.GET("/locations", adminHandler.GetAdminLocations)
				authorized.POST("/locations", adminHandler.CreateAdminLocation)
				authorized.PUT("/locations/:id", adminHandler.UpdateAdminLocation)
				authorized.DELETE("/locations/:id", adminHandler.DeleteAdminLocation)

				// 用户管理
				authorized.GET("/users", adminHandler.GetAdminUsers)
				authorized.GET("/users/:id", adminHandler.GetAdminUser)
				authorized.PUT("/users/status", adminHandler.BatchUpdateUserStatus)

				// 文件上传
				authorized.POST("/upload", adminHandler.UploadFile)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
