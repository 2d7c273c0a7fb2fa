package main

import (
	"fmt"
	"time"

	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/constants"
	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{
			Title:       "旅行",
			Description: "路线、攻略与在路上的见闻。",
			Slug:        "travel",
			IsPublished: true,
		},
		{
			Title:       "美食",
			Description: "菜谱、探店与厨房里的小实验。",
			Slug:        "food",
			IsPublished: true,
		},
		{
			Title:       "技术",
			Description: "编程笔记与工程实践。",
			Slug:        "tech",
			IsPublished: true,
		},
		{
			Title:       "草稿箱",
			Description: "未公开的分类，用于演示分类下线后文章整体隐藏。",
			Slug:        "drafts",
			IsPublished: false,
		},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Select("*").Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类 ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"travel", "food", "tech", "drafts"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加地点
	locations := []models.Location{
		{Name: "北京", IsPublished: true},
		{Name: "上海", IsPublished: true},
		{Name: "成都", IsPublished: true},
		{Name: "秘密基地", IsPublished: false},
	}

	locationIDs := map[string]uint{}
	for _, loc := range locations {
		var existing models.Location
		if err := models.DB.Where("name = ?", loc.Name).First(&existing).Error; err != nil {
			if err := models.DB.Select("*").Create(&loc).Error; err != nil {
				stdLog.Printf("Failed to create location %s: %v", loc.Name, err)
				continue
			}
			stdLog.Printf("Created location: %s", loc.Name)
			locationIDs[loc.Name] = loc.ID
		} else {
			stdLog.Printf("Location already exists: %s", loc.Name)
			locationIDs[loc.Name] = existing.ID
		}
	}

	// 添加演示用户
	demoUsers := []struct {
		Username  string
		Email     string
		Password  string
		FirstName string
		LastName  string
	}{
		{Username: "demo", Email: "demo@example.com", Password: "Demo-Pass-2026", FirstName: "演示", LastName: "用户"},
		{Username: "author", Email: "author@example.com", Password: "Author-Pass-2026", FirstName: "示例", LastName: "作者"},
	}

	userIDs := map[string]uint{}
	for _, du := range demoUsers {
		var existing models.User
		if err := models.DB.Where("username = ?", du.Username).First(&existing).Error; err != nil {
			hash, hashErr := bcrypt.GenerateFromPassword([]byte(du.Password), bcrypt.DefaultCost)
			if hashErr != nil {
				stdLog.Printf("Failed to hash password for %s: %v", du.Username, hashErr)
				continue
			}
			user := models.User{
				Username:     du.Username,
				Email:        du.Email,
				PasswordHash: string(hash),
				FirstName:    du.FirstName,
				LastName:     du.LastName,
				Status:       constants.UserStatusActive,
			}
			if err := models.DB.Create(&user).Error; err != nil {
				stdLog.Printf("Failed to create user %s: %v", du.Username, err)
				continue
			}
			stdLog.Printf("Created user: %s (password: %s)", du.Username, du.Password)
			userIDs[du.Username] = user.ID
		} else {
			stdLog.Printf("User already exists: %s", du.Username)
			userIDs[du.Username] = existing.ID
		}
	}

	authorID := userIDs["author"]
	if authorID == 0 {
		stdLog.Printf("Skip post seed: author user missing")
		printSummary()
		return
	}

	// 添加文章（含延迟发布与未发布样例，便于验证可见性过滤）
	now := time.Now()
	travelID := categoryIDs["travel"]
	foodID := categoryIDs["food"]
	techID := categoryIDs["tech"]
	beijingID := locationIDs["北京"]
	chengduID := locationIDs["成都"]

	posts := []models.Post{
		{
			Title:       "川西环线七日记",
			Text:        "从成都出发，经四姑娘山、丹巴、新都桥回到成都。\n\n路况、住宿与摄影机位都记在这篇里，方便之后的人参考。",
			PubDate:     now.Add(-72 * time.Hour),
			IsPublished: true,
			AuthorID:    authorID,
			CategoryID:  uintPtr(travelID),
			LocationID:  uintPtr(chengduID),
		},
		{
			Title:       "家常回锅肉的三个关键",
			Text:        "二刀肉、豆瓣酱的火候、起锅前的糖。\n\n按这个顺序做，基本不会失手。",
			PubDate:     now.Add(-48 * time.Hour),
			IsPublished: true,
			AuthorID:    authorID,
			CategoryID:  uintPtr(foodID),
		},
		{
			Title:       "用 Gorm 写分页查询的几个坑",
			Text:        "Count 要在 Limit/Offset 之前做，预加载和子查询统计不要混在一条链上。\n\n附带一个可以直接抄的分页封装。",
			PubDate:     now.Add(-24 * time.Hour),
			IsPublished: true,
			AuthorID:    authorID,
			CategoryID:  uintPtr(techID),
			LocationID:  uintPtr(beijingID),
		},
		{
			Title:       "定时发布演示：明天见",
			Text:        "这篇文章的发布时间在未来，公开列表里看不到，作者本人可见。",
			PubDate:     now.Add(24 * time.Hour),
			IsPublished: true,
			AuthorID:    authorID,
			CategoryID:  uintPtr(techID),
		},
		{
			Title:       "未发布草稿演示",
			Text:        "这篇文章被作者撤下，仅作者本人可见。",
			PubDate:     now.Add(-12 * time.Hour),
			IsPublished: false,
			AuthorID:    authorID,
			CategoryID:  uintPtr(travelID),
		},
	}

	for _, post := range posts {
		var existing models.Post
		if err := models.DB.Where("title = ? AND author_id = ?", post.Title, post.AuthorID).First(&existing).Error; err != nil {
			if err := models.DB.Select("*").Create(&post).Error; err != nil {
				stdLog.Printf("Failed to create post %q: %v", post.Title, err)
			} else {
				stdLog.Printf("Created post: %s", post.Title)
			}
		} else {
			stdLog.Printf("Post already exists: %s", post.Title)
		}
	}

	// 添加评论
	demoID := userIDs["demo"]
	if demoID != 0 {
		var post models.Post
		if err := models.DB.Where("title = ? AND author_id = ?", "川西环线七日记", authorID).First(&post).Error; err == nil {
			comments := []models.Comment{
				{Text: "收藏了，十一正好用得上。", PostID: post.ID, AuthorID: demoID},
				{Text: "新都桥那段路现在修好了吗？", PostID: post.ID, AuthorID: demoID},
			}
			for _, comment := range comments {
				var existing models.Comment
				if err := models.DB.Where("post_id = ? AND author_id = ? AND text = ?", comment.PostID, comment.AuthorID, comment.Text).First(&existing).Error; err != nil {
					if err := models.DB.Create(&comment).Error; err != nil {
						stdLog.Printf("Failed to create comment: %v", err)
					} else {
						stdLog.Printf("Created comment on post %d", comment.PostID)
					}
				}
			}
		}
	}

	printSummary()
}

func printSummary() {
	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 4 Categories (1 unpublished)")
	fmt.Println("- 4 Locations (1 unpublished)")
	fmt.Println("- 2 Users (demo / author)")
	fmt.Println("- 5 Posts (含定时发布与未发布样例)")
	fmt.Println("- 2 Comments")
}

func uintPtr(v uint) *uint {
	if v == 0 {
		return nil
	}
	return &v
}
