package service

import (
	"testing"
	"time"

	"github.com/blogicum-next/internal/models"
)

func TestIsPostVisible(t *testing.T) {
	now := time.Now()
	publishedCategory := &models.Category{ID: 1, IsPublished: true}
	hiddenCategory := &models.Category{ID: 2, IsPublished: false}
	categoryID := uint(1)
	hiddenCategoryID := uint(2)

	cases := []struct {
		name     string
		post     *models.Post
		viewerID uint
		want     bool
	}{
		{
			name: "published past post visible to anonymous",
			post: &models.Post{AuthorID: 10, IsPublished: true, PubDate: now.Add(-time.Hour),
				CategoryID: &categoryID, Category: publishedCategory},
			viewerID: 0,
			want:     true,
		},
		{
			name:     "post without category visible",
			post:     &models.Post{AuthorID: 10, IsPublished: true, PubDate: now.Add(-time.Hour)},
			viewerID: 0,
			want:     true,
		},
		{
			name:     "unpublished post hidden from others",
			post:     &models.Post{AuthorID: 10, IsPublished: false, PubDate: now.Add(-time.Hour)},
			viewerID: 20,
			want:     false,
		},
		{
			name:     "future pub_date hidden from others",
			post:     &models.Post{AuthorID: 10, IsPublished: true, PubDate: now.Add(time.Hour)},
			viewerID: 20,
			want:     false,
		},
		{
			name: "hidden category hides post",
			post: &models.Post{AuthorID: 10, IsPublished: true, PubDate: now.Add(-time.Hour),
				CategoryID: &hiddenCategoryID, Category: hiddenCategory},
			viewerID: 0,
			want:     false,
		},
		{
			name:     "author sees own unpublished post",
			post:     &models.Post{AuthorID: 10, IsPublished: false, PubDate: now.Add(-time.Hour)},
			viewerID: 10,
			want:     true,
		},
		{
			name:     "author sees own scheduled post",
			post:     &models.Post{AuthorID: 10, IsPublished: true, PubDate: now.Add(time.Hour)},
			viewerID: 10,
			want:     true,
		},
		{
			name: "author sees own post in hidden category",
			post: &models.Post{AuthorID: 10, IsPublished: true, PubDate: now.Add(-time.Hour),
				CategoryID: &hiddenCategoryID, Category: hiddenCategory},
			viewerID: 10,
			want:     true,
		},
		{
			name:     "nil post never visible",
			post:     nil,
			viewerID: 10,
			want:     false,
		},
	}

	for _, item := range cases {
		got := IsPostVisible(item.post, item.viewerID, now)
		if got != item.want {
			t.Fatalf("%s: want %v got %v", item.name, item.want, got)
		}
	}
}
