package repository

import "time"

// PostListFilter 查询文章列表的过滤条件
type PostListFilter struct {
	Page             int
	PageSize         int
	CategoryID       uint       // 按分类过滤（0 表示不过滤）
	AuthorID         uint       // 按作者过滤（0 表示不过滤）
	Search           string     // 标题模糊搜索（管理端）
	OnlyVisible      bool       // 仅公开可见：已发布、发布时间已到、分类未下线
	Now              *time.Time // 可见性判断的时间基准，空则取当前时间
	WithCommentCount bool       // 是否填充评论数
	OrderBy          string
}

// CommentListFilter 查询评论列表的过滤条件
type CommentListFilter struct {
	Page     int
	PageSize int
	PostID   uint
	AuthorID uint
}

// CategoryListFilter 查询分类列表的过滤条件
type CategoryListFilter struct {
	Page          int
	PageSize      int
	Search        string
	OnlyPublished bool
}

// LocationListFilter 查询地点列表的过滤条件
type LocationListFilter struct {
	Page          int
	PageSize      int
	Search        string
	OnlyPublished bool
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Status      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
