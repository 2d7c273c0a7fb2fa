package models

import "time"

// Post 文章表
type Post struct {
	ID          uint      `gorm:"primarykey" json:"id"`                            // 主键
	Title       string    `gorm:"type:varchar(256);not null" json:"title"`         // 文章标题
	Text        string    `gorm:"type:text;not null" json:"text"`                  // 正文
	PubDate     time.Time `gorm:"index;not null" json:"pub_date"`                  // 发布时间，允许设为未来实现定时发布
	IsPublished bool      `gorm:"not null;default:true;index" json:"is_published"` // 是否发布，创建接口不接受该字段
	Image       string    `gorm:"type:varchar(500)" json:"image"`                  // 配图路径（可为空）
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`                 // 作者 ID
	CategoryID  *uint     `gorm:"index" json:"category_id"`                        // 分类 ID（可为空，分类删除时置空）
	LocationID  *uint     `gorm:"index" json:"location_id"`                        // 地点 ID（可为空，地点删除时置空）
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                         // 创建时间

	Author   *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`

	// CommentCount 评论数，列表查询时由子查询填充，不建表
	CommentCount int64 `gorm:"->;-:migration" json:"comment_count"`
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}
