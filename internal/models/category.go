package models

import "time"

// Category 分类表
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                // 主键
	Title       string    `gorm:"type:varchar(256);not null" json:"title"`             // 分类标题
	Description string    `gorm:"type:text" json:"description"`                        // 分类描述
	Slug        string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"slug"`   // 唯一标识（用于 URL）
	IsPublished bool      `gorm:"not null;default:true;index" json:"is_published"`     // 是否发布，下线后其下文章整体隐藏
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                             // 创建时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
