package model

import (
	"time"

	"github.com/goccy/go-json"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

type Post struct {
	ID            uint64     `gorm:"primaryKey"`
	AuthorID      uint64     `gorm:"not null;index:idx_posts_author;index:idx_posts_author_status" json:"authorId"`
	Title         string     `gorm:"type:varchar(255);not null" json:"title"`
	Content       string     `gorm:"not null" json:"content"`
	Status        string     `gorm:"type:varchar(16);not null;default:draft;index:idx_posts_author_status,priority:2;index:idx_posts_status" json:"status"`
	Tags          []string   `gorm:"type:json;serializer:json" json:"tags"`
	Category      *string    `gorm:"type:varchar(100)" json:"category"`
	FeaturedImage *string    `gorm:"type:varchar(512)" json:"featuredImage"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	PublishedAt   *time.Time `gorm:"index:idx_posts_published" json:"publishedAt"`
	ScheduledFor  *time.Time `json:"scheduledFor"`
	ViewCount     int        `gorm:"not null;default:0" json:"viewCount"`
	LikeCount     int        `gorm:"not null;default:0" json:"likeCount"`

	Author User `gorm:"foreignKey:AuthorID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}

// TagsValue map 形式的 Updates 不走序列化器，标签需要先转成 JSON 字符串
func TagsValue(tags []string) string {
	if tags == nil {
		tags = make([]string, 0)
	}
	b, _ := json.Marshal(tags)
	return string(b)
}
