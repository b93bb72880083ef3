package es

import "time"

// PostES 写入 ES 的文章文档
type PostES struct {
	ID             uint64     `json:"id"`
	AuthorID       uint64     `json:"author_id"`
	Status         string     `json:"status"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	Tags           []string   `json:"tags"`
	Category       *string    `json:"category,omitempty"`
	AuthorName     string     `json:"author_name"`
	AuthorUsername *string    `json:"author_username,omitempty"`
	AuthorAvatar   string     `json:"author_avatar"`
	LikeCount      int        `json:"like_count"`
	ViewCount      int        `json:"view_count"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Sort []interface{} `json:"-"`
}
