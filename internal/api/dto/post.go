package dto

import "time"

// CreatePostDTO 保存草稿或直接发布
type CreatePostDTO struct {
	Title         string     `json:"title" binding:"required"`
	Content       string     `json:"content"`
	Status        string     `json:"status" binding:"required,oneof=draft published"`
	Tags          []string   `json:"tags" binding:"max=10"`
	Category      *string    `json:"category"`
	FeaturedImage *string    `json:"featuredImage"`
	ScheduledFor  *time.Time `json:"scheduledFor"`
}

// UpdatePostDTO 指针字段区分"未提交"和"清空"
type UpdatePostDTO struct {
	Title         *string    `json:"title"`
	Content       *string    `json:"content"`
	Status        *string    `json:"status" binding:"omitempty,oneof=draft published"`
	Tags          *[]string  `json:"tags"`
	Category      *string    `json:"category"`
	FeaturedImage *string    `json:"featuredImage"`
	ScheduledFor  *time.Time `json:"scheduledFor"`
}

type PostDTO struct {
	ID            uint64     `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Status        string     `json:"status"`
	Tags          []string   `json:"tags"`
	Category      *string    `json:"category"`
	FeaturedImage *string    `json:"featuredImage"`
	ViewCount     int        `json:"viewCount"`
	LikeCount     int        `json:"likeCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	PublishedAt   *time.Time `json:"publishedAt"`
	ScheduledFor  *time.Time `json:"scheduledFor"`
	Author        *AuthorDTO `json:"author"`
}

// PostWaterfallDTO 瀑布流分页结果
type PostWaterfallDTO struct {
	List    []*PostDTO `json:"list"`
	HasMore bool       `json:"hasMore"`
}

// ToggleLikeDTO 点赞开关结果
type ToggleLikeDTO struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

// GenerateDraftDTO AI 生成草稿请求
type GenerateDraftDTO struct {
	Topic string `json:"topic" binding:"required,max=200"`
}
