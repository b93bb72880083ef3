package dto

import "time"

// AnalyticsDTO 作者仪表盘总览
type AnalyticsDTO struct {
	TotalPosts    int64 `json:"totalPosts"`
	TotalViews    int64 `json:"totalViews"`
	TotalLikes    int64 `json:"totalLikes"`
	TotalComments int64 `json:"totalComments"`
	Followers     int64 `json:"followers"`

	ViewsGrowth     float64 `json:"viewsGrowth"`
	LikesGrowth     float64 `json:"likesGrowth"`
	CommentsGrowth  float64 `json:"commentsGrowth"`
	FollowersGrowth float64 `json:"followersGrowth"`
}

// PostRefDTO 活动流里的文章引用
type PostRefDTO struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

// ActivityEntryDTO 最近动态条目
type ActivityEntryDTO struct {
	Type string      `json:"type"`
	User *AuthorDTO  `json:"user"`
	Post *PostRefDTO `json:"post,omitempty"`
	Time time.Time   `json:"time"`
}

// PostWithStatsDTO 带评论数的文章行
type PostWithStatsDTO struct {
	PostDTO
	CommentCount int64 `json:"commentCount"`
}
