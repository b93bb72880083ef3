package dto

import "time"

// UserDTO 用户完整信息
type UserDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Username  *string   `json:"username"`
	Bio       *string   `json:"bio"`
	ImageURL  string    `json:"imageUrl"`
	Email     string    `json:"email"`
	State     string    `json:"state,omitempty"`
	Country   string    `json:"country,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthorDTO 嵌在文章里的作者快照
type AuthorDTO struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Username *string `json:"username"`
	ImageURL string  `json:"imageUrl"`
}

type UpdateUsernameDTO struct {
	Username string `json:"username" binding:"required"`
}

// UpdateProfileDTO 指针字段区分"未提交"和"清空"
type UpdateProfileDTO struct {
	Name     *string `json:"name"`
	Bio      *string `json:"bio"`
	ImageURL *string `json:"imageUrl"`
	State    *string `json:"state"`
	Country  *string `json:"country"`
	Username *string `json:"username"`
}

// SuggestedUserDTO 推荐关注的用户
type SuggestedUserDTO struct {
	ID       uint64  `json:"id"`
	Name     string  `json:"name"`
	Username *string `json:"username"`
	Bio      *string `json:"bio"`
	ImageURL string  `json:"imageUrl"`
}

// FollowUserDTO 粉丝/关注列表项
type FollowUserDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Username    *string   `json:"username"`
	ImageURL    string    `json:"imageUrl"`
	FollowsBack bool      `json:"followsBack"`
	FollowedAt  time.Time `json:"followedAt"`
}

// ToggleFollowDTO 关注开关结果
type ToggleFollowDTO struct {
	Following bool `json:"following"`
}
