package model

import (
	"time"
)

const (
	CommentStatusApproved = "approved"
	CommentStatusPending  = "pending"
	CommentStatusRejected = "rejected"
)

type Comment struct {
	ID          uint64    `gorm:"primaryKey"`
	PostID      uint64    `gorm:"not null;index:idx_comments_post;index:idx_comments_post_status" json:"postId"`
	AuthorID    *uint64   `gorm:"index:idx_comments_author" json:"authorId"` // nil 表示匿名遗留评论
	AuthorName  string    `gorm:"type:varchar(100);not null" json:"authorName"`
	AuthorEmail *string   `gorm:"type:varchar(255)" json:"authorEmail"`
	Content     string    `gorm:"type:varchar(1000);not null" json:"content"`
	Status      string    `gorm:"type:varchar(16);not null;default:approved;index:idx_comments_post_status,priority:2" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`

	Author *User `gorm:"foreignKey:AuthorID;references:ID"`
}

func (Comment) TableName() string {
	return "comments"
}
