package dto

import "time"

type AddCommentDTO struct {
	Content string `json:"content" binding:"required"`
}

type CommentDTO struct {
	ID         uint64    `json:"id"`
	PostID     uint64    `json:"postId"`
	AuthorID   *uint64   `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}
