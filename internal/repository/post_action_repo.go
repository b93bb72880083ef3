package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type PostActionRepo interface {
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, userID, postID uint64) (int64, error)
	CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error)
	GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error)
	GetRecentLikes(ctx context.Context, postID uint64, limit int) ([]*model.Like, error)
	CountLikesOnPostsSince(ctx context.Context, postIDs []uint64, from, to time.Time) (int64, error)

	CreateComment(ctx context.Context, comment *model.Comment) error
	DeleteComment(ctx context.Context, commentID uint64) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	GetApprovedCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error)
	GetRecentComments(ctx context.Context, postID uint64, limit int) ([]*model.Comment, error)
	CountApprovedByPostID(ctx context.Context, postID uint64) (int64, error)
	CountApprovedOnPosts(ctx context.Context, postIDs []uint64) (int64, error)
	CountApprovedOnPostsSince(ctx context.Context, postIDs []uint64, from, to time.Time) (int64, error)
}

type PostActionRepoImpl struct {
	db *gorm.DB
}

func NewPostActionRepo(db *gorm.DB) PostActionRepo {
	return &PostActionRepoImpl{db}
}

func (s *PostActionRepoImpl) CreateLike(ctx context.Context, like *model.Like) error {
	return s.db.WithContext(ctx).Create(like).Error
}

func (s *PostActionRepoImpl) DeleteLike(ctx context.Context, userID, postID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Like{})
	return result.RowsAffected, result.Error
}

func (s *PostActionRepoImpl) CheckLikeExists(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (s *PostActionRepoImpl) GetLikeCountByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (s *PostActionRepoImpl) GetRecentLikes(ctx context.Context, postID uint64, limit int) ([]*model.Like, error) {
	likes := make([]*model.Like, 0)
	result := s.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at desc").
		Limit(limit).
		Find(&likes)
	if result.Error != nil {
		return nil, result.Error
	}
	return likes, nil
}

func (s *PostActionRepoImpl) CountLikesOnPostsSince(ctx context.Context, postIDs []uint64, from, to time.Time) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("post_id IN ? AND created_at >= ? AND created_at < ?", postIDs, from, to).
		Count(&count).Error
	return count, err
}

func (s *PostActionRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *PostActionRepoImpl) DeleteComment(ctx context.Context, commentID uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Comment{}, commentID).Error
}

func (s *PostActionRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	comment := &model.Comment{}
	result := s.db.WithContext(ctx).First(comment, commentID)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return comment, nil
}

func (s *PostActionRepoImpl) GetApprovedCommentsByPostID(ctx context.Context, postID uint64, limit, offset int) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	result := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ? AND status = ?", postID, model.CommentStatusApproved).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&comments)
	if result.Error != nil {
		return nil, result.Error
	}
	return comments, nil
}

func (s *PostActionRepoImpl) GetRecentComments(ctx context.Context, postID uint64, limit int) ([]*model.Comment, error) {
	return s.GetApprovedCommentsByPostID(ctx, postID, limit, 0)
}

func (s *PostActionRepoImpl) CountApprovedByPostID(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id = ? AND status = ?", postID, model.CommentStatusApproved).
		Count(&count).Error
	return count, err
}

func (s *PostActionRepoImpl) CountApprovedOnPosts(ctx context.Context, postIDs []uint64) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id IN ? AND status = ?", postIDs, model.CommentStatusApproved).
		Count(&count).Error
	return count, err
}

func (s *PostActionRepoImpl) CountApprovedOnPostsSince(ctx context.Context, postIDs []uint64, from, to time.Time) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("post_id IN ? AND status = ? AND created_at >= ? AND created_at < ?",
			postIDs, model.CommentStatusApproved, from, to).
		Count(&count).Error
	return count, err
}
