package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type FollowRepo interface {
	GetFollow(ctx context.Context, followerID, followingID uint64) (*model.Follow, error)
	CreateFollow(ctx context.Context, follow *model.Follow) error
	DeleteFollow(ctx context.Context, followerID, followingID uint64) (int64, error)

	GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error)
	GetFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error)
	GetRecentFollowers(ctx context.Context, userID uint64, limit int) ([]*model.Follow, error)
	GetFollowingIDs(ctx context.Context, followerID uint64) ([]uint64, error)
	GetFollowingIDSet(ctx context.Context, followerID uint64, candidateIDs []uint64) (map[uint64]struct{}, error)

	CountFollowers(ctx context.Context, userID uint64) (int64, error)
	CountFollowing(ctx context.Context, userID uint64) (int64, error)
	CountFollowersSince(ctx context.Context, userID uint64, from, to time.Time) (int64, error)
}

type FollowRepoImpl struct {
	db *gorm.DB
}

func NewFollowRepo(db *gorm.DB) FollowRepo {
	return &FollowRepoImpl{db: db}
}

func (s *FollowRepoImpl) GetFollow(ctx context.Context, followerID, followingID uint64) (*model.Follow, error) {
	follow := &model.Follow{}
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(follow)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return follow, nil
}

func (s *FollowRepoImpl) CreateFollow(ctx context.Context, follow *model.Follow) error {
	return s.db.WithContext(ctx).Create(follow).Error
}

func (s *FollowRepoImpl) DeleteFollow(ctx context.Context, followerID, followingID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{})
	return result.RowsAffected, result.Error
}

// GetFollowers 获取用户的粉丝列表
func (s *FollowRepoImpl) GetFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	follows := make([]*model.Follow, 0)
	result := s.db.WithContext(ctx).
		Preload("Follower").
		Where("following_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&follows)
	if result.Error != nil {
		return nil, result.Error
	}
	return follows, nil
}

// GetFollowing 获取用户的关注列表
func (s *FollowRepoImpl) GetFollowing(ctx context.Context, userID uint64, limit, offset int) ([]*model.Follow, error) {
	follows := make([]*model.Follow, 0)
	result := s.db.WithContext(ctx).
		Where("follower_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&follows)
	if result.Error != nil {
		return nil, result.Error
	}
	return follows, nil
}

func (s *FollowRepoImpl) GetRecentFollowers(ctx context.Context, userID uint64, limit int) ([]*model.Follow, error) {
	return s.GetFollowers(ctx, userID, limit, 0)
}

func (s *FollowRepoImpl) GetFollowingIDs(ctx context.Context, followerID uint64) ([]uint64, error) {
	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("following_id", &ids).Error
	return ids, err
}

// GetFollowingIDSet 在候选集中筛出已关注的用户
func (s *FollowRepoImpl) GetFollowingIDSet(ctx context.Context, followerID uint64, candidateIDs []uint64) (map[uint64]struct{}, error) {
	set := make(map[uint64]struct{})
	if len(candidateIDs) == 0 {
		return set, nil
	}

	var ids []uint64
	err := s.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND following_id IN ?", followerID, candidateIDs).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (s *FollowRepoImpl) CountFollowers(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Follow{}).
		Where("following_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *FollowRepoImpl) CountFollowing(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (s *FollowRepoImpl) CountFollowersSince(ctx context.Context, userID uint64, from, to time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Follow{}).
		Where("following_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Count(&count).Error
	return count, err
}
