package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/repository"
	"context"
	"strconv"
	"time"
)

type UserFollowService interface {
	ToggleFollow(ctx context.Context, followerID, followingID uint64) (*dto.ToggleFollowDTO, error)
	IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error)
	GetFollowerCount(ctx context.Context, userID uint64) (int64, error)
	GetFollowingCount(ctx context.Context, userID uint64) (int64, error)
	GetMyFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*dto.FollowUserDTO, error)
	GetMyFollowings(ctx context.Context, userID uint64, limit, offset int) ([]*dto.FollowUserDTO, error)
}

type userFollowServiceImpl struct {
	followRepo repository.FollowRepo
	userRepo   repository.UserRepo
	now        func() time.Time
}

func NewUserFollowService(followRepo repository.FollowRepo, userRepo repository.UserRepo) UserFollowService {
	return &userFollowServiceImpl{
		followRepo: followRepo,
		userRepo:   userRepo,
		now:        time.Now,
	}
}

// ToggleFollow 关注开关，幂等翻转
func (s *userFollowServiceImpl) ToggleFollow(ctx context.Context, followerID, followingID uint64) (*dto.ToggleFollowDTO, error) {
	if followerID == followingID {
		return nil, ErrFollowSelf
	}

	target, err := s.userRepo.GetUserById(ctx, followingID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.followRepo.GetFollow(ctx, followerID, followingID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if _, err = s.followRepo.DeleteFollow(ctx, followerID, followingID); err != nil {
			return nil, err
		}
		return &dto.ToggleFollowDTO{Following: false}, nil
	}

	follow := &model.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   s.now(),
	}
	if err = s.followRepo.CreateFollow(ctx, follow); err != nil {
		if !isDuplicateError(err) {
			return nil, err
		}
	}

	return &dto.ToggleFollowDTO{Following: true}, nil
}

func (s *userFollowServiceImpl) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	follow, err := s.followRepo.GetFollow(ctx, followerID, followingID)
	if err != nil {
		return false, err
	}
	return follow != nil, nil
}

func (s *userFollowServiceImpl) GetFollowerCount(ctx context.Context, userID uint64) (int64, error) {
	return s.getCountCommon(ctx, userID, consts.UserFollowerCountKey, s.followRepo.CountFollowers)
}

func (s *userFollowServiceImpl) GetFollowingCount(ctx context.Context, userID uint64) (int64, error) {
	return s.getCountCommon(ctx, userID, consts.UserFollowingCountKey, s.followRepo.CountFollowing)
}

// GetMyFollowers 粉丝列表，并标注我是否回关
func (s *userFollowServiceImpl) GetMyFollowers(ctx context.Context, userID uint64, limit, offset int) ([]*dto.FollowUserDTO, error) {
	follows, err := s.followRepo.GetFollowers(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	candidateIDs := make([]uint64, 0, len(follows))
	for _, f := range follows {
		candidateIDs = append(candidateIDs, f.FollowerID)
	}

	followedBack, err := s.followRepo.GetFollowingIDSet(ctx, userID, candidateIDs)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.FollowUserDTO, 0, len(follows))
	for _, f := range follows {
		_, back := followedBack[f.FollowerID]
		items = append(items, &dto.FollowUserDTO{
			ID:          f.Follower.ID,
			Name:        f.Follower.Name,
			Username:    f.Follower.Username,
			ImageURL:    f.Follower.ImageURL,
			FollowsBack: back,
			FollowedAt:  f.CreatedAt,
		})
	}
	return items, nil
}

// GetMyFollowings 关注列表，并标注对方是否关注了我
func (s *userFollowServiceImpl) GetMyFollowings(ctx context.Context, userID uint64, limit, offset int) ([]*dto.FollowUserDTO, error) {
	follows, err := s.followRepo.GetFollowing(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	followingIDs := make([]uint64, 0, len(follows))
	for _, f := range follows {
		followingIDs = append(followingIDs, f.FollowingID)
	}

	users, err := s.userRepo.GetUserByIds(ctx, followingIDs)
	if err != nil {
		return nil, err
	}
	userMap := make(map[uint64]*model.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	items := make([]*dto.FollowUserDTO, 0, len(follows))
	for _, f := range follows {
		u, ok := userMap[f.FollowingID]
		if !ok {
			continue
		}

		back, err := s.IsFollowing(ctx, f.FollowingID, userID)
		if err != nil {
			return nil, err
		}

		items = append(items, &dto.FollowUserDTO{
			ID:          u.ID,
			Name:        u.Name,
			Username:    u.Username,
			ImageURL:    u.ImageURL,
			FollowsBack: back,
			FollowedAt:  f.CreatedAt,
		})
	}
	return items, nil
}

type fetchCountFunc func(ctx context.Context, userID uint64) (int64, error)

func (s *userFollowServiceImpl) getCountCommon(
	ctx context.Context,
	userID uint64,
	keyPrefix string,
	fetchDB fetchCountFunc,
) (int64, error) {
	key := keyPrefix + strconv.FormatUint(userID, 10)

	valStr, err := redis.GetValue(ctx, key)
	if err == nil && valStr != "" {
		return strconv.ParseInt(valStr, 10, 64)
	}

	count, err := fetchDB(ctx, userID)
	if err != nil {
		return 0, err
	}

	_ = redis.SetWithExpiration(ctx, key, count, time.Hour*1)
	return count, nil
}
