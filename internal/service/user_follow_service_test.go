package service

import (
	"Inkstone/internal/model"
	"Inkstone/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserFollowService(db *gorm.DB) *userFollowServiceImpl {
	return &userFollowServiceImpl{
		followRepo: repository.NewFollowRepo(db),
		userRepo:   repository.NewUserRepo(db),
		now:        fixedNow,
	}
}

func TestToggleFollowFlips(t *testing.T) {
	db := newTestDB(t)
	svc := newUserFollowService(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	result, err := svc.ToggleFollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, result.Following)

	following, err := svc.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// 第二次翻转回未关注
	result, err = svc.ToggleFollow(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, result.Following)

	var count int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestToggleFollowRejectsSelfAndMissingTarget(t *testing.T) {
	db := newTestDB(t)
	svc := newUserFollowService(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")

	_, err := svc.ToggleFollow(ctx, alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrFollowSelf)

	_, err = svc.ToggleFollow(ctx, alice.ID, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetMyFollowersMarksFollowsBack(t *testing.T) {
	db := newTestDB(t)
	svc := newUserFollowService(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	base := fixedNow()
	require.NoError(t, db.Create(&model.Follow{FollowerID: bob.ID, FollowingID: alice.ID, CreatedAt: base}).Error)
	require.NoError(t, db.Create(&model.Follow{FollowerID: carol.ID, FollowingID: alice.ID, CreatedAt: base.Add(time.Minute)}).Error)
	// alice 只回关了 bob
	require.NoError(t, db.Create(&model.Follow{FollowerID: alice.ID, FollowingID: bob.ID, CreatedAt: base}).Error)

	followers, err := svc.GetMyFollowers(ctx, alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, followers, 2)

	// 最近的关注排在前面
	assert.Equal(t, carol.ID, followers[0].ID)
	assert.False(t, followers[0].FollowsBack)
	assert.Equal(t, bob.ID, followers[1].ID)
	assert.True(t, followers[1].FollowsBack)
}

func TestGetMyFollowingsMarksFollowsBack(t *testing.T) {
	db := newTestDB(t)
	svc := newUserFollowService(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	base := fixedNow()
	require.NoError(t, db.Create(&model.Follow{FollowerID: alice.ID, FollowingID: bob.ID, CreatedAt: base}).Error)
	require.NoError(t, db.Create(&model.Follow{FollowerID: alice.ID, FollowingID: carol.ID, CreatedAt: base.Add(time.Minute)}).Error)
	require.NoError(t, db.Create(&model.Follow{FollowerID: carol.ID, FollowingID: alice.ID, CreatedAt: base}).Error)

	followings, err := svc.GetMyFollowings(ctx, alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, followings, 2)

	assert.Equal(t, carol.ID, followings[0].ID)
	assert.True(t, followings[0].FollowsBack)
	assert.Equal(t, bob.ID, followings[1].ID)
	assert.False(t, followings[1].FollowsBack)
}

func TestFollowCountsFallBackToDB(t *testing.T) {
	db := newTestDB(t)
	svc := newUserFollowService(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	require.NoError(t, db.Create(&model.Follow{FollowerID: bob.ID, FollowingID: alice.ID, CreatedAt: fixedNow()}).Error)
	require.NoError(t, db.Create(&model.Follow{FollowerID: carol.ID, FollowingID: alice.ID, CreatedAt: fixedNow()}).Error)
	require.NoError(t, db.Create(&model.Follow{FollowerID: alice.ID, FollowingID: bob.ID, CreatedAt: fixedNow()}).Error)

	followerCount, err := svc.GetFollowerCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), followerCount)

	followingCount, err := svc.GetFollowingCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followingCount)
}
