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

func newFeedService(db *gorm.DB) *feedServiceImpl {
	return &feedServiceImpl{
		postRepo:   repository.NewPostRepo(db),
		userRepo:   repository.NewUserRepo(db),
		followRepo: repository.NewFollowRepo(db),
		now:        fixedNow,
	}
}

func TestGetFeedWaterfall(t *testing.T) {
	db := newTestDB(t)
	svc := newFeedService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")

	base := fixedNow()
	first := seedPost(t, db, author.ID, model.PostStatusPublished, base.Add(-3*time.Hour))
	second := seedPost(t, db, author.ID, model.PostStatusPublished, base.Add(-2*time.Hour))
	third := seedPost(t, db, author.ID, model.PostStatusPublished, base.Add(-1*time.Hour))
	seedPost(t, db, author.ID, model.PostStatusDraft, time.Time{})

	page, err := svc.GetFeed(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page.List, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, third.ID, page.List[0].ID)
	assert.Equal(t, second.ID, page.List[1].ID)

	page, err = svc.GetFeed(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.False(t, page.HasMore)
	assert.Equal(t, first.ID, page.List[0].ID)
}

func TestGetFeedCapsOffset(t *testing.T) {
	db := newTestDB(t)
	svc := newFeedService(db)

	page, err := svc.GetFeed(context.Background(), 10, MaxOffsetLimit)
	require.NoError(t, err)
	assert.Empty(t, page.List)
	assert.False(t, page.HasMore)
}

func TestGetFeedDropsOrphanedPosts(t *testing.T) {
	db := newTestDB(t)
	svc := newFeedService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")

	seedPost(t, db, author.ID, model.PostStatusPublished, fixedNow())
	// 作者已注销的文章不进入公开流
	seedPost(t, db, 9999, model.PostStatusPublished, fixedNow().Add(time.Hour))

	page, err := svc.GetFeed(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.Equal(t, author.ID, page.List[0].Author.ID)
}

func TestGetTrendingPostsScoring(t *testing.T) {
	db := newTestDB(t)
	svc := newFeedService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")

	base := fixedNow()
	low := seedPost(t, db, author.ID, model.PostStatusPublished, base.Add(-24*time.Hour))
	high := seedPost(t, db, author.ID, model.PostStatusPublished, base.Add(-48*time.Hour))
	tieOld := seedPost(t, db, author.ID, model.PostStatusPublished, base.Add(-24*time.Hour))
	tieNew := seedPost(t, db, author.ID, model.PostStatusPublished, base.Add(-24*time.Hour))
	stale := seedPost(t, db, author.ID, model.PostStatusPublished, base.Add(-10*24*time.Hour))

	// 热度 = 阅读数 + 3*点赞数
	require.NoError(t, db.Model(&model.Post{}).Where("id = ?", low.ID).Updates(map[string]interface{}{"view_count": 10, "like_count": 0}).Error)
	require.NoError(t, db.Model(&model.Post{}).Where("id = ?", high.ID).Updates(map[string]interface{}{"view_count": 10, "like_count": 20}).Error)
	require.NoError(t, db.Model(&model.Post{}).Where("id = ?", tieOld.ID).Updates(map[string]interface{}{"view_count": 30, "like_count": 0}).Error)
	require.NoError(t, db.Model(&model.Post{}).Where("id = ?", tieNew.ID).Updates(map[string]interface{}{"view_count": 0, "like_count": 10}).Error)
	require.NoError(t, db.Model(&model.Post{}).Where("id = ?", stale.ID).Updates(map[string]interface{}{"view_count": 9999, "like_count": 9999}).Error)

	posts, err := svc.GetTrendingPosts(ctx, 3)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	// 7天窗口外的文章无论热度多高都不上榜；同分时新文章在前
	assert.Equal(t, high.ID, posts[0].ID)
	assert.Equal(t, tieNew.ID, posts[1].ID)
	assert.Equal(t, tieOld.ID, posts[2].ID)
}

func TestGetSuggestedUsersExcludesSelfAndFollowed(t *testing.T) {
	db := newTestDB(t)
	svc := newFeedService(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	dave := seedUser(t, db, "dave")

	require.NoError(t, db.Create(&model.Follow{FollowerID: alice.ID, FollowingID: bob.ID, CreatedAt: fixedNow()}).Error)

	users, err := svc.GetSuggestedUsers(ctx, alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, carol.ID, users[0].ID)
	assert.Equal(t, dave.ID, users[1].ID)

	// 匿名访客看到所有人
	users, err = svc.GetSuggestedUsers(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, users, 4)
}

func TestGetPublishedPostVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := newFeedService(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	username := "alice-blog"
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", alice.ID).Update("username", username).Error)

	published := seedPost(t, db, alice.ID, model.PostStatusPublished, fixedNow())
	draft := seedPost(t, db, alice.ID, model.PostStatusDraft, time.Time{})

	got, err := svc.GetPublishedPost(ctx, username, published.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, published.ID, got.ID)

	// 草稿只有作者本人能预览
	_, err = svc.GetPublishedPost(ctx, username, draft.ID, bob.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	got, err = svc.GetPublishedPost(ctx, username, draft.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)

	// 文章不属于这个用户名下时按不存在处理
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", bob.ID).Update("username", "bob-blog").Error)
	_, err = svc.GetPublishedPost(ctx, "bob-blog", published.ID, 0)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.GetPublishedPost(ctx, "nobody", published.ID, 0)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetPublishedPostsByUser(t *testing.T) {
	db := newTestDB(t)
	svc := newFeedService(db)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", alice.ID).Update("username", "alice-blog").Error)

	seedPost(t, db, alice.ID, model.PostStatusPublished, fixedNow())
	seedPost(t, db, alice.ID, model.PostStatusDraft, time.Time{})

	page, err := svc.GetPublishedPostsByUser(ctx, "alice-blog", 10, 0)
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.False(t, page.HasMore)
}
