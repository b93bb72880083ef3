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

func newAnalyticsService(db *gorm.DB) *analyticsServiceImpl {
	return &analyticsServiceImpl{
		postRepo:      repository.NewPostRepo(db),
		actionRepo:    repository.NewPostActionRepo(db),
		followRepo:    repository.NewFollowRepo(db),
		dailyStatRepo: repository.NewDailyStatRepo(db),
		now:           fixedNow,
	}
}

func TestGetAnalyticsTotalsAndGrowth(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	fan := seedUser(t, db, "bob")
	fan2 := seedUser(t, db, "carol")

	now := fixedNow()
	recent := now.AddDate(0, 0, -10)
	previous := now.AddDate(0, 0, -40)

	p1 := seedPost(t, db, author.ID, model.PostStatusPublished, previous)
	p2 := seedPost(t, db, author.ID, model.PostStatusPublished, recent)
	seedPost(t, db, author.ID, model.PostStatusDraft, time.Time{})

	require.NoError(t, db.Model(&model.Post{}).Where("id = ?", p1.ID).Updates(map[string]interface{}{"view_count": 150, "like_count": 3}).Error)
	require.NoError(t, db.Model(&model.Post{}).Where("id = ?", p2.ID).Updates(map[string]interface{}{"view_count": 50, "like_count": 1}).Error)

	// 近30天的阅读量 50，占累计 200 的 25%
	require.NoError(t, db.Create(&model.DailyStat{PostID: p2.ID, StatDate: recent.Format(time.DateOnly), Views: 50}).Error)

	// 近30天1个赞，占累计 4 个的 25%
	require.NoError(t, db.Create(&model.Like{UserID: fan.ID, PostID: p2.ID, CreatedAt: recent}).Error)

	// 评论环比：近30天 3 条,上一个30天 2 条 => +50%
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&model.Comment{
			PostID: p2.ID, AuthorID: &fan.ID, AuthorName: fan.Name,
			Content: "recent", Status: model.CommentStatusApproved, CreatedAt: recent,
		}).Error)
	}
	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&model.Comment{
			PostID: p1.ID, AuthorID: &fan.ID, AuthorName: fan.Name,
			Content: "previous", Status: model.CommentStatusApproved, CreatedAt: previous,
		}).Error)
	}

	// 粉丝环比：上一个周期 0,本周期 2 => 按基数1计算 +200%
	require.NoError(t, db.Create(&model.Follow{FollowerID: fan.ID, FollowingID: author.ID, CreatedAt: recent}).Error)
	require.NoError(t, db.Create(&model.Follow{FollowerID: fan2.ID, FollowingID: author.ID, CreatedAt: recent}).Error)

	got, err := svc.GetAnalytics(ctx, author.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), got.TotalPosts)
	assert.Equal(t, int64(200), got.TotalViews)
	assert.Equal(t, int64(4), got.TotalLikes)
	assert.Equal(t, int64(5), got.TotalComments)
	assert.Equal(t, int64(2), got.Followers)

	assert.InDelta(t, 25.0, got.ViewsGrowth, 0.001)
	assert.InDelta(t, 25.0, got.LikesGrowth, 0.001)
	assert.InDelta(t, 50.0, got.CommentsGrowth, 0.001)
	assert.InDelta(t, 200.0, got.FollowersGrowth, 0.001)
}

func TestGetAnalyticsEmptyAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)
	author := seedUser(t, db, "alice")

	got, err := svc.GetAnalytics(context.Background(), author.ID)
	require.NoError(t, err)

	assert.Zero(t, got.TotalPosts)
	assert.Zero(t, got.TotalViews)
	assert.Zero(t, got.ViewsGrowth)
	assert.Zero(t, got.FollowersGrowth)
}

func TestRecentActivityMergedDesc(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	fan := seedUser(t, db, "bob")
	post := seedPost(t, db, author.ID, model.PostStatusPublished, fixedNow().AddDate(0, 0, -5))

	base := fixedNow()
	require.NoError(t, db.Create(&model.Like{UserID: fan.ID, PostID: post.ID, CreatedAt: base.Add(-3 * time.Hour)}).Error)
	require.NoError(t, db.Create(&model.Comment{
		PostID: post.ID, AuthorID: &fan.ID, AuthorName: fan.Name,
		Content: "comment", Status: model.CommentStatusApproved, CreatedAt: base.Add(-1 * time.Hour),
	}).Error)
	require.NoError(t, db.Create(&model.Follow{FollowerID: fan.ID, FollowingID: author.ID, CreatedAt: base.Add(-2 * time.Hour)}).Error)

	entries, err := svc.RecentActivity(ctx, author.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "comment", entries[0].Type)
	assert.Equal(t, "follow", entries[1].Type)
	assert.Equal(t, "like", entries[2].Type)

	assert.Equal(t, fan.ID, entries[2].User.ID)
	require.NotNil(t, entries[0].Post)
	assert.Equal(t, post.ID, entries[0].Post.ID)
	assert.Nil(t, entries[1].Post)
}

func TestRecentActivityHonorsLimit(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	fan := seedUser(t, db, "bob")
	post := seedPost(t, db, author.ID, model.PostStatusPublished, fixedNow().AddDate(0, 0, -5))

	for i := 0; i < 4; i++ {
		require.NoError(t, db.Create(&model.Comment{
			PostID: post.ID, AuthorID: &fan.ID, AuthorName: fan.Name,
			Content: "c", Status: model.CommentStatusApproved,
			CreatedAt: fixedNow().Add(time.Duration(-i) * time.Minute),
		}).Error)
	}

	entries, err := svc.RecentActivity(ctx, author.ID, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestGetPostsWithAnalytics(t *testing.T) {
	db := newTestDB(t)
	svc := newAnalyticsService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	fan := seedUser(t, db, "bob")

	post := seedPost(t, db, author.ID, model.PostStatusPublished, fixedNow())
	draft := seedPost(t, db, author.ID, model.PostStatusDraft, time.Time{})

	require.NoError(t, db.Create(&model.Comment{
		PostID: post.ID, AuthorID: &fan.ID, AuthorName: fan.Name,
		Content: "approved", Status: model.CommentStatusApproved, CreatedAt: fixedNow(),
	}).Error)
	require.NoError(t, db.Create(&model.Comment{
		PostID: post.ID, AuthorID: &fan.ID, AuthorName: fan.Name,
		Content: "rejected", Status: model.CommentStatusRejected, CreatedAt: fixedNow(),
	}).Error)

	items, err := svc.GetPostsWithAnalytics(ctx, author.ID, 10)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := make(map[uint64]int64, len(items))
	for _, item := range items {
		byID[item.ID] = item.CommentCount
	}
	assert.Equal(t, int64(1), byID[post.ID])
	assert.Equal(t, int64(0), byID[draft.ID])
}
