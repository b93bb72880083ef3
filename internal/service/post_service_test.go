package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostService(db *gorm.DB) *postServiceImpl {
	return &postServiceImpl{
		postRepo: repository.NewPostRepo(db),
		now:      fixedNow,
	}
}

func TestCreatePostReusesDraftSlot(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")

	firstID, err := svc.CreateOrUpdatePost(ctx, author.ID, &dto.CreatePostDTO{
		Title:  "Hello",
		Status: model.PostStatusDraft,
		Tags:   []string{"go"},
	})
	require.NoError(t, err)

	// 再存一次草稿，覆盖同一条记录而不是新建
	secondID, err := svc.CreateOrUpdatePost(ctx, author.ID, &dto.CreatePostDTO{
		Title:  "Hello v2",
		Status: model.PostStatusDraft,
		Tags:   []string{"go", "web"},
	})
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID)

	var count int64
	require.NoError(t, db.Model(&model.Post{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	draft, err := svc.GetDraftPost(ctx, author.ID)
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, "Hello v2", draft.Title)
	assert.Equal(t, []string{"go", "web"}, draft.Tags)
	assert.Nil(t, draft.PublishedAt)
}

func TestCreatePostPublishConvertsDraftInPlace(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")

	draftID, err := svc.CreateOrUpdatePost(ctx, author.ID, &dto.CreatePostDTO{
		Title:  "WIP",
		Status: model.PostStatusDraft,
	})
	require.NoError(t, err)

	publishedID, err := svc.CreateOrUpdatePost(ctx, author.ID, &dto.CreatePostDTO{
		Title:  "Done",
		Status: model.PostStatusPublished,
	})
	require.NoError(t, err)
	assert.Equal(t, draftID, publishedID)

	post := &model.Post{}
	require.NoError(t, db.First(post, publishedID).Error)
	assert.Equal(t, model.PostStatusPublished, post.Status)
	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, fixedNow(), post.PublishedAt.UTC())

	// 草稿位清空后，下一次保存新建文章
	draft, err := svc.GetDraftPost(ctx, author.ID)
	require.NoError(t, err)
	assert.Nil(t, draft)

	newID, err := svc.CreateOrUpdatePost(ctx, author.ID, &dto.CreatePostDTO{
		Title:  "Next",
		Status: model.PostStatusDraft,
	})
	require.NoError(t, err)
	assert.NotEqual(t, publishedID, newID)
}

func TestCreatePostRejectsTooManyTags(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	author := seedUser(t, db, "alice")

	tags := make([]string, 11)
	for i := range tags {
		tags[i] = "t"
	}
	_, err := svc.CreateOrUpdatePost(context.Background(), author.ID, &dto.CreatePostDTO{
		Title:  "x",
		Status: model.PostStatusDraft,
		Tags:   tags,
	})
	assert.ErrorIs(t, err, ErrTagsTooMany)
}

func TestUpdatePostPublishedAtWrittenOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	post := seedPost(t, db, author.ID, model.PostStatusDraft, time.Time{})

	published := model.PostStatusPublished
	require.NoError(t, svc.UpdatePost(ctx, author.ID, post.ID, &dto.UpdatePostDTO{Status: &published}))

	got := &model.Post{}
	require.NoError(t, db.First(got, post.ID).Error)
	require.NotNil(t, got.PublishedAt)
	firstPublishedAt := got.PublishedAt.UTC()

	// 已发布的文章再改标题，发布时间保持不变
	svc.now = func() time.Time { return fixedNow().Add(48 * time.Hour) }
	title := "edited"
	require.NoError(t, svc.UpdatePost(ctx, author.ID, post.ID, &dto.UpdatePostDTO{Title: &title, Status: &published}))

	require.NoError(t, db.First(got, post.ID).Error)
	assert.Equal(t, "edited", got.Title)
	assert.Equal(t, firstPublishedAt, got.PublishedAt.UTC())
}

func TestUpdatePostOnlyAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	stranger := seedUser(t, db, "bob")
	post := seedPost(t, db, author.ID, model.PostStatusPublished, fixedNow())

	title := "hijacked"
	err := svc.UpdatePost(ctx, stranger.ID, post.ID, &dto.UpdatePostDTO{Title: &title})
	assert.ErrorIs(t, err, ErrNotPostAuthor)

	err = svc.UpdatePost(ctx, author.ID, 9999, &dto.UpdatePostDTO{Title: &title})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePostCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	fan := seedUser(t, db, "bob")
	post := seedPost(t, db, author.ID, model.PostStatusPublished, fixedNow())

	require.NoError(t, db.Create(&model.Like{UserID: fan.ID, PostID: post.ID, CreatedAt: fixedNow()}).Error)
	require.NoError(t, db.Create(&model.Comment{
		PostID:     post.ID,
		AuthorID:   &fan.ID,
		AuthorName: fan.Name,
		Content:    "nice",
		Status:     model.CommentStatusApproved,
		CreatedAt:  fixedNow(),
	}).Error)
	require.NoError(t, db.Create(&model.DailyStat{PostID: post.ID, StatDate: "2026-03-01", Views: 3}).Error)

	assert.ErrorIs(t, svc.DeletePost(ctx, fan.ID, post.ID), ErrNotPostAuthor)
	require.NoError(t, svc.DeletePost(ctx, author.ID, post.ID))

	for _, m := range []interface{}{&model.Post{}, &model.Like{}, &model.Comment{}, &model.DailyStat{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	}
}

func TestRepeatedDraftSavesKeepSingleDraft(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")

	var firstID uint64
	for i, title := range []string{"v1", "v2", "v3", "v4"} {
		id, err := svc.CreateOrUpdatePost(ctx, author.ID, &dto.CreatePostDTO{
			Title:  title,
			Status: model.PostStatusDraft,
		})
		require.NoError(t, err)
		if i == 0 {
			firstID = id
		}
		assert.Equal(t, firstID, id)

		var count int64
		require.NoError(t, db.Model(&model.Post{}).
			Where("author_id = ? AND status = ?", author.ID, model.PostStatusDraft).
			Count(&count).Error)
		assert.Equal(t, int64(1), count)
	}
}

func TestGetMyPostsFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	seedPost(t, db, author.ID, model.PostStatusPublished, fixedNow())
	seedPost(t, db, author.ID, model.PostStatusPublished, fixedNow())
	seedPost(t, db, author.ID, model.PostStatusDraft, time.Time{})

	all, err := svc.GetMyPosts(ctx, author.ID, "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	drafts, err := svc.GetMyPosts(ctx, author.ID, model.PostStatusDraft, 10)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, model.PostStatusDraft, drafts[0].Status)

	published, err := svc.GetMyPosts(ctx, author.ID, model.PostStatusPublished, 10)
	require.NoError(t, err)
	assert.Len(t, published, 2)
}

func TestGetMyPostPermission(t *testing.T) {
	db := newTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")
	stranger := seedUser(t, db, "bob")
	post := seedPost(t, db, author.ID, model.PostStatusDraft, time.Time{})

	got, err := svc.GetMyPost(ctx, author.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)

	_, err = svc.GetMyPost(ctx, stranger.ID, post.ID)
	assert.ErrorIs(t, err, ErrNotPostAuthor)
}
