package service

import (
	"Inkstone/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// 内存库的表结构只存在于单个连接上
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Like{},
		&model.Comment{},
		&model.Follow{},
		&model.DailyStat{},
	)
	require.NoError(t, err)

	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()

	user := &model.User{
		TokenIdentifier: "test|" + name,
		Name:            name,
		Email:           name + "@example.com",
		ImageURL:        "https://cdn.example.com/" + name + ".png",
		CreatedAt:       time.Now().UTC(),
		LastActiveAt:    time.Now().UTC(),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, authorID uint64, status string, publishedAt time.Time) *model.Post {
	t.Helper()

	post := &model.Post{
		AuthorID:  authorID,
		Title:     "title",
		Content:   "content",
		Status:    status,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if status == model.PostStatusPublished {
		post.PublishedAt = &publishedAt
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}
