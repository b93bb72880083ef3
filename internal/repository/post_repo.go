package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type PostRepo interface {
	GetPostById(ctx context.Context, id uint64) (*model.Post, error)
	GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error)
	GetDraftByAuthor(ctx context.Context, authorID uint64) (*model.Post, error)
	CreatePost(ctx context.Context, post *model.Post) error
	UpdatePost(ctx context.Context, postID uint64, updates map[string]interface{}) error
	DeletePostCascade(ctx context.Context, postID uint64) error

	GetPublishedPosts(ctx context.Context, limit, offset int) ([]*model.Post, error)
	GetPublishedPostsByAuthor(ctx context.Context, authorID uint64, limit, offset int) ([]*model.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID uint64, status string, limit int) ([]*model.Post, error)
	GetPublishedPostsSince(ctx context.Context, since time.Time) ([]*model.Post, error)
	GetPublishedPostIDsByAuthor(ctx context.Context, authorID uint64) ([]uint64, error)

	IncrementViewCount(ctx context.Context, postID uint64) (int64, error)
	IncrementLikeCount(ctx context.Context, postID uint64) error
	DecrementLikeCount(ctx context.Context, postID uint64) error
	UpdateLikeCount(ctx context.Context, postID uint64, count int64) error

	CountPublishedByAuthor(ctx context.Context, authorID uint64) (int64, error)
	SumViewCountByAuthor(ctx context.Context, authorID uint64) (int64, error)
	SumLikeCountByAuthor(ctx context.Context, authorID uint64) (int64, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) GetPostById(ctx context.Context, id uint64) (*model.Post, error) {
	post := &model.Post{}
	result := s.db.WithContext(ctx).
		Preload("Author").
		First(post, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return post, nil
}

func (s *PostRepoImpl) GetPostByIds(ctx context.Context, ids []uint64) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	result := s.db.WithContext(ctx).
		Preload("Author").
		Where("id IN ?", ids).
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

// GetDraftByAuthor 取作者当前的草稿位
func (s *PostRepoImpl) GetDraftByAuthor(ctx context.Context, authorID uint64) (*model.Post, error) {
	post := &model.Post{}
	result := s.db.WithContext(ctx).
		Where("author_id = ? AND status = ?", authorID, model.PostStatusDraft).
		Order("updated_at desc").
		First(post)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return post, nil
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostRepoImpl) UpdatePost(ctx context.Context, postID uint64, updates map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", postID).
		Updates(updates).Error
}

// DeletePostCascade 删除文章并级联清理其点赞、评论和日统计
func (s *PostRepoImpl) DeletePostCascade(ctx context.Context, postID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.DailyStat{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, postID).Error
	})
}

func (s *PostRepoImpl) GetPublishedPosts(ctx context.Context, limit, offset int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	result := s.db.WithContext(ctx).
		Preload("Author").
		Where("status = ?", model.PostStatusPublished).
		Order("published_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

func (s *PostRepoImpl) GetPublishedPostsByAuthor(ctx context.Context, authorID uint64, limit, offset int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	result := s.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ? AND status = ?", authorID, model.PostStatusPublished).
		Order("published_at desc").
		Limit(limit).
		Offset(offset).
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

// GetPostsByAuthor 作者视角，status 为空时不过滤
func (s *PostRepoImpl) GetPostsByAuthor(ctx context.Context, authorID uint64, status string, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	query := s.db.WithContext(ctx).Where("author_id = ?", authorID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	result := query.
		Order("created_at desc").
		Limit(limit).
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

func (s *PostRepoImpl) GetPublishedPostsSince(ctx context.Context, since time.Time) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	result := s.db.WithContext(ctx).
		Preload("Author").
		Where("status = ? AND published_at > ?", model.PostStatusPublished, since).
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

func (s *PostRepoImpl) GetPublishedPostIDsByAuthor(ctx context.Context, authorID uint64) ([]uint64, error) {
	var postIDs []uint64
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("author_id = ? AND status = ?", authorID, model.PostStatusPublished).
		Pluck("id", &postIDs).Error
	return postIDs, err
}

// IncrementViewCount 只有已发布的文章才累计阅读量，返回受影响行数
func (s *PostRepoImpl) IncrementViewCount(ctx context.Context, postID uint64) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND status = ?", postID, model.PostStatusPublished).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	return result.RowsAffected, result.Error
}

func (s *PostRepoImpl) IncrementLikeCount(ctx context.Context, postID uint64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", postID).
		UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
}

// DecrementLikeCount 计数到 0 后不再递减
func (s *PostRepoImpl) DecrementLikeCount(ctx context.Context, postID uint64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", postID).
		UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).Error
}

func (s *PostRepoImpl) UpdateLikeCount(ctx context.Context, postID uint64, count int64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", postID).
		UpdateColumn("like_count", count).Error
}

func (s *PostRepoImpl) CountPublishedByAuthor(ctx context.Context, authorID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("author_id = ? AND status = ?", authorID, model.PostStatusPublished).
		Count(&count).Error
	return count, err
}

func (s *PostRepoImpl) SumViewCountByAuthor(ctx context.Context, authorID uint64) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("author_id = ? AND status = ?", authorID, model.PostStatusPublished).
		Select("COALESCE(SUM(view_count), 0)").
		Scan(&total).Error
	return total, err
}

func (s *PostRepoImpl) SumLikeCountByAuthor(ctx context.Context, authorID uint64) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("author_id = ? AND status = ?", authorID, model.PostStatusPublished).
		Select("COALESCE(SUM(like_count), 0)").
		Scan(&total).Error
	return total, err
}
