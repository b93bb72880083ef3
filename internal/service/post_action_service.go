package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/repository"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/copier"
)

type PostActionService interface {
	ToggleLike(ctx context.Context, userID, postID uint64) (*dto.ToggleLikeDTO, error)
	HasUserLiked(ctx context.Context, userID, postID uint64) (bool, error)
	GetPostLikeCount(ctx context.Context, postID uint64) (int64, error)
	RecordView(ctx context.Context, postID uint64) error

	AddComment(ctx context.Context, userID, postID uint64, content string) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, userID, commentID uint64) error
	GetPostComments(ctx context.Context, postID uint64, limit, offset int) ([]*dto.CommentDTO, error)
	GetPostCommentCount(ctx context.Context, postID uint64) (int64, error)

	ReconcileLikeCount(ctx context.Context, postID uint64) error
}

type postActionServiceImpl struct {
	actionRepo    repository.PostActionRepo
	postRepo      repository.PostRepo
	userRepo      repository.UserRepo
	dailyStatRepo repository.DailyStatRepo
	now           func() time.Time
}

func NewPostActionService(
	actionRepo repository.PostActionRepo,
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
	dailyStatRepo repository.DailyStatRepo,
) PostActionService {
	return &postActionServiceImpl{
		actionRepo:    actionRepo,
		postRepo:      postRepo,
		userRepo:      userRepo,
		dailyStatRepo: dailyStatRepo,
		now:           time.Now,
	}
}

// ToggleLike 点赞开关，冗余计数同步更新且不会减到负数
func (s *postActionServiceImpl) ToggleLike(ctx context.Context, userID, postID uint64) (*dto.ToggleLikeDTO, error) {
	post, err := s.postRepo.GetPostById(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.Status != model.PostStatusPublished {
		return nil, ErrPostNotPublished
	}

	liked := false
	exists, err := s.actionRepo.CheckLikeExists(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if exists {
		rows, err := s.actionRepo.DeleteLike(ctx, userID, postID)
		if err != nil {
			return nil, err
		}
		if rows > 0 {
			if err = s.postRepo.DecrementLikeCount(ctx, postID); err != nil {
				return nil, err
			}
		}
	} else {
		like := &model.Like{
			UserID:    userID,
			PostID:    postID,
			CreatedAt: s.now(),
		}
		if err = s.actionRepo.CreateLike(ctx, like); err != nil {
			if !isDuplicateError(err) {
				return nil, err
			}
		} else {
			if err = s.postRepo.IncrementLikeCount(ctx, postID); err != nil {
				return nil, err
			}
		}
		liked = true
	}

	updated, err := s.postRepo.GetPostById(ctx, postID)
	if err != nil {
		return nil, err
	}
	likeCount := int64(0)
	if updated != nil {
		likeCount = int64(updated.LikeCount)
	}

	return &dto.ToggleLikeDTO{
		Liked:     liked,
		LikeCount: likeCount,
	}, nil
}

func (s *postActionServiceImpl) HasUserLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	return s.actionRepo.CheckLikeExists(ctx, userID, postID)
}

// GetPostLikeCount 先查缓存，未命中回源明细表
func (s *postActionServiceImpl) GetPostLikeCount(ctx context.Context, postID uint64) (int64, error) {
	key := consts.PostLikeKey + strconv.FormatUint(postID, 10)
	if count, err := redis.GetInt64(ctx, key); err == nil {
		return count, nil
	}

	count, err := s.actionRepo.GetLikeCountByPostID(ctx, postID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, count, time.Hour*1)
	return count, nil
}

// RecordView 未发布或不存在的文章静默忽略，日统计按 UTC 分桶
func (s *postActionServiceImpl) RecordView(ctx context.Context, postID uint64) error {
	rows, err := s.postRepo.IncrementViewCount(ctx, postID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return nil
	}

	return s.dailyStatRepo.IncrementViews(ctx, postID, util.DayKeyUTC(s.now()))
}

// AddComment 评论即发即审，登录用户的名字作为快照保存
func (s *postActionServiceImpl) AddComment(ctx context.Context, userID, postID uint64, content string) (*dto.CommentDTO, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrCommentEmpty
	}
	if len([]rune(content)) > consts.MaxCommentChars {
		return nil, ErrCommentTooLong
	}

	post, err := s.postRepo.GetPostById(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.Status != model.PostStatusPublished {
		return nil, ErrPostNotPublished
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	comment := &model.Comment{
		PostID:      postID,
		AuthorID:    &userID,
		AuthorName:  user.Name,
		AuthorEmail: &user.Email,
		Content:     content,
		Status:      model.CommentStatusApproved,
		CreatedAt:   s.now(),
	}

	if err = s.actionRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	return toCommentDTO(comment), nil
}

// DeleteComment 评论作者和文章作者都可以删除
func (s *postActionServiceImpl) DeleteComment(ctx context.Context, userID, commentID uint64) error {
	comment, err := s.actionRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}

	allowed := comment.AuthorID != nil && *comment.AuthorID == userID
	if !allowed {
		post, err := s.postRepo.GetPostById(ctx, comment.PostID)
		if err != nil {
			return err
		}
		allowed = post != nil && post.AuthorID == userID
	}
	if !allowed {
		return ErrCommentNoPermission
	}

	return s.actionRepo.DeleteComment(ctx, commentID)
}

func (s *postActionServiceImpl) GetPostComments(ctx context.Context, postID uint64, limit, offset int) ([]*dto.CommentDTO, error) {
	comments, err := s.actionRepo.GetApprovedCommentsByPostID(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		items = append(items, toCommentDTO(comment))
	}
	return items, nil
}

func (s *postActionServiceImpl) GetPostCommentCount(ctx context.Context, postID uint64) (int64, error) {
	key := consts.PostCommentKey + strconv.FormatUint(postID, 10)
	if count, err := redis.GetInt64(ctx, key); err == nil {
		return count, nil
	}

	count, err := s.actionRepo.CountApprovedByPostID(ctx, postID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, count, time.Hour*1)
	return count, nil
}

// ReconcileLikeCount 用明细表重算冗余计数并刷新缓存
func (s *postActionServiceImpl) ReconcileLikeCount(ctx context.Context, postID uint64) error {
	count, err := s.actionRepo.GetLikeCountByPostID(ctx, postID)
	if err != nil {
		return err
	}

	if err = s.postRepo.UpdateLikeCount(ctx, postID, count); err != nil {
		return err
	}

	key := consts.PostLikeKey + strconv.FormatUint(postID, 10)
	_ = redis.SetWithExpiration(ctx, key, count, time.Hour*1)
	return nil
}

func toCommentDTO(comment *model.Comment) *dto.CommentDTO {
	item := &dto.CommentDTO{}
	_ = copier.Copy(item, comment)
	return item
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
