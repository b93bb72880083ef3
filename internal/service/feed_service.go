package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/repository"
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

const (
	MaxOffsetLimit   = 400
	trendingCacheTTL = 5 * time.Minute
)

type FeedService interface {
	GetFeed(ctx context.Context, limit, offset int) (*dto.PostWaterfallDTO, error)
	GetSuggestedUsers(ctx context.Context, viewerID uint64, limit int) ([]*dto.SuggestedUserDTO, error)
	GetTrendingPosts(ctx context.Context, limit int) ([]*dto.PostDTO, error)
	GetPublishedPostsByUser(ctx context.Context, username string, limit, offset int) (*dto.PostWaterfallDTO, error)
	GetPublishedPost(ctx context.Context, username string, postID uint64, viewerID uint64) (*dto.PostDTO, error)
	SearchPosts(ctx context.Context, keyword string, page, pageSize int) (*dto.PostWaterfallDTO, error)
}

type feedServiceImpl struct {
	postRepo   repository.PostRepo
	userRepo   repository.UserRepo
	followRepo repository.FollowRepo
	postESRepo es.PostRepo
	now        func() time.Time
}

func NewFeedService(
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
	followRepo repository.FollowRepo,
	postESRepo es.PostRepo,
) FeedService {
	return &feedServiceImpl{
		postRepo:   postRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		postESRepo: postESRepo,
		now:        time.Now,
	}
}

// GetFeed 全站时间线，按发布时间倒序
func (s *feedServiceImpl) GetFeed(ctx context.Context, limit, offset int) (*dto.PostWaterfallDTO, error) {
	if offset >= MaxOffsetLimit {
		return &dto.PostWaterfallDTO{
			List:    []*dto.PostDTO{},
			HasMore: false,
		}, nil
	}

	return getWaterfallPosts(limit,
		func() ([]*model.Post, error) {
			return s.postRepo.GetPublishedPosts(ctx, limit+1, offset)
		},
		s.batchToFeedDTO,
	)
}

// GetSuggestedUsers 排除自己和已关注的人，按注册顺序推荐
func (s *feedServiceImpl) GetSuggestedUsers(ctx context.Context, viewerID uint64, limit int) ([]*dto.SuggestedUserDTO, error) {
	excludeIDs := make([]uint64, 0)
	if viewerID != 0 {
		followingIDs, err := s.followRepo.GetFollowingIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		excludeIDs = append(followingIDs, viewerID)
	}

	users, err := s.userRepo.GetSuggestedUsers(ctx, excludeIDs, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.SuggestedUserDTO, 0, len(users))
	for _, u := range users {
		items = append(items, &dto.SuggestedUserDTO{
			ID:       u.ID,
			Name:     u.Name,
			Username: u.Username,
			Bio:      u.Bio,
			ImageURL: u.ImageURL,
		})
	}
	return items, nil
}

// GetTrendingPosts 近7天文章按 热度 = 阅读数 + 3*点赞数 排序，并列时新文章优先
func (s *feedServiceImpl) GetTrendingPosts(ctx context.Context, limit int) ([]*dto.PostDTO, error) {
	cacheKey := consts.FeedTrendingKey + strconv.Itoa(limit)
	if cached, err := redis.GetValue(ctx, cacheKey); err == nil && cached != "" {
		items := make([]*dto.PostDTO, 0)
		if err = json.Unmarshal([]byte(cached), &items); err == nil {
			return items, nil
		}
	}

	since := s.now().AddDate(0, 0, -consts.TrendingWindowDays)
	posts, err := s.postRepo.GetPublishedPostsSince(ctx, since)
	if err != nil {
		return nil, err
	}

	score := func(p *model.Post) int {
		return p.ViewCount + 3*p.LikeCount
	}
	sort.Slice(posts, func(i, j int) bool {
		si, sj := score(posts[i]), score(posts[j])
		if si != sj {
			return si > sj
		}
		return posts[i].ID > posts[j].ID
	})

	if len(posts) > limit {
		posts = posts[:limit]
	}

	items, err := s.batchToFeedDTO(posts)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(items); err == nil {
		_ = redis.SetWithExpiration(ctx, cacheKey, string(data), trendingCacheTTL)
	}

	return items, nil
}

func (s *feedServiceImpl) GetPublishedPostsByUser(ctx context.Context, username string, limit, offset int) (*dto.PostWaterfallDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return getWaterfallPosts(limit,
		func() ([]*model.Post, error) {
			return s.postRepo.GetPublishedPostsByAuthor(ctx, user.ID, limit+1, offset)
		},
		s.batchToFeedDTO,
	)
}

// GetPublishedPost 公开详情页；作者本人可以预览自己的草稿
func (s *feedServiceImpl) GetPublishedPost(ctx context.Context, username string, postID uint64, viewerID uint64) (*dto.PostDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	post, err := s.postRepo.GetPostById(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.AuthorID != user.ID {
		return nil, ErrPostNotFound
	}

	if post.Status != model.PostStatusPublished && viewerID != post.AuthorID {
		return nil, ErrPostNotFound
	}

	return toPostDTO(post), nil
}

func (s *feedServiceImpl) SearchPosts(ctx context.Context, keyword string, page, pageSize int) (*dto.PostWaterfallDTO, error) {
	if (page-1)*pageSize >= MaxOffsetLimit {
		return &dto.PostWaterfallDTO{
			List:    []*dto.PostDTO{},
			HasMore: false,
		}, nil
	}

	from := (page - 1) * pageSize

	return getWaterfallPosts(pageSize,
		func() ([]*es.PostES, error) {
			return s.postESRepo.SearchPosts(ctx, keyword, from, pageSize+1)
		},
		batchToPostDTOByES,
	)
}

// batchToFeedDTO 作者已不存在的文章不进入公开流
func (s *feedServiceImpl) batchToFeedDTO(posts []*model.Post) ([]*dto.PostDTO, error) {
	items := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		if post.Author.ID == 0 {
			continue
		}
		items = append(items, toPostDTO(post))
	}
	return items, nil
}

func batchToPostDTOByES(docs []*es.PostES) ([]*dto.PostDTO, error) {
	items := make([]*dto.PostDTO, 0, len(docs))
	for _, doc := range docs {
		item := &dto.PostDTO{
			ID:          doc.ID,
			Title:       doc.Title,
			Content:     doc.Content,
			Status:      doc.Status,
			Tags:        doc.Tags,
			Category:    doc.Category,
			ViewCount:   doc.ViewCount,
			LikeCount:   doc.LikeCount,
			CreatedAt:   doc.CreatedAt,
			UpdatedAt:   doc.UpdatedAt,
			PublishedAt: doc.PublishedAt,
			Author: &dto.AuthorDTO{
				ID:       doc.AuthorID,
				Name:     doc.AuthorName,
				Username: doc.AuthorUsername,
				ImageURL: doc.AuthorAvatar,
			},
		}
		if item.Tags == nil {
			item.Tags = make([]string, 0)
		}
		items = append(items, item)
	}
	return items, nil
}
