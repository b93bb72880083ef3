package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/repository"
	"context"
	"sort"
	"time"
)

const (
	growthWindowDays   = 30
	recentActivityTail = 5
)

type AnalyticsService interface {
	GetAnalytics(ctx context.Context, userID uint64) (*dto.AnalyticsDTO, error)
	RecentActivity(ctx context.Context, userID uint64, limit int) ([]*dto.ActivityEntryDTO, error)
	GetPostsWithAnalytics(ctx context.Context, userID uint64, limit int) ([]*dto.PostWithStatsDTO, error)
}

type analyticsServiceImpl struct {
	postRepo      repository.PostRepo
	actionRepo    repository.PostActionRepo
	followRepo    repository.FollowRepo
	dailyStatRepo repository.DailyStatRepo
	now           func() time.Time
}

func NewAnalyticsService(
	postRepo repository.PostRepo,
	actionRepo repository.PostActionRepo,
	followRepo repository.FollowRepo,
	dailyStatRepo repository.DailyStatRepo,
) AnalyticsService {
	return &analyticsServiceImpl{
		postRepo:      postRepo,
		actionRepo:    actionRepo,
		followRepo:    followRepo,
		dailyStatRepo: dailyStatRepo,
		now:           time.Now,
	}
}

// GetAnalytics 仪表盘总览：累计值加上近30天的变化幅度
func (s *analyticsServiceImpl) GetAnalytics(ctx context.Context, userID uint64) (*dto.AnalyticsDTO, error) {
	totalPosts, err := s.postRepo.CountPublishedByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalViews, err := s.postRepo.SumViewCountByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	totalLikes, err := s.postRepo.SumLikeCountByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	postIDs, err := s.postRepo.GetPublishedPostIDsByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalComments, err := s.actionRepo.CountApprovedOnPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	followers, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	windowStart := now.AddDate(0, 0, -growthWindowDays)
	prevWindowStart := now.AddDate(0, 0, -2*growthWindowDays)

	// 阅读与点赞的增幅是近30天在累计值中的占比
	recentViews, err := s.dailyStatRepo.SumViewsOnPostsSince(ctx, postIDs, util.DayKeyUTC(windowStart))
	if err != nil {
		return nil, err
	}
	recentLikes, err := s.actionRepo.CountLikesOnPostsSince(ctx, postIDs, windowStart, now)
	if err != nil {
		return nil, err
	}

	// 评论与粉丝的增幅是近30天相对上一个30天的环比
	recentComments, err := s.actionRepo.CountApprovedOnPostsSince(ctx, postIDs, windowStart, now)
	if err != nil {
		return nil, err
	}
	prevComments, err := s.actionRepo.CountApprovedOnPostsSince(ctx, postIDs, prevWindowStart, windowStart)
	if err != nil {
		return nil, err
	}
	recentFollowers, err := s.followRepo.CountFollowersSince(ctx, userID, windowStart, now)
	if err != nil {
		return nil, err
	}
	prevFollowers, err := s.followRepo.CountFollowersSince(ctx, userID, prevWindowStart, windowStart)
	if err != nil {
		return nil, err
	}

	return &dto.AnalyticsDTO{
		TotalPosts:      totalPosts,
		TotalViews:      totalViews,
		TotalLikes:      totalLikes,
		TotalComments:   totalComments,
		Followers:       followers,
		ViewsGrowth:     shareOfTotal(recentViews, totalViews),
		LikesGrowth:     shareOfTotal(recentLikes, totalLikes),
		CommentsGrowth:  periodGrowth(recentComments, prevComments),
		FollowersGrowth: periodGrowth(recentFollowers, prevFollowers),
	}, nil
}

// RecentActivity 汇总每篇已发布文章的最新点赞和评论，加上最新的粉丝
func (s *analyticsServiceImpl) RecentActivity(ctx context.Context, userID uint64, limit int) ([]*dto.ActivityEntryDTO, error) {
	if limit <= 0 {
		limit = 10
	}

	postIDs, err := s.postRepo.GetPublishedPostIDsByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.GetPostByIds(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]*dto.ActivityEntryDTO, 0)

	for _, post := range posts {
		postRef := &dto.PostRefDTO{ID: post.ID, Title: post.Title}

		likes, err := s.actionRepo.GetRecentLikes(ctx, post.ID, recentActivityTail)
		if err != nil {
			return nil, err
		}
		for _, like := range likes {
			entries = append(entries, &dto.ActivityEntryDTO{
				Type: "like",
				User: toAuthorDTO(&like.User),
				Post: postRef,
				Time: like.CreatedAt,
			})
		}

		comments, err := s.actionRepo.GetRecentComments(ctx, post.ID, recentActivityTail)
		if err != nil {
			return nil, err
		}
		for _, comment := range comments {
			user := toAuthorDTO(comment.Author)
			if user == nil {
				user = &dto.AuthorDTO{Name: comment.AuthorName}
			}
			entries = append(entries, &dto.ActivityEntryDTO{
				Type: "comment",
				User: user,
				Post: postRef,
				Time: comment.CreatedAt,
			})
		}
	}

	follows, err := s.followRepo.GetRecentFollowers(ctx, userID, recentActivityTail)
	if err != nil {
		return nil, err
	}
	for _, follow := range follows {
		entries = append(entries, &dto.ActivityEntryDTO{
			Type: "follow",
			User: toAuthorDTO(&follow.Follower),
			Time: follow.CreatedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Time.After(entries[j].Time)
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// GetPostsWithAnalytics 最近的文章列表，不分状态，附带评论数
func (s *analyticsServiceImpl) GetPostsWithAnalytics(ctx context.Context, userID uint64, limit int) ([]*dto.PostWithStatsDTO, error) {
	if limit <= 0 {
		limit = 5
	}

	posts, err := s.postRepo.GetPostsByAuthor(ctx, userID, "", limit)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PostWithStatsDTO, 0, len(posts))
	for _, post := range posts {
		commentCount, err := s.actionRepo.CountApprovedByPostID(ctx, post.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, &dto.PostWithStatsDTO{
			PostDTO:      *toPostDTO(post),
			CommentCount: commentCount,
		})
	}
	return items, nil
}

func shareOfTotal(recent, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(recent) / float64(total) * 100
}

func periodGrowth(recent, previous int64) float64 {
	base := previous
	if base <= 0 {
		base = 1
	}
	return float64(recent-previous) / float64(base) * 100
}
