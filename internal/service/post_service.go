package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/llm"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

type PostService interface {
	CreateOrUpdatePost(ctx context.Context, userID uint64, req *dto.CreatePostDTO) (uint64, error)
	UpdatePost(ctx context.Context, userID, postID uint64, req *dto.UpdatePostDTO) error
	DeletePost(ctx context.Context, userID, postID uint64) error
	GetDraftPost(ctx context.Context, userID uint64) (*dto.PostDTO, error)
	GetMyPost(ctx context.Context, userID, postID uint64) (*dto.PostDTO, error)
	GetMyPosts(ctx context.Context, userID uint64, status string, limit int) ([]*dto.PostDTO, error)
	GenerateDraft(ctx context.Context, topic string) (string, error)
}

type postServiceImpl struct {
	postRepo repository.PostRepo
	now      func() time.Time
}

func NewPostService(postRepo repository.PostRepo) PostService {
	return &postServiceImpl{
		postRepo: postRepo,
		now:      time.Now,
	}
}

// CreateOrUpdatePost 每位作者只保留一个草稿位：有草稿则覆盖，发布时原地转正
func (s *postServiceImpl) CreateOrUpdatePost(ctx context.Context, userID uint64, req *dto.CreatePostDTO) (uint64, error) {
	if len(req.Tags) > consts.MaxPostTags {
		return 0, ErrTagsTooMany
	}

	draft, err := s.postRepo.GetDraftByAuthor(ctx, userID)
	if err != nil {
		return 0, err
	}

	if draft != nil {
		updates := map[string]interface{}{
			"title":          req.Title,
			"content":        req.Content,
			"status":         req.Status,
			"tags":           model.TagsValue(req.Tags),
			"category":       req.Category,
			"featured_image": req.FeaturedImage,
			"scheduled_for":  req.ScheduledFor,
			"updated_at":     s.now(),
		}
		if req.Status == model.PostStatusPublished {
			updates["published_at"] = s.now()
		}
		if err = s.postRepo.UpdatePost(ctx, draft.ID, updates); err != nil {
			return 0, err
		}
		return draft.ID, nil
	}

	post := &model.Post{
		AuthorID:      userID,
		Title:         req.Title,
		Content:       req.Content,
		Status:        req.Status,
		Tags:          req.Tags,
		Category:      req.Category,
		FeaturedImage: req.FeaturedImage,
		ScheduledFor:  req.ScheduledFor,
		CreatedAt:     s.now(),
		UpdatedAt:     s.now(),
	}
	if req.Status == model.PostStatusPublished {
		now := s.now()
		post.PublishedAt = &now
	}

	if err = s.postRepo.CreatePost(ctx, post); err != nil {
		return 0, err
	}
	return post.ID, nil
}

// UpdatePost 只有作者能改；publishedAt 仅在草稿转为发布时写入一次
func (s *postServiceImpl) UpdatePost(ctx context.Context, userID, postID uint64, req *dto.UpdatePostDTO) error {
	post, err := s.postRepo.GetPostById(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.AuthorID != userID {
		return ErrNotPostAuthor
	}

	updates := map[string]interface{}{
		"updated_at": s.now(),
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Tags != nil {
		if len(*req.Tags) > consts.MaxPostTags {
			return ErrTagsTooMany
		}
		updates["tags"] = model.TagsValue(*req.Tags)
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.FeaturedImage != nil {
		updates["featured_image"] = *req.FeaturedImage
	}
	if req.ScheduledFor != nil {
		updates["scheduled_for"] = *req.ScheduledFor
	}
	if req.Status != nil {
		updates["status"] = *req.Status
		if *req.Status == model.PostStatusPublished && post.Status != model.PostStatusPublished {
			updates["published_at"] = s.now()
		}
	}

	return s.postRepo.UpdatePost(ctx, postID, updates)
}

// DeletePost 作者删除文章，点赞评论和日统计一并清理
func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.postRepo.GetPostById(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.AuthorID != userID {
		return ErrNotPostAuthor
	}

	if err = s.postRepo.DeletePostCascade(ctx, postID); err != nil {
		return err
	}

	// 题图清理尽力而为，失败不影响删除结果
	if post.FeaturedImage != nil {
		if objectName := minio.ObjectNameFromURL(*post.FeaturedImage); objectName != "" {
			if delErr := minio.DeleteFile(ctx, objectName); delErr != nil {
				log.WarnContext(ctx, "delete featured image failed", "postID", postID, "err", delErr)
			}
		}
	}

	return nil
}

func (s *postServiceImpl) GetDraftPost(ctx context.Context, userID uint64) (*dto.PostDTO, error) {
	draft, err := s.postRepo.GetDraftByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, nil
	}
	return toPostDTO(draft), nil
}

func (s *postServiceImpl) GetMyPost(ctx context.Context, userID, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPostById(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != userID {
		return nil, ErrNotPostAuthor
	}
	return toPostDTO(post), nil
}

func (s *postServiceImpl) GetMyPosts(ctx context.Context, userID uint64, status string, limit int) ([]*dto.PostDTO, error) {
	posts, err := s.postRepo.GetPostsByAuthor(ctx, userID, status, limit)
	if err != nil {
		return nil, err
	}
	return batchToPostDTO(posts), nil
}

func (s *postServiceImpl) GenerateDraft(ctx context.Context, topic string) (string, error) {
	return llm.GenerateDraftBody(ctx, topic)
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	item := &dto.PostDTO{}
	_ = copier.Copy(item, post)
	item.Author = toAuthorDTO(&post.Author)
	if item.Tags == nil {
		item.Tags = make([]string, 0)
	}
	return item
}

func batchToPostDTO(posts []*model.Post) []*dto.PostDTO {
	items := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		items = append(items, toPostDTO(post))
	}
	return items
}

// getWaterfallPosts 多取一条判断是否还有下一页
func getWaterfallPosts[T any](
	pageSize int,
	fetchFunc func() ([]T, error),
	convertFunc func([]T) ([]*dto.PostDTO, error),
) (*dto.PostWaterfallDTO, error) {
	rawData, err := fetchFunc()
	if err != nil {
		return nil, err
	}

	hasMore := false
	if len(rawData) > pageSize {
		hasMore = true
		rawData = rawData[:pageSize]
	}

	dtoItems, err := convertFunc(rawData)
	if err != nil {
		return nil, err
	}

	return &dto.PostWaterfallDTO{
		List:    dtoItems,
		HasMore: hasMore,
	}, nil
}
