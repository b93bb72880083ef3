package kafka

import (
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/es"
	"Inkstone/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

const canalTimeLayout = "2006-01-02 15:04:05"

type PostsHandler struct {
	userRepo   repository.UserRepo
	postESRepo es.PostRepo
}

func NewPostsHandler(userRepo repository.UserRepo, postESRepo es.PostRepo) *PostsHandler {
	return &PostsHandler{
		userRepo:   userRepo,
		postESRepo: postESRepo,
	}
}

func (s *PostsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer setup")
	return nil
}

func (s *PostsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post consumer cleanup")
	return nil
}

func (s *PostsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-post consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-post process batch error", "err", err)
		return err
	}
	return nil
}

func (s *PostsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "posts")
	if err != nil {
		return err
	}

	switch canalMsg.Type {
	case INSERT, UPDATE:
		return s.handleUpsert(ctx, canalMsg)
	case DELETE:
		return s.handleDelete(ctx, canalMsg)
	default:
		return nil
	}
}

// handleUpsert 已发布的文章写入索引，转回草稿则移除
func (s *PostsHandler) handleUpsert(ctx context.Context, msg *CanalMessage) error {
	for _, row := range msg.Data {
		postID := StrToUint64(row["id"])

		if row["status"] != model.PostStatusPublished {
			if err := s.postESRepo.DeletePost(ctx, postID); err != nil {
				return err
			}
			continue
		}

		doc, err := s.buildPostES(ctx, row)
		if err != nil {
			return err
		}

		// 用 binlog 时间戳做外部版本号，乱序消息不会回退文档
		if err = s.postESRepo.IndexPost(ctx, doc, msg.ES); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostsHandler) handleDelete(ctx context.Context, msg *CanalMessage) error {
	for _, row := range msg.Data {
		if err := s.postESRepo.DeletePost(ctx, StrToUint64(row["id"])); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostsHandler) buildPostES(ctx context.Context, row map[string]interface{}) (*es.PostES, error) {
	authorID := StrToUint64(row["author_id"])

	doc := &es.PostES{
		ID:        StrToUint64(row["id"]),
		AuthorID:  authorID,
		Status:    strVal(row["status"]),
		Title:     strVal(row["title"]),
		Content:   strVal(row["content"]),
		LikeCount: int(StrToUint64(row["like_count"])),
		ViewCount: int(StrToUint64(row["view_count"])),
	}

	if tagsRaw := strVal(row["tags"]); tagsRaw != "" {
		var tags []string
		if err := json.Unmarshal([]byte(tagsRaw), &tags); err == nil {
			doc.Tags = tags
		}
	}
	if category := strVal(row["category"]); category != "" {
		doc.Category = &category
	}

	doc.PublishedAt = timeVal(row["published_at"])
	if createdAt := timeVal(row["created_at"]); createdAt != nil {
		doc.CreatedAt = *createdAt
	}
	if updatedAt := timeVal(row["updated_at"]); updatedAt != nil {
		doc.UpdatedAt = *updatedAt
	}

	author, err := s.userRepo.GetUserById(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author != nil {
		doc.AuthorName = author.Name
		doc.AuthorUsername = author.Username
		doc.AuthorAvatar = author.ImageURL
		if doc.AuthorAvatar == "" {
			doc.AuthorAvatar = consts.DefaultAvatarURL
		}
	}

	return doc, nil
}

func strVal(v interface{}) string {
	s, _ := v.(string)
	return s
}

func timeVal(v interface{}) *time.Time {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	t, err := time.Parse(canalTimeLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
