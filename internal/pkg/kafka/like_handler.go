package kafka

import (
	"Inkstone/internal/pkg/consts"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

type LikesHandler struct {
}

func NewLikesHandler() *LikesHandler {
	return &LikesHandler{}
}

func (s *LikesHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post like consumer setup")
	return nil
}

func (s *LikesHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post like consumer cleanup")
	return nil
}

func (s *LikesHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-like consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-like process batch error", "err", err)
		return err
	}
	return nil
}

func (s *LikesHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	// 1. 解析 Canal 消息
	canalMsg, err := ToCanalMessage(msg, "likes")
	if err != nil {
		return err
	}

	// 2. 点赞是物理增删，只处理 INSERT / DELETE
	switch canalMsg.Type {
	case INSERT:
		return s.handleInsert(ctx, canalMsg)
	case DELETE:
		return s.handleDelete(ctx, canalMsg)
	default:
		return nil
	}
}

// handleInsert 处理新增点赞：INCR + DIRTY
func (s *LikesHandler) handleInsert(ctx context.Context, msg *CanalMessage) error {
	if len(msg.Data) == 0 {
		return nil
	}
	row := msg.Data[0]
	userID, postID := StrToUint64(row["user_id"]), StrToUint64(row["post_id"])

	ExecAction(ctx, ActionParams{
		TargetID:       postID,
		CountKeyPrefix: consts.PostLikeKey,
		DirtyKey:       consts.PostDirtyKey,
		IsIncrement:    true,
	})

	log.InfoContext(ctx, "post like inserted", "userID", userID, "postID", postID)
	return nil
}

// handleDelete 处理取消点赞：DECR + DIRTY
func (s *LikesHandler) handleDelete(ctx context.Context, msg *CanalMessage) error {
	if len(msg.Data) == 0 {
		return nil
	}
	postID := StrToUint64(msg.Data[0]["post_id"])

	ExecAction(ctx, ActionParams{
		TargetID:       postID,
		CountKeyPrefix: consts.PostLikeKey,
		DirtyKey:       consts.PostDirtyKey,
		IsIncrement:    false,
	})

	log.InfoContext(ctx, "post unlike processed", "postID", postID)
	return nil
}
