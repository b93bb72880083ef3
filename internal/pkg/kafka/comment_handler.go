package kafka

import (
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

type CommentsHandler struct {
}

func NewCommentsHandler() *CommentsHandler {
	return &CommentsHandler{}
}

func (s *CommentsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("post comment consumer setup")
	return nil
}

func (s *CommentsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("post comment consumer cleanup")
	return nil
}

func (s *CommentsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-comment consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-comment process batch error", "err", err)
		return err
	}
	return nil
}

func (s *CommentsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "comments")
	if err != nil {
		return err
	}

	switch canalMsg.Type {
	case INSERT:
		return s.handleInsert(ctx, canalMsg)
	case DELETE:
		return s.handleDelete(ctx, canalMsg)
	case UPDATE:
		return s.handleUpdate(ctx, canalMsg)
	default:
		return nil
	}
}

// handleInsert 新增评论：只统计已通过的
func (s *CommentsHandler) handleInsert(ctx context.Context, msg *CanalMessage) error {
	row := msg.Data[0]
	if row["status"] != model.CommentStatusApproved {
		return nil
	}

	ExecAction(ctx, ActionParams{
		TargetID:       StrToUint64(row["post_id"]),
		CountKeyPrefix: consts.PostCommentKey,
		IsIncrement:    true,
	})
	return nil
}

// handleDelete 删除评论
func (s *CommentsHandler) handleDelete(ctx context.Context, msg *CanalMessage) error {
	row := msg.Data[0]
	if row["status"] != model.CommentStatusApproved {
		return nil
	}

	ExecAction(ctx, ActionParams{
		TargetID:       StrToUint64(row["post_id"]),
		CountKeyPrefix: consts.PostCommentKey,
		IsIncrement:    false,
	})
	return nil
}

// handleUpdate 审核状态变化时修正计数
func (s *CommentsHandler) handleUpdate(ctx context.Context, msg *CanalMessage) error {
	if len(msg.Old) == 0 {
		return nil
	}

	row := msg.Data[0]
	oldRow := msg.Old[0]

	oldStatus, changed := oldRow["status"]
	if !changed {
		return nil
	}

	newApproved := row["status"] == model.CommentStatusApproved
	oldApproved := oldStatus == model.CommentStatusApproved
	if newApproved == oldApproved {
		return nil
	}

	ExecAction(ctx, ActionParams{
		TargetID:       StrToUint64(row["post_id"]),
		CountKeyPrefix: consts.PostCommentKey,
		IsIncrement:    newApproved,
	})
	return nil
}
