package kafka

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/es"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

type UsersHandler struct {
	postESRepo es.PostRepo
}

func NewUsersHandler(postESRepo es.PostRepo) *UsersHandler {
	return &UsersHandler{
		postESRepo: postESRepo,
	}
}

func (s *UsersHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("user consumer setup")
	return nil
}

func (s *UsersHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("user consumer cleanup")
	return nil
}

func (s *UsersHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-user consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-user process batch error", "err", err)
		return err
	}
	return nil
}

func (s *UsersHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "users")
	if err != nil {
		return err
	}

	// 只有资料变更需要刷新文章文档的作者快照
	if canalMsg.Type != UPDATE {
		return nil
	}

	for i, row := range canalMsg.Data {
		if !authorSnapshotChanged(canalMsg, i) {
			continue
		}

		userID := StrToUint64(row["id"])
		name := strVal(row["name"])
		avatar := strVal(row["image_url"])
		if avatar == "" {
			avatar = consts.DefaultAvatarURL
		}

		if err = s.postESRepo.UpdateAuthorDetail(ctx, userID, name, avatar); err != nil {
			return err
		}
		log.InfoContext(ctx, "author detail synced to post index", "userID", userID)
	}
	return nil
}

// authorSnapshotChanged Canal 的 Old 只携带发生变化的列
func authorSnapshotChanged(msg *CanalMessage, i int) bool {
	if i >= len(msg.Old) {
		return false
	}
	old := msg.Old[i]
	_, nameChanged := old["name"]
	_, avatarChanged := old["image_url"]
	return nameChanged || avatarChanged
}
