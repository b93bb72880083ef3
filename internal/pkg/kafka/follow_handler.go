package kafka

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/redis"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	redisv9 "github.com/redis/go-redis/v9"
)

type FollowsHandler struct {
}

func NewFollowsHandler() *FollowsHandler {
	return &FollowsHandler{}
}

func (s *FollowsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("user follows consumer setup")
	return nil
}

func (s *FollowsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("user follows consumer cleanup")
	return nil
}

func (s *FollowsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-follows consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-follows process batch error", "err", err)
		return err
	}
	return nil
}

func (s *FollowsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg, "follows")
	if err != nil || canalMsg == nil {
		return nil
	}

	rdb := redis.GetRdbClient()
	if rdb == nil {
		return nil
	}

	pipe := rdb.Pipeline()

	for _, row := range canalMsg.Data {
		followerID := StrToUint64(row["follower_id"])
		followingID := StrToUint64(row["following_id"])

		fdrKey := consts.UserFollowerKey + strconv.FormatUint(followingID, 10)
		fngKey := consts.UserFollowingKey + strconv.FormatUint(followerID, 10)
		fdrCountKey := consts.UserFollowerCountKey + strconv.FormatUint(followingID, 10)
		fngCountKey := consts.UserFollowingCountKey + strconv.FormatUint(followerID, 10)

		if canalMsg.Type == INSERT {
			now := float64(time.Now().Unix())
			pipe.ZAdd(ctx, fdrKey, redisv9.Z{Score: now, Member: followerID})
			pipe.ZRemRangeByRank(ctx, fdrKey, 0, -1001)
			pipe.ZAdd(ctx, fngKey, redisv9.Z{Score: now, Member: followingID})
			pipe.ZRemRangeByRank(ctx, fngKey, 0, -1001)
			pipe.Incr(ctx, fdrCountKey)
			pipe.Incr(ctx, fngCountKey)
		} else if canalMsg.Type == DELETE {
			pipe.ZRem(ctx, fdrKey, followerID)
			pipe.ZRem(ctx, fngKey, followingID)
			pipe.Decr(ctx, fdrCountKey)
			pipe.Decr(ctx, fngCountKey)
		}
	}

	_, err = pipe.Exec(ctx)
	if err != nil {
		log.Error("Redis Pipeline Exec failed", "err", err, "msg_key", string(msg.Key))
		return err
	}

	return nil
}
