package job

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/logger"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// CounterReconcileJob 用点赞明细表重算文章的冗余计数
type CounterReconcileJob struct {
	actionSvc service.PostActionService
}

func NewCounterReconcileJob(actionSvc service.PostActionService) *CounterReconcileJob {
	return &CounterReconcileJob{
		actionSvc: actionSvc,
	}
}

func (s *CounterReconcileJob) Run() {
	traceID := "job-counter-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	lockValue := uuid.NewString()
	locked, err := redis.TryLock(ctx, consts.CounterReconcileLock, lockValue, 4*time.Minute, 0)
	if err != nil || !locked {
		return
	}
	defer redis.UnLock(ctx, consts.CounterReconcileLock, lockValue)

	processingKey := consts.PostDirtyKey + ":processing"
	err = redis.Rename(ctx, consts.PostDirtyKey, processingKey)
	if err != nil {
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get post dirty set error", "err", err)
		return
	}

	postIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert post set to int slice error", "err", err)
		return
	}

	reconciled := 0
	for _, pid := range postIDs {
		if err = s.actionSvc.ReconcileLikeCount(ctx, pid); err != nil {
			log.ErrorContext(ctx, "reconcile like count error", "pid", pid, "err", err)
			continue
		}
		reconciled++
	}

	err = redis.DeleteKey(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "delete post processing set error", "err", err)
	}

	log.InfoContext(ctx, "reconcile post counters success",
		"dirty_count", len(postIDs),
		"reconciled", reconciled)
}
