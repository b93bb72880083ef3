package repository

import (
	"Inkstone/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyStatRepo interface {
	IncrementViews(ctx context.Context, postID uint64, statDate string) error
	SumViewsOnPostsSince(ctx context.Context, postIDs []uint64, fromDate string) (int64, error)
}

type DailyStatRepoImpl struct {
	db *gorm.DB
}

func NewDailyStatRepo(db *gorm.DB) DailyStatRepo {
	return &DailyStatRepoImpl{db: db}
}

// IncrementViews 同一天的记录只累加，不重复建行
func (s *DailyStatRepoImpl) IncrementViews(ctx context.Context, postID uint64, statDate string) error {
	stat := &model.DailyStat{
		PostID:   postID,
		StatDate: statDate,
		Views:    1,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}, {Name: "stat_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"views": gorm.Expr("views + 1"),
		}),
	}).Create(stat).Error
}

func (s *DailyStatRepoImpl) SumViewsOnPostsSince(ctx context.Context, postIDs []uint64, fromDate string) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}
	var total int64
	err := s.db.WithContext(ctx).Model(&model.DailyStat{}).
		Where("post_id IN ? AND stat_date >= ?", postIDs, fromDate).
		Select("COALESCE(SUM(views), 0)").
		Scan(&total).Error
	return total, err
}
