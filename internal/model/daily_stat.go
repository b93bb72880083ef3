package model

import (
	"time"
)

// DailyStat 按 (帖子, UTC 日期) 分片的浏览量日志
type DailyStat struct {
	ID        uint64    `gorm:"primaryKey"`
	PostID    uint64    `gorm:"not null;index:idx_daily_stats_post_date,unique" json:"postId"`
	StatDate  string    `gorm:"type:varchar(10);not null;index:idx_daily_stats_post_date,unique;column:stat_date" json:"statDate"`
	Views     int       `gorm:"not null;default:0" json:"views"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (DailyStat) TableName() string {
	return "daily_stats"
}
