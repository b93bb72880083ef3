package model

import "time"

type Follow struct {
	FollowerID  uint64    `gorm:"primaryKey" json:"followerId"`
	FollowingID uint64    `gorm:"primaryKey;index:idx_follows_following" json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`

	Follower User `gorm:"foreignKey:FollowerID;references:ID" json:"-"`
}

func (Follow) TableName() string {
	return "follows"
}
