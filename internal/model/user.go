package model

import (
	"time"
)

type User struct {
	ID              uint64    `gorm:"primaryKey"`
	TokenIdentifier string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_token" json:"-"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	Email           string    `gorm:"type:varchar(255);not null;index:idx_users_email" json:"email"`
	ImageURL        string    `gorm:"type:varchar(512)" json:"imageUrl"`
	Username        *string   `gorm:"type:varchar(20);uniqueIndex:idx_users_username" json:"username"`
	Bio             *string   `gorm:"type:varchar(300)" json:"bio"`
	State           *string   `gorm:"type:varchar(100)" json:"state"`
	Country         *string   `gorm:"type:varchar(100)" json:"country"`
	CreatedAt       time.Time `json:"createdAt"`
	LastActiveAt    time.Time `json:"lastActiveAt"`
}

func (User) TableName() string {
	return "users"
}
