package model

import (
	"time"

	"github.com/lamnt/koctrack-backend/pkg/util"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleStaff UserRole = "staff"
)

type User struct {
	ID           string    `gorm:"primarykey;size:64" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"` // stored lower-cased
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         UserRole  `gorm:"type:varchar(20);default:'admin'" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = util.NewID("user")
	}
	return nil
}
