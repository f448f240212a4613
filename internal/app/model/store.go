package model

import (
	"time"

	"github.com/lamnt/koctrack-backend/pkg/util"
	"gorm.io/gorm"
)

type Store struct {
	ID        string    `gorm:"primarykey;size:64" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Address   string    `gorm:"type:text" json:"address"`
	Image     string    `gorm:"type:text" json:"image"` // inline data URL or uploaded image URL
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Store) TableName() string {
	return "stores"
}

// BeforeCreate assigns a prefixed synthetic id when none was supplied.
// Bulk import keeps the ids it was given.
func (s *Store) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = util.NewID("store")
	}
	return nil
}
