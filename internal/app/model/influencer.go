package model

import (
	"time"

	"github.com/lamnt/koctrack-backend/pkg/util"
	"gorm.io/gorm"
)

// FileKind classifies attachments kept under an influencer profile.
type FileKind string

const (
	FileKindAudit   FileKind = "audit"   // vetting / background notes
	FileKindComment FileKind = "comment" // collaboration feedback
)

type Influencer struct {
	ID            string    `gorm:"primarykey;size:64" json:"id"`
	DisplayName   string    `gorm:"not null" json:"displayName"`
	Handle        string    `gorm:"index" json:"handle"` // "@name" form, e.g. "@nghami.food"
	Avatar        string    `gorm:"type:text" json:"avatar"`
	ContactMethod string    `json:"contactMethod"` // zalo / tiktok / ig / fb ...
	ContactInfo   string    `json:"contactInfo"`
	Notes         string    `gorm:"type:text" json:"notes"`
	ProfileLink   string    `gorm:"type:text" json:"profileLink"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	Files []InfluencerFile `gorm:"foreignKey:InfluencerID" json:"files,omitempty"`
}

func (Influencer) TableName() string {
	return "influencers"
}

func (i *Influencer) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = util.NewID("inf")
	}
	return nil
}

type InfluencerFile struct {
	ID           string    `gorm:"primarykey;size:64" json:"id"`
	InfluencerID string    `gorm:"index;not null" json:"influencerId"`
	Kind         FileKind  `gorm:"type:varchar(20);index" json:"kind"`
	FileName     string    `gorm:"not null" json:"fileName"`
	Content      string    `gorm:"type:text" json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (InfluencerFile) TableName() string {
	return "influencer_files"
}

func (f *InfluencerFile) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = util.NewID("file")
	}
	return nil
}
