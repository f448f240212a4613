package model

import (
	"time"

	"github.com/lamnt/koctrack-backend/pkg/util"
	"gorm.io/gorm"
)

// SourceType distinguishes scheduled visits from walk-ins.
type SourceType string

const (
	SourceBooking SourceType = "booking"
	SourceWalkIn  SourceType = "walk-in"
)

// Booking is an influencer visit to a store. The storeName, creatorName,
// handle, contactMethod and contactInfo columns are display snapshots copied
// from the referenced Store/Influencer; they are caches, not independent
// facts, and are re-synced whenever the source entity changes.
type Booking struct {
	ID           string `gorm:"primarykey;size:64" json:"id"`
	StoreID      string `gorm:"index;not null" json:"storeId"`
	InfluencerID string `gorm:"index;not null" json:"influencerId"`

	StoreName     string `json:"storeName"`
	CreatorName   string `json:"creatorName"`
	Handle        string `json:"handle"`
	ContactMethod string `json:"contactMethod"`
	ContactInfo   string `json:"contactInfo"`

	VisitDate        string     `gorm:"index" json:"visitDate"` // ISO date "2024-03-08", may be empty
	VisitWindow      string     `json:"visitWindow"`            // free-form, e.g. "下午 3-5 点"
	SourceType       SourceType `gorm:"type:varchar(20);default:'booking'" json:"sourceType"`
	ServiceDetail    string     `gorm:"type:text" json:"serviceDetail"`
	VideoRights      string     `json:"videoRights"`
	PostDate         string     `json:"postDate"`
	VideoLink        string     `gorm:"type:text" json:"videoLink"`
	BudgetMillionVND float64    `json:"budgetMillionVND"` // never negative
	Notes            string     `gorm:"type:text" json:"notes"`
	CreatedAt        time.Time  `json:"createdAt"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = util.NewID("bk")
	}
	return nil
}
