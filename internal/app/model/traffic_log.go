package model

import (
	"time"

	"github.com/lamnt/koctrack-backend/pkg/util"
	"gorm.io/gorm"
)

// TrafficLog records a measurement of a posted video's engagement. A log
// either belongs to a Booking (BookingID set, display fields inherited from
// it) or stands alone against an Influencer; never neither.
type TrafficLog struct {
	ID           string `gorm:"primarykey;size:64" json:"id"`
	BookingID    string `gorm:"index" json:"bookingId"` // empty for standalone logs
	InfluencerID string `gorm:"index" json:"influencerId"`

	InfluencerName string     `json:"influencerName"`
	StoreName      string     `json:"storeName"`
	SourceType     SourceType `gorm:"type:varchar(20)" json:"sourceType"`
	PostDate       string     `json:"postDate"`
	VideoLink      string     `gorm:"type:text" json:"videoLink"`

	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Saves    int64 `json:"saves"`
	Shares   int64 `json:"shares"`

	Note       string    `gorm:"type:text" json:"note"`
	CapturedAt time.Time `gorm:"index" json:"capturedAt"` // last metric write
}

func (TrafficLog) TableName() string {
	return "traffic_logs"
}

func (t *TrafficLog) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = util.NewID("traffic")
	}
	return nil
}

// Metrics is the five-counter payload shared by scrape results and manual
// metric updates.
type Metrics struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
	Saves    int64 `json:"saves"`
	Shares   int64 `json:"shares"`
}

// Clamp floors every counter at zero.
func (m *Metrics) Clamp() {
	if m.Views < 0 {
		m.Views = 0
	}
	if m.Likes < 0 {
		m.Likes = 0
	}
	if m.Comments < 0 {
		m.Comments = 0
	}
	if m.Saves < 0 {
		m.Saves = 0
	}
	if m.Shares < 0 {
		m.Shares = 0
	}
}
