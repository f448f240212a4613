package service

import (
	"sort"
	"strings"
	"time"

	"github.com/lamnt/koctrack-backend/internal/app/model"
)

// StoreFilterAll bypasses the store filter.
const StoreFilterAll = "ALL"

// BookingFilter narrows a booking list. Zero values mean "no constraint".
type BookingFilter struct {
	Store     string `json:"store"`
	Q         string `json:"q"`
	StartDate string `json:"startDate"` // ISO date, inclusive
	EndDate   string `json:"endDate"`   // ISO date, inclusive
}

// FilterBookings is a pure filter over an in-memory slice. The store filter
// matches storeId exactly; date bounds only apply to records that have a
// visit date; the keyword matches case-insensitively against creator name,
// handle, store name and visit date.
func FilterBookings(all []model.Booking, f BookingFilter) []model.Booking {
	q := strings.ToLower(strings.TrimSpace(f.Q))

	out := make([]model.Booking, 0, len(all))
	for _, b := range all {
		if f.Store != "" && f.Store != StoreFilterAll && b.StoreID != f.Store {
			continue
		}
		if b.VisitDate != "" {
			// ISO dates compare correctly as strings
			if f.StartDate != "" && b.VisitDate < f.StartDate {
				continue
			}
			if f.EndDate != "" && b.VisitDate > f.EndDate {
				continue
			}
		}
		if q != "" {
			haystack := strings.ToLower(b.CreatorName + " " + b.Handle + " " + b.StoreName + " " + b.VisitDate)
			if !strings.Contains(haystack, q) {
				continue
			}
		}
		out = append(out, b)
	}
	return out
}

const upcomingLimit = 6

type BookingTotals struct {
	Count          int     `json:"count"`
	Budget         float64 `json:"budget"`
	ScheduledCount int     `json:"scheduledCount"`
	WalkInCount    int     `json:"walkInCount"`
}

type BookingSummary struct {
	Totals   BookingTotals   `json:"totals"`
	Upcoming []model.Booking `json:"upcoming"`
}

// BuildSummary aggregates a booking list for the dashboard header.
func BuildSummary(records []model.Booking) BookingSummary {
	return BuildSummaryAt(records, time.Now())
}

// BuildSummaryAt is BuildSummary with an injectable clock.
func BuildSummaryAt(records []model.Booking, now time.Time) BookingSummary {
	today := now.Format("2006-01-02")

	summary := BookingSummary{
		Upcoming: []model.Booking{},
	}
	for _, b := range records {
		summary.Totals.Count++
		summary.Totals.Budget += b.BudgetMillionVND
		if b.SourceType == model.SourceWalkIn {
			summary.Totals.WalkInCount++
		} else {
			summary.Totals.ScheduledCount++
		}
		if b.VisitDate != "" && b.VisitDate >= today {
			summary.Upcoming = append(summary.Upcoming, b)
		}
	}

	sort.SliceStable(summary.Upcoming, func(i, j int) bool {
		return summary.Upcoming[i].VisitDate < summary.Upcoming[j].VisitDate
	})
	if len(summary.Upcoming) > upcomingLimit {
		summary.Upcoming = summary.Upcoming[:upcomingLimit]
	}
	return summary
}
