package db

import (
	"encoding/json"
	"os"

	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/pkg/logger"
	"gorm.io/gorm"
)

// ExportDocument is the portable interchange format: a single JSON document
// with one array per entity collection. It is produced by GET /api/export
// and consumed by Backfill on first run.
type ExportDocument struct {
	Stores      []model.Store      `json:"stores"`
	Influencers []model.Influencer `json:"influencers"`
	Bookings    []model.Booking    `json:"bookings"`
	TrafficLogs []model.TrafficLog `json:"trafficLogs"`
}

// Backfill loads an export document into an empty datastore. A non-empty
// stores table means the instance already has data and the file is ignored.
func Backfill(path string) error {
	if path == "" {
		return nil
	}

	var count int64
	if err := DB.Model(&model.Store{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Datastore not empty, skipping backfill", map[string]interface{}{
			"stores": count,
		})
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Bootstrap file not found, starting empty", map[string]interface{}{
				"path": path,
			})
			return nil
		}
		return err
	}

	var doc ExportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		logger.Error("Failed to parse bootstrap file", err, map[string]interface{}{
			"path": path,
		})
		return err
	}

	err = DB.Transaction(func(tx *gorm.DB) error {
		for i := range doc.Stores {
			if err := tx.Create(&doc.Stores[i]).Error; err != nil {
				return err
			}
		}
		for i := range doc.Influencers {
			if err := tx.Create(&doc.Influencers[i]).Error; err != nil {
				return err
			}
		}
		for i := range doc.Bookings {
			if err := tx.Create(&doc.Bookings[i]).Error; err != nil {
				return err
			}
		}
		for i := range doc.TrafficLogs {
			if err := tx.Create(&doc.TrafficLogs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to backfill datastore", err)
		return err
	}

	logger.Info("Datastore backfilled from bootstrap file", map[string]interface{}{
		"stores":       len(doc.Stores),
		"influencers":  len(doc.Influencers),
		"bookings":     len(doc.Bookings),
		"traffic_logs": len(doc.TrafficLogs),
	})
	return nil
}
