package db

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBootstrapFile(t *testing.T, doc ExportDocument) string {
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bootstrap.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestBackfill_LoadsEmptyDatastore(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	DB = testDB
	defer CleanupTestDB(testDB)

	path := writeBootstrapFile(t, ExportDocument{
		Stores: []model.Store{
			{ID: "store-aaaa1111", Name: "麻辣掌柜"},
		},
		Influencers: []model.Influencer{
			{ID: "inf-bbbb2222", DisplayName: "Linh Review", Handle: "@linhreview"},
		},
		Bookings: []model.Booking{
			{
				ID: "bk-cccc3333", StoreID: "store-aaaa1111", InfluencerID: "inf-bbbb2222",
				StoreName: "麻辣掌柜", CreatorName: "Linh Review", VisitDate: "2026-09-10",
			},
		},
		TrafficLogs: []model.TrafficLog{
			{ID: "traffic-dddd4444", BookingID: "bk-cccc3333", InfluencerID: "inf-bbbb2222", Views: 100},
		},
	})

	require.NoError(t, Backfill(path))

	var stores []model.Store
	require.NoError(t, DB.Find(&stores).Error)
	require.Len(t, stores, 1)
	// ids from the document survive; BeforeCreate must not replace them
	assert.Equal(t, "store-aaaa1111", stores[0].ID)

	var log model.TrafficLog
	require.NoError(t, DB.First(&log, "id = ?", "traffic-dddd4444").Error)
	assert.EqualValues(t, 100, log.Views)
}

func TestBackfill_SkipsNonEmptyDatastore(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	DB = testDB
	defer CleanupTestDB(testDB)

	require.NoError(t, DB.Create(&model.Store{Name: "existing"}).Error)

	path := writeBootstrapFile(t, ExportDocument{
		Stores: []model.Store{{ID: "store-aaaa1111", Name: "incoming"}},
	})

	require.NoError(t, Backfill(path))

	var count int64
	require.NoError(t, DB.Model(&model.Store{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBackfill_MissingFileIsHarmless(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	DB = testDB
	defer CleanupTestDB(testDB)

	assert.NoError(t, Backfill(""))
	assert.NoError(t, Backfill(filepath.Join(t.TempDir(), "nope.json")))
}
