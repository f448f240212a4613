package service

import (
	"testing"

	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/internal/app/repository"
	"github.com/lamnt/koctrack-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixture wires every service against one in-memory database so tests can
// exercise the cross-entity sync rules.
type fixture struct {
	db *gorm.DB

	storeRepo      repository.StoreRepository
	influencerRepo repository.InfluencerRepository
	bookingRepo    repository.BookingRepository
	trafficRepo    repository.TrafficRepository
	userRepo       repository.UserRepository

	stores      StoreService
	influencers InfluencerService
	bookings    BookingService
	traffic     TrafficService
	users       UserService
	overview    OverviewService
}

func newFixture(t *testing.T) *fixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	f := &fixture{
		db:             testDB,
		storeRepo:      repository.NewStoreRepository(testDB),
		influencerRepo: repository.NewInfluencerRepository(testDB),
		bookingRepo:    repository.NewBookingRepository(testDB),
		trafficRepo:    repository.NewTrafficRepository(testDB),
		userRepo:       repository.NewUserRepository(testDB),
	}
	f.stores = NewStoreService(testDB, f.storeRepo, f.bookingRepo)
	f.influencers = NewInfluencerService(testDB, f.influencerRepo, f.bookingRepo, f.trafficRepo)
	f.bookings = NewBookingService(testDB, f.bookingRepo, f.storeRepo, f.influencerRepo)
	f.traffic = NewTrafficService(testDB, f.trafficRepo, f.bookingRepo, f.influencerRepo)
	f.users = NewUserService(f.userRepo)
	f.overview = NewOverviewService(f.bookingRepo, f.trafficRepo, f.storeRepo, f.influencerRepo)
	return f
}

func (f *fixture) mustStore(t *testing.T, name string) *model.Store {
	store, err := f.stores.CreateStore(name, "", "")
	require.NoError(t, err)
	return store
}

func (f *fixture) mustInfluencer(t *testing.T, displayName, handle string) *model.Influencer {
	influencer, err := f.influencers.CreateInfluencer(&model.Influencer{
		DisplayName: displayName,
		Handle:      handle,
	})
	require.NoError(t, err)
	return influencer
}

func (f *fixture) mustBooking(t *testing.T, storeID, influencerID, visitDate string) *model.Booking {
	booking, err := f.bookings.CreateBooking(BookingInput{
		StoreID:      storeID,
		InfluencerID: influencerID,
		VisitDate:    visitDate,
	})
	require.NoError(t, err)
	return booking
}

func strPtr(s string) *string   { return &s }
func f64Ptr(v float64) *float64 { return &v }
func i64Ptr(v int64) *int64     { return &v }
