package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreService_CreateStore(t *testing.T) {
	f := newFixture(t)

	store, err := f.stores.CreateStore("麻辣掌柜", "123 Nguyen Trai", "")
	require.NoError(t, err)
	assert.NotEmpty(t, store.ID)
	assert.Contains(t, store.ID, "store-")
	assert.Equal(t, "麻辣掌柜", store.Name)
	assert.Equal(t, "123 Nguyen Trai", store.Address)
}

func TestStoreService_CreateStore_EmptyNameGetsPlaceholder(t *testing.T) {
	f := newFixture(t)

	store, err := f.stores.CreateStore("", "", "")
	require.NoError(t, err)
	assert.Equal(t, placeholderStoreName, store.Name)
}

func TestStoreService_GetStoreByID(t *testing.T) {
	f := newFixture(t)
	store := f.mustStore(t, "麻辣掌柜")

	found, err := f.stores.GetStoreByID(store.ID)
	require.NoError(t, err)
	assert.Equal(t, store.Name, found.Name)

	_, err = f.stores.GetStoreByID("store-missing")
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestStoreService_UpdateStore_RenamePropagates(t *testing.T) {
	f := newFixture(t)

	store := f.mustStore(t, "麻辣掌柜")
	influencer := f.mustInfluencer(t, "Linh Review", "@linhreview")
	booking := f.mustBooking(t, store.ID, influencer.ID, "2026-09-10")

	log, err := f.traffic.CreateTrafficLog(TrafficInput{BookingID: booking.ID})
	require.NoError(t, err)
	require.Equal(t, "麻辣掌柜", log.StoreName)

	updated, err := f.stores.UpdateStore(store.ID, StoreMutation{Name: strPtr("辣府")})
	require.NoError(t, err)
	assert.Equal(t, "辣府", updated.Name)

	refreshedBooking, err := f.bookings.GetBookingByID(booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "辣府", refreshedBooking.StoreName)

	refreshedLog, err := f.traffic.GetTrafficLogByID(log.ID)
	require.NoError(t, err)
	assert.Equal(t, "辣府", refreshedLog.StoreName)
}

func TestStoreService_UpdateStore_EmptyNameKeepsCurrent(t *testing.T) {
	f := newFixture(t)
	store := f.mustStore(t, "麻辣掌柜")

	updated, err := f.stores.UpdateStore(store.ID, StoreMutation{
		Name:    strPtr(""),
		Address: strPtr("new address"),
	})
	require.NoError(t, err)
	assert.Equal(t, "麻辣掌柜", updated.Name)
	assert.Equal(t, "new address", updated.Address)
}

func TestStoreService_UpdateStore_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.stores.UpdateStore("store-missing", StoreMutation{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestStoreService_DeleteStore(t *testing.T) {
	f := newFixture(t)
	store := f.mustStore(t, "麻辣掌柜")

	require.NoError(t, f.stores.DeleteStore(store.ID))

	_, err := f.stores.GetStoreByID(store.ID)
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestStoreService_DeleteStore_BlockedByBookings(t *testing.T) {
	f := newFixture(t)

	store := f.mustStore(t, "麻辣掌柜")
	influencer := f.mustInfluencer(t, "Linh Review", "@linhreview")
	f.mustBooking(t, store.ID, influencer.ID, "2026-09-10")

	err := f.stores.DeleteStore(store.ID)
	assert.ErrorIs(t, err, ErrStoreHasBookings)

	// still there
	_, err = f.stores.GetStoreByID(store.ID)
	assert.NoError(t, err)
}
