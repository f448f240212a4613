package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lamnt/koctrack-backend/config"
	"github.com/lamnt/koctrack-backend/internal/app/controller"
	"github.com/lamnt/koctrack-backend/internal/app/model"
	"github.com/lamnt/koctrack-backend/internal/app/repository"
	"github.com/lamnt/koctrack-backend/internal/app/service"
	"github.com/lamnt/koctrack-backend/internal/db"
	"github.com/lamnt/koctrack-backend/internal/middleware"
	"github.com/lamnt/koctrack-backend/internal/scraper"
	"github.com/lamnt/koctrack-backend/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type TestServer struct {
	Router      *gin.Engine
	DB          *gorm.DB
	UserService service.UserService
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	storeRepo := repository.NewStoreRepository(testDB)
	influencerRepo := repository.NewInfluencerRepository(testDB)
	bookingRepo := repository.NewBookingRepository(testDB)
	trafficRepo := repository.NewTrafficRepository(testDB)

	sessions := session.NewMemoryStore(12 * time.Hour)
	authService := service.NewAuthService(userRepo, sessions)
	userService := service.NewUserService(userRepo)
	storeService := service.NewStoreService(testDB, storeRepo, bookingRepo)
	influencerService := service.NewInfluencerService(testDB, influencerRepo, bookingRepo, trafficRepo)
	bookingService := service.NewBookingService(testDB, bookingRepo, storeRepo, influencerRepo)
	trafficService := service.NewTrafficService(testDB, trafficRepo, bookingRepo, influencerRepo)

	videoScraper := scraper.New(config.ScraperConfig{
		Timeout:   3 * time.Second,
		UserAgent: "test-agent",
	})

	authController := controller.NewAuthController(authService)
	storeController := controller.NewStoreController(storeService)
	influencerController := controller.NewInfluencerController(influencerService)
	bookingController := controller.NewBookingController(bookingService, storeService)
	trafficController := controller.NewTrafficController(trafficService, videoScraper)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/login", authController.Login)

	authed := api.Group("")
	authed.Use(authMiddleware.Authenticate())
	{
		authed.POST("/logout", authController.Logout)

		authed.GET("/stores", storeController.ListStores)
		authed.POST("/stores", storeController.CreateStore)
		authed.PUT("/stores/:id", storeController.UpdateStore)
		authed.DELETE("/stores/:id", storeController.DeleteStore)

		authed.POST("/influencers", influencerController.CreateInfluencer)

		authed.GET("/bookings", bookingController.ListBookings)
		authed.POST("/bookings", bookingController.CreateBooking)

		authed.POST("/traffic", trafficController.CreateTrafficLog)
		authed.POST("/traffic/fetch", trafficController.FetchMetrics)
	}

	return &TestServer{
		Router:      router,
		DB:          testDB,
		UserService: userService,
	}
}

func (ts *TestServer) request(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func (ts *TestServer) login(t *testing.T, username, password string) string {
	w := ts.request(t, "POST", "/api/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

func TestAdminJourney(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	_, err := ts.UserService.CreateUser("admin", "secret123", model.RoleAdmin)
	require.NoError(t, err)

	// failed login: same generic message for a bad password
	w := ts.request(t, "POST", "/api/login", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")

	token := ts.login(t, "admin", "secret123")

	// no token, no access
	w = ts.request(t, "GET", "/api/stores", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// create a store and an influencer
	w = ts.request(t, "POST", "/api/stores", token, map[string]string{
		"name":    "麻辣掌柜",
		"address": "123 Nguyen Trai",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var storeResp struct {
		Store model.Store `json:"store"`
	}
	decodeJSON(t, w, &storeResp)

	w = ts.request(t, "POST", "/api/influencers", token, map[string]string{
		"displayName": "Linh Review",
		"handle":      "@linhreview",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var influencerResp struct {
		Influencer model.Influencer `json:"influencer"`
	}
	decodeJSON(t, w, &influencerResp)

	// book a visit, snapshots filled from both entities
	w = ts.request(t, "POST", "/api/bookings", token, map[string]interface{}{
		"storeId":          storeResp.Store.ID,
		"influencerId":     influencerResp.Influencer.ID,
		"visitDate":        "2099-09-10",
		"budgetMillionVND": 2.5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var bookingResp struct {
		Record model.Booking `json:"record"`
	}
	decodeJSON(t, w, &bookingResp)
	assert.Equal(t, "麻辣掌柜", bookingResp.Record.StoreName)
	assert.Equal(t, "Linh Review", bookingResp.Record.CreatorName)

	// attach a traffic log so the rename cascade is observable end to end
	w = ts.request(t, "POST", "/api/traffic", token, map[string]interface{}{
		"bookingId": bookingResp.Record.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// the store cannot be deleted while a booking depends on it
	w = ts.request(t, "DELETE", "/api/stores/"+storeResp.Store.ID, token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "STORE_HAS_BOOKINGS")

	// rename the store; the booking list reflects it
	w = ts.request(t, "PUT", "/api/stores/"+storeResp.Store.ID, token, map[string]string{
		"name": "辣府",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = ts.request(t, "GET", "/api/bookings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		OK      bool            `json:"ok"`
		Records []model.Booking `json:"records"`
		Summary struct {
			Totals struct {
				Count  int     `json:"count"`
				Budget float64 `json:"budget"`
			} `json:"totals"`
			Upcoming []model.Booking `json:"upcoming"`
		} `json:"summary"`
		Stores []model.Store `json:"stores"`
	}
	decodeJSON(t, w, &listResp)
	assert.True(t, listResp.OK)
	require.Len(t, listResp.Records, 1)
	assert.Equal(t, "辣府", listResp.Records[0].StoreName)
	assert.Equal(t, 1, listResp.Summary.Totals.Count)
	assert.InDelta(t, 2.5, listResp.Summary.Totals.Budget, 0.0001)
	assert.Len(t, listResp.Summary.Upcoming, 1)
	assert.Len(t, listResp.Stores, 1)

	// logout revokes the token for good
	w = ts.request(t, "POST", "/api/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.request(t, "GET", "/api/stores", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_TOKEN_EXPIRED")
}

func TestBookingFilterQuery(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	_, err := ts.UserService.CreateUser("admin", "secret123", model.RoleAdmin)
	require.NoError(t, err)
	token := ts.login(t, "admin", "secret123")

	w := ts.request(t, "POST", "/api/stores", token, map[string]string{"name": "麻辣掌柜"})
	require.Equal(t, http.StatusCreated, w.Code)
	var storeResp struct {
		Store model.Store `json:"store"`
	}
	decodeJSON(t, w, &storeResp)

	w = ts.request(t, "POST", "/api/influencers", token, map[string]string{
		"displayName": "Linh Review", "handle": "@linhreview",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var infResp struct {
		Influencer model.Influencer `json:"influencer"`
	}
	decodeJSON(t, w, &infResp)

	for _, date := range []string{"2099-09-10", "2099-10-01"} {
		w = ts.request(t, "POST", "/api/bookings", token, map[string]interface{}{
			"storeId":      storeResp.Store.ID,
			"influencerId": infResp.Influencer.ID,
			"visitDate":    date,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = ts.request(t, "GET", "/api/bookings?startDate=2099-09-01&endDate=2099-09-30", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listResp struct {
		Records []model.Booking `json:"records"`
	}
	decodeJSON(t, w, &listResp)
	require.Len(t, listResp.Records, 1)
	assert.Equal(t, "2099-09-10", listResp.Records[0].VisitDate)

	// keyword search over creator handle
	w = ts.request(t, "GET", "/api/bookings?q=linhreview", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeJSON(t, w, &listResp)
	assert.Len(t, listResp.Records, 2)
}

func TestTrafficFetchEndpoint(t *testing.T) {
	ts := setupIntegrationTest(t)
	defer db.CleanupTestDB(ts.DB)

	_, err := ts.UserService.CreateUser("admin", "secret123", model.RoleAdmin)
	require.NoError(t, err)
	token := ts.login(t, "admin", "secret123")

	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"playCount":"12.5k","diggCount":900,"commentCount":44,"shareCount":7}`))
	}))
	defer page.Close()

	w := ts.request(t, "POST", "/api/traffic/fetch", token, map[string]string{
		"videoLink": page.URL,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var fetchResp struct {
		OK   bool `json:"ok"`
		Data struct {
			Metrics model.Metrics `json:"metrics"`
		} `json:"data"`
	}
	decodeJSON(t, w, &fetchResp)
	assert.True(t, fetchResp.OK)
	assert.EqualValues(t, 12500, fetchResp.Data.Metrics.Views)
	assert.EqualValues(t, 900, fetchResp.Data.Metrics.Likes)

	// a dead page is a soft failure telling the operator to type it in
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()

	w = ts.request(t, "POST", "/api/traffic/fetch", token, map[string]string{
		"videoLink": dead.URL,
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "TRAFFIC_FETCH_FAILED")
	assert.Contains(t, w.Body.String(), "manually")
}
