package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"hotel-access-backend/config"
	"hotel-access-backend/internal/access"
	"hotel-access-backend/internal/mw"
	"hotel-access-backend/internal/notification"
	"hotel-access-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, svc *access.Service, alerts *notification.WorkerPool, webpushOptions *webpush.Options, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, svc, alerts, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 10*time.Minute)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Device-facing endpoints polled by door controllers.
		api.GET("/access/check", handler.CheckAccess)
		api.GET("/access/logs", handler.QueryLogs)
		api.GET("/ble/event", handler.BLEEvent)

		// Front-desk CRUD.
		api.GET("/rooms", handler.ListRooms)
		api.POST("/rooms", handler.CreateRoom)
		api.PUT("/rooms", handler.BindDevice)

		api.GET("/guests", handler.ListGuests)
		api.POST("/guests", handler.CheckIn)
		api.PATCH("/guests/:guestId", handler.UpdateGuest)
		api.POST("/guests/transfer", handler.TransferGuest)

		api.GET("/employees", handler.ListEmployees)
		api.POST("/employees", handler.CreateEmployee)
		api.DELETE("/employees", handler.DeleteEmployee)

		// Polled reporting surfaces, cached.
		api.GET("/dashboard/stats", caching, handler.DashboardStats)
		api.GET("/analytics", caching, handler.Analytics)

		// Push alert subscriptions.
		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
