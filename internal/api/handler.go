package api

import (
	"github.com/SherClockHolmes/webpush-go"

	"hotel-access-backend/internal/access"
	"hotel-access-backend/internal/notification"
	"hotel-access-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	access  *access.Service
	alerts  *notification.WorkerPool
	webpush *webpush.Options
}

// NewHandler creates a new API handler. alerts may be nil when push is
// not configured.
func NewHandler(s store.Store, svc *access.Service, alerts *notification.WorkerPool, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:   s,
		access:  svc,
		alerts:  alerts,
		webpush: webpushOptions,
	}
}
