// Package notification pushes security alerts to subscribed front-desk
// browsers when a denied access attempt is logged at one of their rooms.
package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"hotel-access-backend/internal/model"
)

// AlertJob identifies one denied access attempt.
type AlertJob struct {
	DeviceID string
	CardID   string
}

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender backed by the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers delivering denied-access alerts.
type WorkerPool struct {
	size    int
	jobs    chan AlertJob
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan AlertJob, size*4),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	for {
		select {
		case job := <-wp.jobs:
			wp.sendAlertsForDevice(ctx, job)
		case <-ctx.Done():
			log.Printf("alert worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues an alert without blocking the access-check response.
// Alerts are best-effort: when the queue is full the job is dropped.
func (wp *WorkerPool) Dispatch(job AlertJob) {
	select {
	case wp.jobs <- job:
	default:
		log.Printf("alert queue full, dropping alert for device %s", job.DeviceID)
	}
}

// sendAlertsForDevice resolves the device to its room and notifies that
// room's subscribers.
func (wp *WorkerPool) sendAlertsForDevice(ctx context.Context, job AlertJob) {
	var room model.Room
	err := wp.db.WithContext(ctx).First(&room, "device_id = ?", job.DeviceID).Error
	if err != nil {
		// Unbound devices have no subscribers to alert.
		if err != gorm.ErrRecordNotFound {
			log.Printf("error resolving device %s for alert: %v", job.DeviceID, err)
		}
		return
	}

	var subscriptions []model.PushSubscription
	err = wp.db.WithContext(ctx).
		Joins("JOIN subscription_room_mapping srm ON srm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("srm.room_id = ?", room.ID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("error fetching subscriptions for room %s: %v", room.ID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	message := fmt.Sprintf("Denied access attempt at Room %s (card %s)", room.ID, job.CardID)
	for _, sub := range subscriptions {
		wp.sendAlert(ctx, sub, []byte(message))
	}
}

func (wp *WorkerPool) sendAlert(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("error sending alert to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Expired subscriptions are removed on sight.
	if resp.StatusCode == http.StatusGone {
		log.Printf("subscription %s expired, deleting", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
