package model

import "time"

// PushSubscription holds a front-desk browser's web push subscription.
// Subscribers receive an alert when a denied access attempt is logged at
// one of their subscribed rooms.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Rooms []*Room `gorm:"many2many:subscription_room_mapping;"`
}
