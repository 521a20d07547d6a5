package model

import "time"

// Room statuses. A room is Occupied exactly when it has a current guest.
const (
	RoomVacant   = "Vacant"
	RoomOccupied = "Occupied"
	RoomCleaning = "Cleaning"
)

// Room represents a hotel room and its bound door controller.
type Room struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"` // human-assigned, e.g. "101"
	Type      string    `gorm:"size:64;not null" json:"type"`
	DeviceID  *string   `gorm:"uniqueIndex;size:64" json:"deviceId"` // nil when no controller is bound
	Status    string    `gorm:"size:16;not null;default:Vacant" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Associations
	CurrentGuest *Guest `gorm:"foreignKey:CurrentRoomID" json:"currentGuest,omitempty"`
}
