package model

import "time"

// Guest statuses.
const (
	GuestCheckedIn  = "Checked In"
	GuestCheckedOut = "Checked Out"
)

// Guest represents one stay. Records are never deleted; checkout clears
// the current-room link and the row stays behind as history.
type Guest struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Name          string     `gorm:"size:128;not null" json:"name"`
	RFIDCardID    *string    `gorm:"column:rfid_card_id;size:64" json:"rfidCardId"`
	RoomID        string     `gorm:"size:32;index;not null" json:"roomId"`    // room booked at check-in
	CurrentRoomID *string    `gorm:"size:32;index" json:"currentRoomId"`      // nil once checked out
	Status        string     `gorm:"size:16;not null" json:"status"`
	CheckInTime   time.Time  `gorm:"not null;index" json:"checkInTime"`
	CheckOutTime  *time.Time `json:"checkOutTime"`
	PaymentStatus string     `gorm:"size:32" json:"paymentStatus"`
	TotalAmount   float64    `json:"totalAmount"`
	Phone         string     `gorm:"size:32" json:"phone"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`

	// Associations
	Room *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
