package model

import "time"

// AccessLog is one append-only audit record. Entries are immutable once
// written; they are only ever read or administratively bulk-purged.
type AccessLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	DeviceID  string    `gorm:"size:64;not null;index" json:"deviceId"` // "unknown" when the caller sent none
	CardID    string    `gorm:"size:64;not null;index" json:"cardId"`
	Type      string    `gorm:"size:32;not null" json:"type"` // employee, guest, denied, BLE Entry, BLE Exit
	Access    bool      `gorm:"not null" json:"access"`
	Message   string    `gorm:"size:256;not null" json:"message"`
}
