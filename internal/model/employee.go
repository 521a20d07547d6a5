package model

import "time"

// Employee statuses. Only Active cards open doors.
const (
	EmployeeActive   = "Active"
	EmployeeInactive = "Inactive"
	EmployeeOnLeave  = "On Leave"
)

// Employee represents a staff member. Deleting an employee revokes their
// card immediately because access decisions read the directory live.
type Employee struct {
	ID         string    `gorm:"primaryKey;size:32" json:"id"` // assigned staff id
	Name       string    `gorm:"size:128;not null" json:"name"`
	Role       string    `gorm:"size:64" json:"role"`
	RFIDCardID *string   `gorm:"column:rfid_card_id;uniqueIndex;size:64" json:"rfidCardId"`
	Phone      string    `gorm:"size:32" json:"phone"`
	Email      string    `gorm:"size:128" json:"email"`
	JoinDate   time.Time `json:"joinDate"`
	Salary     float64   `json:"salary"`
	Status     string    `gorm:"size:16;not null;default:Active" json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
