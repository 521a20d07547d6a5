// Package access implements the door-access decision core and the audit
// log query surface consumed by the dashboard.
package access

import (
	"context"
	"errors"
	"time"

	"hotel-access-backend/internal/model"
)

var (
	// ErrMissingCardID is returned when an access check arrives without
	// a card identifier.
	ErrMissingCardID = errors.New("card_id is required")
	// ErrMissingFilter is returned when a log query names neither a room
	// nor a guest.
	ErrMissingFilter = errors.New("roomId or guestId is required")
)

// Subject types recorded on audit entries.
const (
	SubjectEmployee = "employee"
	SubjectGuest    = "guest"
	SubjectDenied   = "denied"
)

// Audit messages. The firmware only parses the boolean; these strings are
// for the human-readable feed.
const (
	MsgEmployeeAccess      = "Employee Access"
	MsgGuestAccess         = "Guest Access"
	MsgAccessDenied        = "Access Denied"
	MsgDeviceNotConfigured = "Device Not Configured"
	MsgServerError         = "Server Error"
)

// UnknownDevice is recorded when the caller reported no device id.
const UnknownDevice = "unknown"

// Decision is the outcome of one access check.
type Decision struct {
	Granted     bool
	SubjectType string // employee, guest or denied
	SubjectName string
	Duration    int // unlock-duration hint in seconds, employees only
	Message     string
	Logged      bool // whether the audit write succeeded
}

// LogFilter selects audit entries by room or guest, optionally narrowed
// to an inclusive date range.
type LogFilter struct {
	RoomID  string
	GuestID string
	Start   *time.Time
	End     *time.Time
}

// LogQuery is the resolved, store-level form of a LogFilter.
type LogQuery struct {
	DeviceID string
	CardID   string
	Start    *time.Time
	End      *time.Time
	Limit    int
}

// Store is the collaborator boundary the decision core depends on: keyed
// lookups plus the append-only audit log. Lookups return (nil, nil) when
// nothing matches; only backing-store faults surface as errors.
type Store interface {
	// RoomByDevice resolves a controller id to the room it guards,
	// including the room's current guest. An empty or unbound device id
	// resolves to nil.
	RoomByDevice(ctx context.Context, deviceID string) (*model.Room, error)
	// RoomByID fetches a room by its human-assigned id, including the
	// current guest.
	RoomByID(ctx context.Context, id string) (*model.Room, error)
	// GuestByID fetches a guest record.
	GuestByID(ctx context.Context, id string) (*model.Guest, error)
	// ActiveEmployeeByCard finds an Active employee whose card matches
	// case-insensitively.
	ActiveEmployeeByCard(ctx context.Context, cardID string) (*model.Employee, error)
	// AppendLog appends one audit entry, assigning the timestamp if unset.
	AppendLog(ctx context.Context, entry *model.AccessLog) error
	// QueryLogs returns matching entries newest first, capped at q.Limit.
	QueryLogs(ctx context.Context, q LogQuery) ([]model.AccessLog, error)
}
