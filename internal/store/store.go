// Package store provides the gorm-backed persistence layer.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hotel-access-backend/internal/access"
	"hotel-access-backend/internal/model"
)

// Domain errors surfaced by the store. Handlers map these to HTTP codes.
var (
	ErrRoomExists       = errors.New("room id already exists")
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomNotVacant    = errors.New("room is not vacant")
	ErrDeviceBound      = errors.New("device already bound to another room")
	ErrGuestNotFound    = errors.New("guest not found")
	ErrEmployeeExists   = errors.New("employee id already exists")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrCardInUse        = errors.New("card already assigned")
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	ListRooms(ctx context.Context) ([]model.Room, error)
	CreateRoom(ctx context.Context, room *model.Room) error
	BindDeviceToRoom(ctx context.Context, roomID, deviceID string) (*model.Room, error)
	RoomByID(ctx context.Context, id string) (*model.Room, error)
	RoomByDevice(ctx context.Context, deviceID string) (*model.Room, error)

	ListGuests(ctx context.Context) ([]model.Guest, error)
	GuestByID(ctx context.Context, id string) (*model.Guest, error)
	CheckInGuest(ctx context.Context, guest *model.Guest) error
	CheckOutGuest(ctx context.Context, guestID string) (*model.Guest, error)
	TransferGuest(ctx context.Context, guestID, oldRoomID, newRoomID string) (*model.Guest, error)

	ListEmployees(ctx context.Context) ([]model.Employee, error)
	CreateEmployee(ctx context.Context, emp *model.Employee) error
	DeleteEmployee(ctx context.Context, id string) error
	ActiveEmployeeByCard(ctx context.Context, cardID string) (*model.Employee, error)

	AppendLog(ctx context.Context, entry *model.AccessLog) error
	QueryLogs(ctx context.Context, q access.LogQuery) ([]model.AccessLog, error)

	DashboardStats(ctx context.Context) (*DashboardStats, error)
	Analytics(ctx context.Context) (*AnalyticsReport, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// DB exposes the underlying handle for plain CRUD handlers.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}
