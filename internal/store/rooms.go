package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hotel-access-backend/internal/model"
)

func (s *gormStore) ListRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := s.db.WithContext(ctx).
		Preload("CurrentGuest", "status = ?", model.GuestCheckedIn).
		Order("id ASC").
		Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *gormStore) CreateRoom(ctx context.Context, room *model.Room) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Room{}).Where("id = ?", room.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrRoomExists
		}
		if room.DeviceID != nil && *room.DeviceID != "" {
			bound, err := deviceBoundElsewhere(tx, *room.DeviceID, room.ID)
			if err != nil {
				return err
			}
			if bound {
				return ErrDeviceBound
			}
		} else {
			// Empty string must become NULL so the unique index on
			// device_id tolerates multiple unbound rooms.
			room.DeviceID = nil
		}
		if room.Status == "" {
			room.Status = model.RoomVacant
		}
		return tx.Create(room).Error
	})
}

// BindDeviceToRoom rebinds (or clears, when deviceID is empty) the door
// controller guarding a room.
func (s *gormStore) BindDeviceToRoom(ctx context.Context, roomID, deviceID string) (*model.Room, error) {
	var room model.Room
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&room, "id = ?", roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		if deviceID == "" {
			room.DeviceID = nil
		} else {
			bound, err := deviceBoundElsewhere(tx, deviceID, roomID)
			if err != nil {
				return err
			}
			if bound {
				return ErrDeviceBound
			}
			room.DeviceID = &deviceID
		}
		return tx.Model(&room).Update("device_id", room.DeviceID).Error
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *gormStore) RoomByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := s.db.WithContext(ctx).
		Preload("CurrentGuest", "status = ?", model.GuestCheckedIn).
		First(&room, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room %s: %w", id, err)
	}
	return &room, nil
}

func (s *gormStore) RoomByDevice(ctx context.Context, deviceID string) (*model.Room, error) {
	if deviceID == "" {
		return nil, nil
	}
	var room model.Room
	err := s.db.WithContext(ctx).
		Preload("CurrentGuest", "status = ?", model.GuestCheckedIn).
		First(&room, "device_id = ?", deviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve device %s: %w", deviceID, err)
	}
	return &room, nil
}

func deviceBoundElsewhere(tx *gorm.DB, deviceID, roomID string) (bool, error) {
	var count int64
	err := tx.Model(&model.Room{}).
		Where("device_id = ? AND id <> ?", deviceID, roomID).
		Count(&count).Error
	return count > 0, err
}
