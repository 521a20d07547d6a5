package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"hotel-access-backend/internal/model"
)

func (s *gormStore) ListGuests(ctx context.Context) ([]model.Guest, error) {
	var guests []model.Guest
	err := s.db.WithContext(ctx).
		Preload("Room").
		Order("check_in_time DESC").
		Find(&guests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	return guests, nil
}

func (s *gormStore) GuestByID(ctx context.Context, id string) (*model.Guest, error) {
	var guest model.Guest
	err := s.db.WithContext(ctx).First(&guest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guest %s: %w", id, err)
	}
	return &guest, nil
}

// CheckInGuest creates the stay record and flips the room to Occupied.
// The status flip is conditional on the room still being Vacant, which
// guards two operators checking different guests into the same room.
func (s *gormStore) CheckInGuest(ctx context.Context, guest *model.Guest) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room model.Room
		if err := tx.First(&room, "id = ?", guest.RoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}

		res := tx.Model(&model.Room{}).
			Where("id = ? AND status = ?", guest.RoomID, model.RoomVacant).
			Update("status", model.RoomOccupied)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRoomNotVacant
		}

		guest.Status = model.GuestCheckedIn
		roomID := guest.RoomID
		guest.CurrentRoomID = &roomID
		if guest.CheckInTime.IsZero() {
			guest.CheckInTime = time.Now().UTC()
		}
		return tx.Create(guest).Error
	})
}

// CheckOutGuest marks the stay Checked Out, frees the room and clears the
// current-room link. The guest row stays behind as history.
func (s *gormStore) CheckOutGuest(ctx context.Context, guestID string) (*model.Guest, error) {
	var guest model.Guest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&guest, "id = ?", guestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestNotFound
			}
			return err
		}

		if guest.CurrentRoomID != nil {
			if err := tx.Model(&model.Room{}).
				Where("id = ?", *guest.CurrentRoomID).
				Update("status", model.RoomVacant).Error; err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		guest.Status = model.GuestCheckedOut
		guest.CheckOutTime = &now
		guest.CurrentRoomID = nil
		return tx.Model(&model.Guest{}).Where("id = ?", guestID).Updates(map[string]interface{}{
			"status":          model.GuestCheckedOut,
			"check_out_time":  now,
			"current_room_id": nil,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// TransferGuest moves a checked-in guest to a vacant room. The new room
// is claimed with the same conditional flip as check-in.
func (s *gormStore) TransferGuest(ctx context.Context, guestID, oldRoomID, newRoomID string) (*model.Guest, error) {
	var guest model.Guest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&guest, "id = ?", guestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestNotFound
			}
			return err
		}

		var newRoom model.Room
		if err := tx.First(&newRoom, "id = ?", newRoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}

		res := tx.Model(&model.Room{}).
			Where("id = ? AND status = ?", newRoomID, model.RoomVacant).
			Update("status", model.RoomOccupied)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRoomNotVacant
		}

		if err := tx.Model(&model.Room{}).
			Where("id = ?", oldRoomID).
			Update("status", model.RoomVacant).Error; err != nil {
			return err
		}

		guest.RoomID = newRoomID
		guest.CurrentRoomID = &newRoomID
		return tx.Model(&model.Guest{}).Where("id = ?", guestID).Updates(map[string]interface{}{
			"room_id":         newRoomID,
			"current_room_id": newRoomID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &guest, nil
}
