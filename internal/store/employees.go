package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hotel-access-backend/internal/model"
)

func (s *gormStore) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&employees).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (s *gormStore) CreateEmployee(ctx context.Context, emp *model.Employee) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Employee{}).Where("id = ?", emp.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmployeeExists
		}
		if emp.RFIDCardID != nil && *emp.RFIDCardID != "" {
			if err := tx.Model(&model.Employee{}).
				Where("rfid_card_id IS NOT NULL AND LOWER(rfid_card_id) = LOWER(?)", *emp.RFIDCardID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrCardInUse
			}
		} else {
			emp.RFIDCardID = nil
		}
		if emp.Status == "" {
			emp.Status = model.EmployeeActive
		}
		return tx.Create(emp).Error
	})
}

// DeleteEmployee removes the directory entry. The card is revoked the
// moment the row is gone because access checks read the directory live.
func (s *gormStore) DeleteEmployee(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&model.Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

// ActiveEmployeeByCard matches the card case-insensitively; only Active
// employees open doors.
func (s *gormStore) ActiveEmployeeByCard(ctx context.Context, cardID string) (*model.Employee, error) {
	var emp model.Employee
	err := s.db.WithContext(ctx).
		Where("rfid_card_id IS NOT NULL AND LOWER(rfid_card_id) = LOWER(?) AND status = ?",
			cardID, model.EmployeeActive).
		First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up card: %w", err)
	}
	return &emp, nil
}
