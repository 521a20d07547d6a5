package store

import (
	"context"
	"fmt"
	"time"

	"hotel-access-backend/internal/access"
	"hotel-access-backend/internal/model"
)

// AppendLog writes one audit entry. The table has no foreign keys, so the
// write succeeds regardless of whether the device or card is known.
func (s *gormStore) AppendLog(ctx context.Context, entry *model.AccessLog) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append access log: %w", err)
	}
	return nil
}

func (s *gormStore) QueryLogs(ctx context.Context, q access.LogQuery) ([]model.AccessLog, error) {
	db := s.db.WithContext(ctx).Model(&model.AccessLog{})
	if q.DeviceID != "" {
		db = db.Where("device_id = ?", q.DeviceID)
	}
	if q.CardID != "" {
		db = db.Where("card_id = ?", q.CardID)
	}
	if q.Start != nil {
		db = db.Where("timestamp >= ?", *q.Start)
	}
	if q.End != nil {
		db = db.Where("timestamp <= ?", *q.End)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}

	var logs []model.AccessLog
	if err := db.Order("timestamp DESC, id DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to query access logs: %w", err)
	}
	return logs, nil
}
