package access

import (
	"context"
	"time"

	"hotel-access-backend/internal/model"
)

// QueryLogs resolves the filter to a device id or card id and returns the
// matching audit entries newest first. A room filter resolves to the
// room's bound device, falling back to its current guest's card; a guest
// filter resolves to that guest's card, falling back to treating the
// supplied value as a raw card id. A filter that resolves to nothing
// yields an empty result, not an error.
func (s *Service) QueryLogs(ctx context.Context, f LogFilter) ([]model.AccessLog, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	q := LogQuery{Limit: s.queryLimit}

	switch {
	case f.GuestID != "":
		guest, err := s.store.GuestByID(ctx, f.GuestID)
		if err != nil {
			return nil, err
		}
		if guest != nil && guest.RFIDCardID != nil && *guest.RFIDCardID != "" {
			q.CardID = *guest.RFIDCardID
		} else {
			// Dashboard pages pass raw card ids here too.
			q.CardID = f.GuestID
		}

	case f.RoomID != "":
		room, err := s.store.RoomByID(ctx, f.RoomID)
		if err != nil {
			return nil, err
		}
		switch {
		case room == nil:
			return []model.AccessLog{}, nil
		case room.DeviceID != nil && *room.DeviceID != "":
			q.DeviceID = *room.DeviceID
		case room.CurrentGuest != nil && room.CurrentGuest.RFIDCardID != nil && *room.CurrentGuest.RFIDCardID != "":
			q.CardID = *room.CurrentGuest.RFIDCardID
		default:
			// No device, no guest card: nothing to show.
			return []model.AccessLog{}, nil
		}

	default:
		return nil, ErrMissingFilter
	}

	if f.Start != nil && f.End != nil {
		q.Start = f.Start
		end := endOfDay(*f.End)
		q.End = &end
	}

	logs, err := s.store.QueryLogs(ctx, q)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []model.AccessLog{}
	}
	return logs, nil
}

// endOfDay extends the end boundary so the range is inclusive of the
// whole final day.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
