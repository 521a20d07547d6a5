// Package memory provides an in-memory implementation of the access-core
// store boundary for tests that should not depend on a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"hotel-access-backend/internal/access"
	"hotel-access-backend/internal/model"
)

// Store keeps all records in process memory. Safe for concurrent use.
// The error fields let tests inject backing-store faults.
type Store struct {
	mu        sync.RWMutex
	rooms     map[string]model.Room
	guests    map[string]model.Guest
	employees map[string]model.Employee
	logs      []model.AccessLog
	nextLogID int64

	// ReadErr, when set, fails every lookup.
	ReadErr error
	// AppendErr, when set, fails AppendLog.
	AppendErr error
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		rooms:     make(map[string]model.Room),
		guests:    make(map[string]model.Guest),
		employees: make(map[string]model.Employee),
		nextLogID: 1,
	}
}

// AddRoom registers a room, replacing any previous one with the same id.
func (s *Store) AddRoom(room model.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = room
}

// AddGuest registers a guest.
func (s *Store) AddGuest(guest model.Guest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guests[guest.ID] = guest
}

// AddEmployee registers an employee.
func (s *Store) AddEmployee(emp model.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[emp.ID] = emp
}

// CheckIn binds a guest to a room and marks the room Occupied.
func (s *Store) CheckIn(roomID string, guest model.Guest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	guest.RoomID = roomID
	guest.CurrentRoomID = &roomID
	guest.Status = model.GuestCheckedIn
	s.guests[guest.ID] = guest
	room := s.rooms[roomID]
	room.Status = model.RoomOccupied
	s.rooms[roomID] = room
}

// Logs returns a copy of every audit entry in append order.
func (s *Store) Logs() []model.AccessLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.AccessLog, len(s.logs))
	copy(out, s.logs)
	return out
}

func (s *Store) RoomByDevice(_ context.Context, deviceID string) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	if deviceID == "" {
		return nil, nil
	}
	for _, room := range s.rooms {
		if room.DeviceID != nil && *room.DeviceID == deviceID {
			return s.withCurrentGuest(room), nil
		}
	}
	return nil, nil
}

func (s *Store) RoomByID(_ context.Context, id string) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	room, ok := s.rooms[id]
	if !ok {
		return nil, nil
	}
	return s.withCurrentGuest(room), nil
}

func (s *Store) GuestByID(_ context.Context, id string) (*model.Guest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	guest, ok := s.guests[id]
	if !ok {
		return nil, nil
	}
	g := guest
	return &g, nil
}

func (s *Store) ActiveEmployeeByCard(_ context.Context, cardID string) (*model.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	for _, emp := range s.employees {
		if emp.Status != model.EmployeeActive || emp.RFIDCardID == nil {
			continue
		}
		if strings.EqualFold(*emp.RFIDCardID, cardID) {
			e := emp
			return &e, nil
		}
	}
	return nil, nil
}

func (s *Store) AppendLog(_ context.Context, entry *model.AccessLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AppendErr != nil {
		return s.AppendErr
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	entry.ID = s.nextLogID
	s.nextLogID++
	s.logs = append(s.logs, *entry)
	return nil
}

func (s *Store) QueryLogs(_ context.Context, q access.LogQuery) ([]model.AccessLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	var out []model.AccessLog
	for _, entry := range s.logs {
		if q.DeviceID != "" && entry.DeviceID != q.DeviceID {
			continue
		}
		if q.CardID != "" && entry.CardID != q.CardID {
			continue
		}
		if q.Start != nil && entry.Timestamp.Before(*q.Start) {
			continue
		}
		if q.End != nil && entry.Timestamp.After(*q.End) {
			continue
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// withCurrentGuest attaches the room's checked-in guest, mirroring the
// gorm store's preload. Callers must hold at least a read lock.
func (s *Store) withCurrentGuest(room model.Room) *model.Room {
	r := room
	for _, guest := range s.guests {
		if guest.CurrentRoomID != nil && *guest.CurrentRoomID == r.ID && guest.Status == model.GuestCheckedIn {
			g := guest
			r.CurrentGuest = &g
			break
		}
	}
	return &r
}
