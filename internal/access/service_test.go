package access_test

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-access-backend/internal/access"
	"hotel-access-backend/internal/model"
	"hotel-access-backend/internal/store/memory"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestService(s *memory.Store) *access.Service {
	return access.NewService(s, testLogger(), access.Options{})
}

func strPtr(s string) *string { return &s }

// seedHotel sets up Room 101 bound to DEV-A with guest G1 (card CARD-7)
// checked in, plus active employee E1 with card STAFF-1.
func seedHotel(s *memory.Store) {
	s.AddRoom(model.Room{ID: "101", Type: "Deluxe", DeviceID: strPtr("DEV-A"), Status: model.RoomVacant})
	s.CheckIn("101", model.Guest{ID: "g-1", Name: "G1", RFIDCardID: strPtr("CARD-7")})
	s.AddEmployee(model.Employee{ID: "E1", Name: "E1", RFIDCardID: strPtr("STAFF-1"), Status: model.EmployeeActive})
}

func TestCheckAccess_Decisions(t *testing.T) {
	testCases := []struct {
		name        string
		cardID      string
		deviceID    string
		wantGranted bool
		wantType    string
		wantName    string
		wantMsg     string
		wantDur     int
	}{
		{
			name:        "guest card on own door",
			cardID:      "CARD-7",
			deviceID:    "DEV-A",
			wantGranted: true,
			wantType:    access.SubjectGuest,
			wantName:    "G1",
			wantMsg:     access.MsgGuestAccess,
		},
		{
			name:     "unbound device denies regardless of card",
			cardID:   "CARD-7",
			deviceID: "DEV-B",
			wantType: access.SubjectDenied,
			wantMsg:  access.MsgDeviceNotConfigured,
		},
		{
			name:     "missing device denies without hard error",
			cardID:   "CARD-7",
			deviceID: "",
			wantType: access.SubjectDenied,
			wantMsg:  access.MsgDeviceNotConfigured,
		},
		{
			name:     "guest card match is case-sensitive",
			cardID:   "cArD-7",
			deviceID: "DEV-A",
			wantType: access.SubjectDenied,
			wantMsg:  access.MsgAccessDenied,
		},
		{
			name:        "employee card opens any configured door",
			cardID:      "STAFF-1",
			deviceID:    "DEV-A",
			wantGranted: true,
			wantType:    access.SubjectEmployee,
			wantName:    "E1",
			wantMsg:     access.MsgEmployeeAccess,
			wantDur:     1800,
		},
		{
			name:        "employee card match is case-insensitive",
			cardID:      "staff-1",
			deviceID:    "DEV-A",
			wantGranted: true,
			wantType:    access.SubjectEmployee,
			wantName:    "E1",
			wantMsg:     access.MsgEmployeeAccess,
			wantDur:     1800,
		},
		{
			name:     "unknown card on configured door",
			cardID:   "NOBODY",
			deviceID: "DEV-A",
			wantType: access.SubjectDenied,
			wantMsg:  access.MsgAccessDenied,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			memStore := memory.New()
			seedHotel(memStore)
			svc := newTestService(memStore)

			dec, err := svc.CheckAccess(context.Background(), tc.cardID, tc.deviceID)
			require.NoError(t, err)

			assert.Equal(t, tc.wantGranted, dec.Granted)
			assert.Equal(t, tc.wantType, dec.SubjectType)
			assert.Equal(t, tc.wantName, dec.SubjectName)
			assert.Equal(t, tc.wantMsg, dec.Message)
			assert.Equal(t, tc.wantDur, dec.Duration)
			assert.True(t, dec.Logged)

			// Exactly one audit entry per invocation, whatever the outcome.
			logs := memStore.Logs()
			require.Len(t, logs, 1)
			assert.Equal(t, tc.cardID, logs[0].CardID)
			assert.Equal(t, tc.wantGranted, logs[0].Access)
			assert.Equal(t, tc.wantMsg, logs[0].Message)
			if tc.deviceID == "" {
				assert.Equal(t, access.UnknownDevice, logs[0].DeviceID)
			} else {
				assert.Equal(t, tc.deviceID, logs[0].DeviceID)
			}
			assert.False(t, logs[0].Timestamp.IsZero())
		})
	}
}

func TestCheckAccess_MissingCard(t *testing.T) {
	memStore := memory.New()
	svc := newTestService(memStore)

	_, err := svc.CheckAccess(context.Background(), "", "DEV-A")
	assert.ErrorIs(t, err, access.ErrMissingCardID)
	// Rejected before any decision was made, so nothing to audit.
	assert.Empty(t, memStore.Logs())
}

func TestCheckAccess_EmployeePrecedesGuest(t *testing.T) {
	// A guest in a different room holds the same card id an employee
	// holds; the employee check runs first and wins.
	memStore := memory.New()
	memStore.AddRoom(model.Room{ID: "101", Type: "Deluxe", DeviceID: strPtr("DEV-A"), Status: model.RoomVacant})
	memStore.AddRoom(model.Room{ID: "102", Type: "Suite", DeviceID: strPtr("DEV-B"), Status: model.RoomVacant})
	memStore.CheckIn("102", model.Guest{ID: "g-1", Name: "Shadow", RFIDCardID: strPtr("SHARED-1")})
	memStore.AddEmployee(model.Employee{ID: "E1", Name: "Desk Clerk", RFIDCardID: strPtr("SHARED-1"), Status: model.EmployeeActive})
	svc := newTestService(memStore)

	dec, err := svc.CheckAccess(context.Background(), "SHARED-1", "DEV-A")
	require.NoError(t, err)
	assert.True(t, dec.Granted)
	assert.Equal(t, access.SubjectEmployee, dec.SubjectType)
	assert.Equal(t, "Desk Clerk", dec.SubjectName)
}

func TestCheckAccess_InactiveEmployeeFallsThrough(t *testing.T) {
	memStore := memory.New()
	seedHotel(memStore)
	memStore.AddEmployee(model.Employee{ID: "E2", Name: "Gone", RFIDCardID: strPtr("OLD-1"), Status: model.EmployeeInactive})
	svc := newTestService(memStore)

	dec, err := svc.CheckAccess(context.Background(), "OLD-1", "DEV-A")
	require.NoError(t, err)
	assert.False(t, dec.Granted)
	assert.Equal(t, access.MsgAccessDenied, dec.Message)
}

func TestCheckAccess_VacantRoomDeniesGuestCard(t *testing.T) {
	memStore := memory.New()
	memStore.AddRoom(model.Room{ID: "101", Type: "Deluxe", DeviceID: strPtr("DEV-A"), Status: model.RoomVacant})
	// Guest checked out: card must stop working even if the lookup by
	// card would still find the historical record.
	memStore.AddGuest(model.Guest{ID: "g-1", Name: "G1", RFIDCardID: strPtr("CARD-7"), Status: model.GuestCheckedOut})
	svc := newTestService(memStore)

	dec, err := svc.CheckAccess(context.Background(), "CARD-7", "DEV-A")
	require.NoError(t, err)
	assert.False(t, dec.Granted)
	assert.Equal(t, access.MsgAccessDenied, dec.Message)
}

func TestCheckAccess_AuditFailureDoesNotBlockDecision(t *testing.T) {
	memStore := memory.New()
	seedHotel(memStore)
	memStore.AppendErr = errors.New("disk full")
	svc := newTestService(memStore)

	dec, err := svc.CheckAccess(context.Background(), "CARD-7", "DEV-A")
	require.NoError(t, err)
	assert.True(t, dec.Granted, "a legitimate guest must never be locked out by a logging outage")
	assert.False(t, dec.Logged)
}

func TestCheckAccess_LookupFailureIsServerError(t *testing.T) {
	memStore := memory.New()
	seedHotel(memStore)
	memStore.ReadErr = errors.New("connection refused")
	svc := newTestService(memStore)

	_, err := svc.CheckAccess(context.Background(), "CARD-7", "DEV-A")
	require.Error(t, err)
	assert.NotErrorIs(t, err, access.ErrMissingCardID)
}

func TestCheckAccess_LookupFailureStillAttemptsAudit(t *testing.T) {
	memStore := memory.New()
	seedHotel(memStore)
	memStore.ReadErr = errors.New("connection refused")
	svc := newTestService(memStore)

	_, err := svc.CheckAccess(context.Background(), "CARD-7", "DEV-A")
	require.Error(t, err)

	logs := memStore.Logs()
	require.Len(t, logs, 1, "best-effort audit entry expected on server error")
	assert.False(t, logs[0].Access)
	assert.Equal(t, access.MsgServerError, logs[0].Message)
}
