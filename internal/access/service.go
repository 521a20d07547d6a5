package access

import (
	"context"
	"fmt"
	"log"
	"time"

	"hotel-access-backend/internal/model"
)

// Options tunes the access service.
type Options struct {
	// UnlockSeconds is the unlock-duration hint for employee grants.
	UnlockSeconds int
	// QueryLimit caps log query results.
	QueryLimit int
	// Timeout bounds the backing-store calls of one invocation.
	Timeout time.Duration
}

// Service owns the access decision and its audit trail.
type Service struct {
	store         Store
	logger        *log.Logger
	unlockSeconds int
	queryLimit    int
	timeout       time.Duration
}

// NewService creates an access service. The logger is the operational
// channel for swallowed audit-write failures.
func NewService(store Store, logger *log.Logger, opts Options) *Service {
	if opts.UnlockSeconds <= 0 {
		opts.UnlockSeconds = 1800
	}
	if opts.QueryLimit <= 0 {
		opts.QueryLimit = 100
	}
	return &Service{
		store:         store,
		logger:        logger,
		unlockSeconds: opts.UnlockSeconds,
		queryLimit:    opts.QueryLimit,
		timeout:       opts.Timeout,
	}
}

// bound applies the request-scoped timeout when one is configured.
func (s *Service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}

// CheckAccess decides whether the scanned card opens the door guarded by
// the reporting device. First match wins: device binding, then the
// employee directory (case-insensitive), then the room's current guest
// (exact card match). Exactly one audit entry is appended per call,
// including the device-not-configured and server-error paths. An audit
// write failure is reported on the operational logger and never blocks
// the decision; the door controller always gets its grant/deny answer.
func (s *Service) CheckAccess(ctx context.Context, cardID, deviceID string) (Decision, error) {
	if cardID == "" {
		return Decision{}, ErrMissingCardID
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	dec := Decision{SubjectType: SubjectDenied, Message: MsgAccessDenied}

	room, lookupErr := s.store.RoomByDevice(ctx, deviceID)
	if lookupErr == nil && room == nil {
		dec.Message = MsgDeviceNotConfigured
	}
	if lookupErr == nil && room != nil {
		var emp *model.Employee
		emp, lookupErr = s.store.ActiveEmployeeByCard(ctx, cardID)
		switch {
		case lookupErr != nil:
		case emp != nil:
			dec = Decision{
				Granted:     true,
				SubjectType: SubjectEmployee,
				SubjectName: emp.Name,
				Duration:    s.unlockSeconds,
				Message:     MsgEmployeeAccess,
			}
		case room.Status == model.RoomOccupied && guestCardMatches(room.CurrentGuest, cardID):
			dec = Decision{
				Granted:     true,
				SubjectType: SubjectGuest,
				SubjectName: room.CurrentGuest.Name,
				Message:     MsgGuestAccess,
			}
		}
	}

	if lookupErr != nil {
		dec = Decision{SubjectType: SubjectDenied, Message: MsgServerError}
	}

	dec.Logged = s.appendAudit(ctx, deviceID, cardID, dec)

	if lookupErr != nil {
		return Decision{}, fmt.Errorf("access lookup failed: %w", lookupErr)
	}
	return dec, nil
}

// guestCardMatches reports whether the room's current guest holds this
// exact card. Guest cards are written verbatim by the card encoder, so
// the comparison is byte-exact, unlike the hand-keyed employee cards.
func guestCardMatches(guest *model.Guest, cardID string) bool {
	return guest != nil && guest.RFIDCardID != nil && *guest.RFIDCardID == cardID
}

func (s *Service) appendAudit(ctx context.Context, deviceID, cardID string, dec Decision) bool {
	if deviceID == "" {
		deviceID = UnknownDevice
	}
	entry := &model.AccessLog{
		DeviceID: deviceID,
		CardID:   cardID,
		Type:     dec.SubjectType,
		Access:   dec.Granted,
		Message:  dec.Message,
	}
	if err := s.store.AppendLog(ctx, entry); err != nil {
		s.logger.Printf("audit append failed (device=%s card=%s): %v", deviceID, cardID, err)
		return false
	}
	return true
}
