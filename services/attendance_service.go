package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"groovava/monitoring"
)

// ErrAttendanceUnavailable means the attendees collection does not
// exist. Callers must treat it as "feature unavailable", never as
// "not attending".
var ErrAttendanceUnavailable = errors.New("attendance tracking is unavailable")

type AttendanceService struct {
	app core.App
}

func NewAttendanceService(app core.App) *AttendanceService {
	return &AttendanceService{app: app}
}

// IsAttending reports whether the user has a registration for the event.
func (s *AttendanceService) IsAttending(ctx context.Context, userID, eventID string) (bool, error) {
	if _, err := s.app.FindCollectionByNameOrId("attendees"); err != nil {
		slog.Warn("attendees collection missing", "err", err)
		return false, ErrAttendanceUnavailable
	}

	var count int
	err := s.app.DB().
		Select("count(*)").
		From("attendees").
		Where(dbx.HashExp{"user_id": userID, "event_id": eventID}).
		WithContext(ctx).
		Row(&count)
	if err != nil {
		return false, fmt.Errorf("isAttending: count: %v", err)
	}

	return count > 0, nil
}

// Toggle flips the user's attendance and returns the new state. Two
// concurrent toggles race on the unique (user, event) index; the loser
// gets the store's error back rather than a silently wrong state.
func (s *AttendanceService) Toggle(ctx context.Context, userID, eventID string) (bool, error) {
	collection, err := s.app.FindCollectionByNameOrId("attendees")
	if err != nil {
		slog.Warn("attendees collection missing", "err", err)
		return false, ErrAttendanceUnavailable
	}

	existing, err := s.app.FindFirstRecordByFilter(
		"attendees",
		"user_id = {:user} && event_id = {:event}",
		dbx.Params{"user": userID, "event": eventID},
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("toggleAttendance: find: %v", err)
	}

	if existing != nil {
		if err := s.app.Delete(existing); err != nil {
			return false, fmt.Errorf("toggleAttendance: delete: %v", err)
		}
		monitoring.TrackAttendanceToggle("leave")
		slog.Info("attendance removed", "user_id", userID, "event_id", eventID)
		return false, nil
	}

	record := core.NewRecord(collection)
	record.Set("user_id", userID)
	record.Set("event_id", eventID)
	if err := s.app.Save(record); err != nil {
		return false, fmt.Errorf("toggleAttendance: create: %v", err)
	}

	monitoring.TrackAttendanceToggle("join")
	slog.Info("attendance added", "user_id", userID, "event_id", eventID)
	return true, nil
}
