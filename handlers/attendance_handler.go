package handlers

import (
	"errors"
	"log/slog"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"groovava/services"
)

type AttendanceHandler struct {
	attendance *services.AttendanceService
}

func NewAttendanceHandler(attendance *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Status reports whether the signed-in user attends the event.
func (h *AttendanceHandler) Status(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Please sign in to view attendance", nil)
	}

	attending, err := h.attendance.IsAttending(e.Request.Context(), e.Auth.Id, e.Request.PathValue("eventId"))
	if err != nil {
		if errors.Is(err, services.ErrAttendanceUnavailable) {
			return apis.NewApiError(503, "Attendance tracking is currently unavailable", nil)
		}
		slog.Error("failed to check attendance", "err", err)
		return apis.NewInternalServerError("Failed to check attendance", err)
	}

	return e.JSON(200, map[string]any{"attending": attending})
}

// Toggle flips the signed-in user's attendance for the event.
func (h *AttendanceHandler) Toggle(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Please sign in to attend events", nil)
	}

	attending, err := h.attendance.Toggle(e.Request.Context(), e.Auth.Id, e.Request.PathValue("eventId"))
	if err != nil {
		if errors.Is(err, services.ErrAttendanceUnavailable) {
			return apis.NewApiError(503, "Attendance tracking is currently unavailable", nil)
		}
		slog.Error("failed to toggle attendance", "err", err)
		return apis.NewInternalServerError("Failed to update attendance", err)
	}

	return e.JSON(200, map[string]any{"attending": attending})
}
