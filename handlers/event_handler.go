package handlers

import (
	"log/slog"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"groovava/models"
	"groovava/tickets"
)

type EventHandler struct {
	app core.App
}

func NewEventHandler(app core.App) *EventHandler {
	return &EventHandler{app: app}
}

type eventRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Venue       string         `json:"venue"`
	Date        string         `json:"date"`
	Time        string         `json:"time"`
	Organizer   string         `json:"organizer"`
	Category    string         `json:"category"`
	Image       string         `json:"image"`
	Tiers       []tickets.Tier `json:"tiers"`
}

// List returns events newest-first, optionally narrowed by a search
// term over the discoverable text fields.
func (h *EventHandler) List(e *core.RequestEvent) error {
	filter := "id != ''"
	params := dbx.Params{}

	if q := e.Request.URL.Query().Get("search"); q != "" {
		filter = "title ~ {:q} || description ~ {:q} || venue ~ {:q} || organizer ~ {:q} || category ~ {:q} || location ~ {:q}"
		params["q"] = q
	}

	records, err := h.app.FindRecordsByFilter("events", filter, "-created", 200, 0, params)
	if err != nil {
		slog.Error("failed to list events", "err", err)
		return apis.NewInternalServerError("Failed to load events", err)
	}

	events := make([]*models.Event, 0, len(records))
	for _, record := range records {
		events = append(events, recordToEvent(record, false))
	}

	return e.JSON(200, map[string]any{"events": events})
}

// Get returns one event with its decoded ticket tiers.
func (h *EventHandler) Get(e *core.RequestEvent) error {
	record, err := h.app.FindRecordById("events", e.Request.PathValue("eventId"))
	if err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}

	return e.JSON(200, recordToEvent(record, true))
}

func (h *EventHandler) Create(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Please sign in to create events", nil)
	}

	var req eventRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if req.Title == "" {
		return apis.NewBadRequestError("Title is required", nil)
	}

	collection, err := h.app.FindCollectionByNameOrId("events")
	if err != nil {
		return apis.NewInternalServerError("Failed to create event", err)
	}

	record := core.NewRecord(collection)
	applyEventRequest(record, &req)
	record.Set("creator_id", e.Auth.Id)

	if err := h.app.Save(record); err != nil {
		slog.Error("failed to create event", "err", err)
		return apis.NewBadRequestError("Failed to create event", err)
	}

	return e.JSON(201, recordToEvent(record, true))
}

func (h *EventHandler) Update(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Please sign in to update events", nil)
	}

	record, err := h.app.FindRecordById("events", e.Request.PathValue("eventId"))
	if err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}
	if record.GetString("creator_id") != e.Auth.Id {
		return apis.NewForbiddenError("Only the event creator can update it", nil)
	}

	var req eventRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}

	applyEventRequest(record, &req)

	if err := h.app.Save(record); err != nil {
		slog.Error("failed to update event", "event_id", record.Id, "err", err)
		return apis.NewBadRequestError("Failed to update event", err)
	}

	return e.JSON(200, recordToEvent(record, true))
}

func (h *EventHandler) Delete(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Please sign in to delete events", nil)
	}

	record, err := h.app.FindRecordById("events", e.Request.PathValue("eventId"))
	if err != nil {
		return apis.NewNotFoundError("Event not found", err)
	}
	if record.GetString("creator_id") != e.Auth.Id {
		return apis.NewForbiddenError("Only the event creator can delete it", nil)
	}

	if err := h.app.Delete(record); err != nil {
		slog.Error("failed to delete event", "event_id", record.Id, "err", err)
		return apis.NewInternalServerError("Failed to delete event", err)
	}

	return e.NoContent(204)
}

func applyEventRequest(record *core.Record, req *eventRequest) {
	record.Set("title", req.Title)
	record.Set("description", req.Description)
	record.Set("location", req.Location)
	record.Set("venue", req.Venue)
	record.Set("date", req.Date)
	record.Set("time", req.Time)
	record.Set("organizer", req.Organizer)
	record.Set("category", req.Category)
	record.Set("image", req.Image)
	record.Set("price", tickets.Encode(req.Tiers))
}

// recordToEvent maps an events record to its API shape. The raw price
// blob never leaves the server; clients get the summary and, on detail
// views, the decoded tiers.
func recordToEvent(record *core.Record, withTiers bool) *models.Event {
	tiers := tickets.Decode(record.GetString("price"))

	event := &models.Event{
		ID:           record.Id,
		Title:        record.GetString("title"),
		Description:  record.GetString("description"),
		Location:     record.GetString("location"),
		Venue:        record.GetString("venue"),
		Date:         record.GetString("date"),
		Time:         record.GetString("time"),
		Organizer:    record.GetString("organizer"),
		Category:     record.GetString("category"),
		Image:        record.GetString("image"),
		PriceSummary: tickets.Summary(tiers),
		CreatorID:    record.GetString("creator_id"),
		Created:      record.GetString("created"),
	}
	if withTiers {
		event.Tiers = tiers
	}
	return event
}
