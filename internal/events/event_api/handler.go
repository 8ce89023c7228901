package event_api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"ms-events/internal/auth"
	"ms-events/internal/events"
	"ms-events/internal/events/qr"
	"ms-events/internal/logger"
	"ms-events/internal/models"
	"ms-events/internal/validate"

	"github.com/go-chi/chi/v5"
)

// eventMessages carries the per-field validation messages for event bodies.
var eventMessages = map[string]string{
	"Title.required":       "O nome do evento não pode ser em branco!",
	"Title.max":            "O Nome do evento não pode exceder 55 caracters.",
	"Description.required": "Descrição não pode ser em branco!",
	"Description.max":      "A descrição tem que ter no máximo 255 caracteres.",
	"Location.required":    "A localização não pode ser em branco!",
	"Location.max":         "A localização não pode excer 150 caracteres!",
	"Date.required":        "A data não pode ser em branco.",
}

type Handler struct {
	EventService *events.EventService
	QR           *qr.Generator
	Logger       *logger.Logger
}

func NewHandler(eventService *events.EventService, qrGen *qr.Generator, log *logger.Logger) *Handler {
	return &Handler{
		EventService: eventService,
		QR:           qrGen,
		Logger:       log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/events", func(r chi.Router) {
		r.Get("/", h.ListEvents)
		r.Post("/", h.CreateEvent)
		r.Get("/{eventId}", h.ShowEvent)
		r.Put("/{eventId}", h.UpdateEvent)
		r.Delete("/{eventId}", h.CancelEvent)
		r.Get("/{eventId}/qr", h.EventQR)
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("API", fmt.Sprintf("failed to encode response: %v", err))
	}
}

// writeError maps tagged lifecycle errors to 400 with the user-facing message
// and everything else to 500.
func (h *Handler) writeError(w http.ResponseWriter, operation string, err error) {
	if tagged, ok := events.AsError(err); ok {
		h.Logger.Warn("API", fmt.Sprintf("%s rejected: %s", operation, tagged.Message))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": tagged.Message})
		return
	}
	h.Logger.Error("API", fmt.Sprintf("%s failed: %v", operation, err))
	h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erro interno do servidor"})
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	callerID := auth.UserID(r.Context())
	where := r.URL.Query().Get("where")
	date := r.URL.Query().Get("date")

	list, err := h.EventService.List(callerID, where, date)
	if err != nil {
		h.writeError(w, "ListEvents", err)
		return
	}
	if list == nil {
		list = []models.Event{}
	}

	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) ShowEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	view, err := h.EventService.Get(eventID)
	if err != nil {
		h.writeError(w, "ShowEvent", err)
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	callerID := auth.UserID(r.Context())

	var req models.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Corpo da requisição inválido"})
		return
	}
	if err := validate.Struct(req, eventMessages); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	event, err := h.EventService.Create(callerID, req)
	if err != nil {
		h.writeError(w, "CreateEvent", err)
		return
	}

	h.Logger.LogEvent("CREATE", event.ID, fmt.Sprintf("created by %s", callerID))
	h.writeJSON(w, http.StatusCreated, event)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	callerID := auth.UserID(r.Context())
	eventID := chi.URLParam(r, "eventId")

	var req models.EventUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Corpo da requisição inválido"})
		return
	}
	if err := validate.Struct(req, eventMessages); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	view, err := h.EventService.Update(callerID, eventID, req)
	if err != nil {
		h.writeError(w, "UpdateEvent", err)
		return
	}

	h.Logger.LogEvent("UPDATE", eventID, fmt.Sprintf("updated by %s", callerID))
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) CancelEvent(w http.ResponseWriter, r *http.Request) {
	callerID := auth.UserID(r.Context())
	eventID := chi.URLParam(r, "eventId")

	if err := h.EventService.Cancel(callerID, eventID); err != nil {
		h.writeError(w, "CancelEvent", err)
		return
	}

	h.Logger.LogEvent("CANCEL", eventID, fmt.Sprintf("canceled by %s", callerID))
	w.WriteHeader(http.StatusOK)
}

// EventQR renders a PNG QR code with the event share URL.
func (h *Handler) EventQR(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")

	if _, err := h.EventService.Get(eventID); err != nil {
		h.writeError(w, "EventQR", err)
		return
	}

	png, err := h.QR.EventQR(eventID)
	if err != nil {
		h.writeError(w, "EventQR", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.Logger.Error("API", fmt.Sprintf("EventQR: failed to write response: %v", err))
	}
}
