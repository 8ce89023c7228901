package user_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"ms-events/internal/auth"
	"ms-events/internal/logger"
	"ms-events/internal/models"
	"ms-events/internal/users"
	"ms-events/internal/validate"
)

var userMessages = map[string]string{
	"Name.required":     "O nome não pode ser em branco",
	"Email.required":    "e-mail é um campo obrigatório",
	"Email.email":       "E-mail está inválido",
	"Password.required": "A senha não pode ser em branco",
	"Password.min":      "A senha deve ter entre 6-10 caracteres",
	"Password.max":      "A senha deve ter entre 6-10 caracteres",
	"OldPassword.min":   "A senha deve ter entre 6-10 caracteres",
	"OldPassword.max":   "A senha deve ter entre 6-10 caracteres",
}

type Handler struct {
	UserService *users.UserService
	Logger      *logger.Logger
}

func NewHandler(userService *users.UserService, log *logger.Logger) *Handler {
	return &Handler{UserService: userService, Logger: log}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.Logger.Error("API", fmt.Sprintf("failed to encode response: %v", err))
	}
}

// userFault reports whether err is one of the caller-input faults the service
// returns, as opposed to an unexpected store failure.
func userFault(err error) bool {
	return errors.Is(err, users.ErrEmailInUse) ||
		errors.Is(err, users.ErrUserNotFound) ||
		errors.Is(err, users.ErrWrongPassword) ||
		errors.Is(err, users.ErrOldPasswordRequired) ||
		errors.Is(err, users.ErrPasswordMismatch) ||
		errors.Is(err, users.ErrAvatarNotFound) ||
		errors.Is(err, users.ErrAvatarWrongType)
}

func (h *Handler) writeError(w http.ResponseWriter, operation string, err error, faultStatus int) {
	if userFault(err) {
		h.Logger.Warn("API", fmt.Sprintf("%s rejected: %v", operation, err))
		h.writeJSON(w, faultStatus, map[string]string{"error": err.Error()})
		return
	}
	h.Logger.Error("API", fmt.Sprintf("%s failed: %v", operation, err))
	h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erro interno do servidor"})
}

// Signup handles POST /users.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Corpo da requisição inválido"})
		return
	}
	if err := validate.Struct(req, userMessages); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	session, err := h.UserService.Register(req)
	if err != nil {
		h.writeError(w, "Signup", err, http.StatusBadRequest)
		return
	}

	h.Logger.Info("USER", fmt.Sprintf("user %s registered", session.User.ID))
	h.writeJSON(w, http.StatusCreated, session)
}

// CreateSession handles POST /sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Corpo da requisição inválido"})
		return
	}
	if err := validate.Struct(req, userMessages); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	session, err := h.UserService.Authenticate(req)
	if err != nil {
		h.writeError(w, "CreateSession", err, http.StatusUnauthorized)
		return
	}

	h.writeJSON(w, http.StatusCreated, session)
}

// UpdateUser handles PUT /users for the authenticated user.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	callerID := auth.UserID(r.Context())

	var req models.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Corpo da requisição inválido"})
		return
	}
	if err := validate.Struct(req, userMessages); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	view, err := h.UserService.UpdateProfile(callerID, req)
	if err != nil {
		h.writeError(w, "UpdateUser", err, http.StatusBadRequest)
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}
