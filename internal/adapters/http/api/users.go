// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/skillswap/internal/domain/model"
)

// UserDependencies defines the interface for profile operations.
type UserDependencies interface {
	UpsertUser(ctx context.Context, u model.User) (model.User, error)
	GetUser(ctx context.Context, userID string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	RemoveUser(ctx context.Context, userID string) error
}

// UsersHandler handles profile requests.
type UsersHandler struct {
	deps UserDependencies
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps UserDependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

// userRequest mirrors the profile schema for POST /users.
type userRequest struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Role     string        `json:"role"`
	School   string        `json:"school"`
	Bio      string        `json:"bio"`
	Avatar   string        `json:"avatar"`
	Offering []model.Skill `json:"offering"`
	Seeking  []model.Skill `json:"seeking"`
}

func (u userRequest) validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return errors.New("missing name")
	}
	return nil
}

// HandleUsers handles GET /users and POST /users requests.
func (h *UsersHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	const op = "api.users"
	switch r.Method {
	case http.MethodGet:
		users, err := h.deps.ListUsers(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, users)
	case http.MethodPost:
		var req userRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		user, err := h.deps.UpsertUser(r.Context(), model.User{
			ID:       req.ID,
			Name:     req.Name,
			Role:     req.Role,
			School:   req.School,
			Bio:      req.Bio,
			Avatar:   req.Avatar,
			Offering: req.Offering,
			Seeking:  req.Seeking,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, user)
	default:
		http.NotFound(w, r)
	}
}

// HandleUserByID handles GET /users/{id} and DELETE /users/{id} requests.
func (h *UsersHandler) HandleUserByID(w http.ResponseWriter, r *http.Request) {
	const op = "api.user_by_id"
	id := pathParam(r, "/users/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	switch r.Method {
	case http.MethodGet:
		user, err := h.deps.GetUser(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	case http.MethodDelete:
		if err := h.deps.RemoveUser(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "removed", "id": id})
	default:
		http.NotFound(w, r)
	}
}
