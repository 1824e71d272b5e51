package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/execsgroup/zowehlife-sub005/internal/domain"
	"github.com/execsgroup/zowehlife-sub005/internal/repository"
)

// UsersHandler ministry staff account management.
type UsersHandler struct {
	users  repository.UsersRepo
	logger *zap.Logger
}

func NewUsersHandler(users repository.UsersRepo, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{users: users, logger: logger}
}

type userPayload struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type userView struct {
	UserID   string `json:"userId"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

func newUserView(u *domain.User) userView {
	return userView{
		UserID:   u.UserID,
		Nickname: u.Nickname,
		Email:    u.Email,
		Role:     u.Role,
		Status:   u.Status,
	}
}

// Collection handles /api/v1/users
func (h *UsersHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Item handles /api/v1/users/{id}
func (h *UsersHandler) Item(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/users/")
	if id == "" || strings.Contains(id, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	mid := ministryID(r)
	if mid == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing ministry scope"))
		return
	}

	u, err := h.users.GetUser(r.Context(), mid, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(newUserView(u)))
}

func (h *UsersHandler) list(w http.ResponseWriter, r *http.Request) {
	mid := ministryID(r)
	if mid == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing ministry scope"))
		return
	}

	users, err := h.users.ListUsers(r.Context(), mid, r.URL.Query().Get("role"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	items := make([]userView, 0, len(users))
	for _, u := range users {
		items = append(items, newUserView(u))
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items}))
}

func (h *UsersHandler) create(w http.ResponseWriter, r *http.Request) {
	mid := ministryID(r)
	if mid == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing ministry scope"))
		return
	}

	var payload userPayload
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid JSON body"))
		return
	}
	if payload.Email == "" {
		writeJSON(w, http.StatusBadRequest, Fail("email is required"))
		return
	}
	role := payload.Role
	if role == "" {
		role = domain.RoleLeader
	}
	if role != domain.RoleMinistryAdmin && role != domain.RoleLeader {
		writeJSON(w, http.StatusBadRequest, Fail("unknown role"))
		return
	}

	id, err := h.users.CreateUser(r.Context(), &domain.User{
		MinistryID: mid,
		Nickname:   payload.Nickname,
		Email:      payload.Email,
		Role:       role,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.users.GetUser(r.Context(), mid, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(newUserView(created)))
}
