package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/execsgroup/zowehlife-sub005/internal/domain"
	"github.com/execsgroup/zowehlife-sub005/internal/repository"
)

// MinistriesHandler platform-admin ministry management.
type MinistriesHandler struct {
	ministries repository.MinistriesRepo
	logger     *zap.Logger
}

func NewMinistriesHandler(ministries repository.MinistriesRepo, logger *zap.Logger) *MinistriesHandler {
	return &MinistriesHandler{ministries: ministries, logger: logger}
}

type ministryPayload struct {
	MinistryName string          `json:"ministryName"`
	Domain       string          `json:"domain"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Metadata     json.RawMessage `json:"metadata"`
}

type ministryView struct {
	MinistryID   string          `json:"ministryId"`
	MinistryName string          `json:"ministryName"`
	Domain       string          `json:"domain"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Status       string          `json:"status"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
}

func newMinistryView(m *domain.Ministry) ministryView {
	return ministryView{
		MinistryID:   m.MinistryID,
		MinistryName: m.MinistryName,
		Domain:       m.Domain,
		Email:        m.Email,
		Phone:        m.Phone,
		Status:       m.Status,
		Metadata:     m.Metadata,
	}
}

// Collection handles /admin/api/v1/ministries
func (h *MinistriesHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Item handles /admin/api/v1/ministries/{id} and .../{id}/archive
func (h *MinistriesHandler) Item(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/admin/api/v1/ministries/")
	parts := strings.Split(rest, "/")
	id := parts[0]
	if id == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if len(parts) == 2 && parts[1] == "archive" {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.archive(w, r, id)
		return
	}
	if len(parts) != 1 {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut, http.MethodPatch:
		h.update(w, r, id)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *MinistriesHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.MinistryFilters{
		Status: q.Get("status"),
		Search: q.Get("search"),
	}
	page := parseInt(q.Get("page"), 1)
	size := parseInt(q.Get("size"), 50)

	ministries, total, err := h.ministries.ListMinistries(r.Context(), filter, page, size)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	items := make([]ministryView, 0, len(ministries))
	for _, m := range ministries {
		items = append(items, newMinistryView(m))
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	}))
}

func (h *MinistriesHandler) create(w http.ResponseWriter, r *http.Request) {
	var payload ministryPayload
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid JSON body"))
		return
	}
	if payload.MinistryName == "" {
		writeJSON(w, http.StatusBadRequest, Fail("ministryName is required"))
		return
	}

	id, err := h.ministries.CreateMinistry(r.Context(), &domain.Ministry{
		MinistryName: payload.MinistryName,
		Domain:       payload.Domain,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Status:       domain.MinistryStatusActive,
		Metadata:     payload.Metadata,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.ministries.GetMinistry(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(newMinistryView(created)))
}

func (h *MinistriesHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	m, err := h.ministries.GetMinistry(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(newMinistryView(m)))
}

func (h *MinistriesHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var payload ministryPayload
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid JSON body"))
		return
	}

	err := h.ministries.UpdateMinistry(r.Context(), id, &domain.Ministry{
		MinistryName: payload.MinistryName,
		Domain:       payload.Domain,
		Email:        payload.Email,
		Phone:        payload.Phone,
		Metadata:     payload.Metadata,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	updated, err := h.ministries.GetMinistry(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(newMinistryView(updated)))
}

func (h *MinistriesHandler) archive(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.ministries.SetMinistryStatus(r.Context(), id, domain.MinistryStatusArchived); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.logger.Info("Archived ministry", zap.String("ministry_id", id))
	writeJSON(w, http.StatusOK, Ok(map[string]any{"ministryId": id, "status": domain.MinistryStatusArchived}))
}
