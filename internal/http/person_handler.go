package httpapi

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/execsgroup/zowehlife-sub005/internal/domain"
	"github.com/execsgroup/zowehlife-sub005/internal/repository"
	"github.com/execsgroup/zowehlife-sub005/internal/service"
	"github.com/execsgroup/zowehlife-sub005/internal/status"
)

// PersonHandler people + check-in routes.
type PersonHandler struct {
	people  repository.PeopleRepo
	persons *service.PersonService
	export  *service.ExportService
	logger  *zap.Logger
}

func NewPersonHandler(people repository.PeopleRepo, persons *service.PersonService, export *service.ExportService, logger *zap.Logger) *PersonHandler {
	return &PersonHandler{people: people, persons: persons, export: export, logger: logger}
}

type personView struct {
	PersonID         string `json:"personId"`
	MinistryID       string `json:"ministryId"`
	Kind             string `json:"kind"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName,omitempty"`
	Email            string `json:"email,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Status           string `json:"status"`
	StatusDisplay    string `json:"statusDisplay"`
	StatusColor      string `json:"statusColor"`
	AssignedLeaderID string `json:"assignedLeaderId,omitempty"`
	NextFollowupDate string `json:"nextFollowupDate,omitempty"`
	NextFollowupTime string `json:"nextFollowupTime,omitempty"`
	Source           string `json:"source"`
	CreatedAt        string `json:"createdAt"`
}

func newPersonView(p *domain.Person) (personView, error) {
	canonical, err := status.ToCanonical(p.Status)
	if err != nil {
		return personView{}, err
	}
	color, err := status.ColorClass(p.Status)
	if err != nil {
		return personView{}, err
	}

	v := personView{
		PersonID:         p.PersonID,
		MinistryID:       p.MinistryID,
		Kind:             p.Kind,
		FirstName:        p.FirstName,
		LastName:         p.LastName,
		Email:            p.Email,
		Phone:            p.Phone,
		Status:           p.Status,
		StatusDisplay:    string(canonical),
		StatusColor:      color,
		AssignedLeaderID: p.AssignedLeaderID,
		NextFollowupTime: p.NextFollowupTime,
		Source:           p.Source,
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
	if p.NextFollowupDate != nil {
		v.NextFollowupDate = p.NextFollowupDate.Format("2006-01-02")
	}
	return v, nil
}

type checkinView struct {
	CheckinID        string `json:"checkinId"`
	PersonID         string `json:"personId"`
	Outcome          string `json:"outcome"`
	Notes            string `json:"notes,omitempty"`
	CheckinDate      string `json:"checkinDate"`
	NextFollowupDate string `json:"nextFollowupDate,omitempty"`
	NextFollowupTime string `json:"nextFollowupTime,omitempty"`
	VideoLink        string `json:"videoLink,omitempty"`
	RecordedBy       string `json:"recordedBy,omitempty"`
	Completed        bool   `json:"completed"`
	Pending          bool   `json:"pending"`
}

func newCheckinView(c *domain.Checkin) checkinView {
	v := checkinView{
		CheckinID:        c.CheckinID,
		PersonID:         c.PersonID,
		Outcome:          c.Outcome,
		Notes:            c.Notes,
		CheckinDate:      c.CheckinDate.Format("2006-01-02"),
		NextFollowupTime: c.NextFollowupTime,
		VideoLink:        c.VideoLink,
		RecordedBy:       c.RecordedBy,
		Completed:        c.CompletedAt != nil,
		Pending:          c.Pending(),
	}
	if c.NextFollowupDate != nil {
		v.NextFollowupDate = c.NextFollowupDate.Format("2006-01-02")
	}
	return v
}

type registerPayload struct {
	MinistryID       string `json:"ministryId"` // public form only
	Kind             string `json:"kind"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	AssignedLeaderID string `json:"assignedLeaderId"`
}

type checkinPayload struct {
	Outcome      string `json:"outcome"`
	Notes        string `json:"notes"`
	CheckinDate  string `json:"checkinDate"`
	FollowupDate string `json:"followupDate"`
	FollowupTime string `json:"followupTime"`
	VideoLink    string `json:"videoLink"`
	RecordedBy   string `json:"recordedBy"`
}

// Collection handles /api/v1/people
func (h *PersonHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Item handles /api/v1/people/{id} and /api/v1/people/{id}/checkins
func (h *PersonHandler) Item(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/people/")
	parts := strings.Split(rest, "/")
	id := parts[0]
	if id == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if len(parts) == 2 && parts[1] == "checkins" {
		switch r.Method {
		case http.MethodGet:
			h.listCheckins(w, r, id)
		case http.MethodPost:
			h.recordCheckin(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	if len(parts) != 1 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.get(w, r, id)
}

// CompleteCheckin handles PATCH /api/v1/checkins/{id}/complete
func (h *PersonHandler) CompleteCheckin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/checkins/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "complete" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	mid := ministryID(r)
	if mid == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing ministry scope"))
		return
	}

	var payload checkinPayload
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid JSON body"))
		return
	}

	person, checkin, err := h.persons.CompleteFollowup(r.Context(), mid, parts[0], service.CheckinInput{
		Outcome:      payload.Outcome,
		Notes:        payload.Notes,
		CheckinDate:  payload.CheckinDate,
		FollowupDate: payload.FollowupDate,
		FollowupTime: payload.FollowupTime,
		VideoLink:    payload.VideoLink,
		RecordedBy:   payload.RecordedBy,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.writePersonCheckin(w, http.StatusOK, person, checkin)
}

// Register handles POST /public/api/v1/register (self-submitted form,
// no ministry header: the form carries the ministry it belongs to).
func (h *PersonHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var payload registerPayload
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid JSON body"))
		return
	}
	if payload.MinistryID == "" {
		writeJSON(w, http.StatusBadRequest, Fail("ministryId is required"))
		return
	}

	person, err := h.persons.RegisterPerson(r.Context(), service.RegisterPersonInput{
		MinistryID: payload.MinistryID,
		Kind:       payload.Kind,
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Email:      payload.Email,
		Phone:      payload.Phone,
		Source:     domain.PersonSourceSelfForm,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	view, err := newPersonView(person)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(view))
}

// Export handles GET /api/v1/people/export (xlsx attachment).
func (h *PersonHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	mid := ministryID(r)
	if mid == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing ministry scope"))
		return
	}

	q := r.URL.Query()
	filter := repository.PersonFilters{
		Kind:   q.Get("kind"),
		Status: q.Get("status"),
	}

	data, err := h.export.BuildPeopleExport(r.Context(), mid, filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+service.ExportFilename(time.Now()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// Outcomes handles GET /api/v1/outcomes?kind=... (check-in form options).
func (h *PersonHandler) Outcomes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	kind := status.PersonKind(r.URL.Query().Get("kind"))
	if !status.ValidKind(kind) {
		writeJSON(w, http.StatusBadRequest, Fail("unknown person kind"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"kind":     kind,
		"outcomes": status.Outcomes(kind),
	}))
}

func (h *PersonHandler) list(w http.ResponseWriter, r *http.Request) {
	mid := ministryID(r)
	if mid == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing ministry scope"))
		return
	}

	q := r.URL.Query()
	filter := repository.PersonFilters{
		Kind:   q.Get("kind"),
		Status: q.Get("status"),
		Search: q.Get("search"),
	}
	page := parseInt(q.Get("page"), 1)
	size := parseInt(q.Get("size"), 50)

	people, total, err := h.people.ListPeople(r.Context(), mid, filter, page, size)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	items := make([]personView, 0, len(people))
	for _, p := range people {
		view, err := newPersonView(p)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		items = append(items, view)
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	}))
}

func (h *PersonHandler) create(w http.ResponseWriter, r *http.Request) {
	mid := ministryID(r)
	if mid == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing ministry scope"))
		return
	}

	var payload registerPayload
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid JSON body"))
		return
	}

	person, err := h.persons.RegisterPerson(r.Context(), service.RegisterPersonInput{
		MinistryID:       mid,
		Kind:             payload.Kind,
		FirstName:        payload.FirstName,
		LastName:         payload.LastName,
		Email:            payload.Email,
		Phone:            payload.Phone,
		AssignedLeaderID: payload.AssignedLeaderID,
		Source:           domain.PersonSourceLeaderEntered,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	view, err := newPersonView(person)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, Ok(view))
}

func (h *PersonHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	mid := ministryID(r)
	if mid == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing ministry scope"))
		return
	}

	person, err := h.people.GetPerson(r.Context(), mid, id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	view, err := newPersonView(person)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(view))
}

func (h *PersonHandler) listCheckins(w http.ResponseWriter, r *http.Request, personID string) {
	mid := ministryID(r)
	if mid == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing ministry scope"))
		return
	}

	checkins, err := h.people.ListCheckins(r.Context(), mid, personID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	items := make([]checkinView, 0, len(checkins))
	for _, c := range checkins {
		items = append(items, newCheckinView(c))
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items}))
}

func (h *PersonHandler) recordCheckin(w http.ResponseWriter, r *http.Request, personID string) {
	mid := ministryID(r)
	if mid == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing ministry scope"))
		return
	}

	var payload checkinPayload
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid JSON body"))
		return
	}

	person, checkin, err := h.persons.RecordCheckin(r.Context(), mid, personID, service.CheckinInput{
		Outcome:      payload.Outcome,
		Notes:        payload.Notes,
		CheckinDate:  payload.CheckinDate,
		FollowupDate: payload.FollowupDate,
		FollowupTime: payload.FollowupTime,
		VideoLink:    payload.VideoLink,
		RecordedBy:   payload.RecordedBy,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.writePersonCheckin(w, http.StatusCreated, person, checkin)
}

func (h *PersonHandler) writePersonCheckin(w http.ResponseWriter, statusCode int, person *domain.Person, checkin *domain.Checkin) {
	view, err := newPersonView(person)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, statusCode, Ok(map[string]any{
		"person":  view,
		"checkin": newCheckinView(checkin),
	}))
}
