package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/execsgroup/zowehlife-sub005/internal/domain"
	"github.com/execsgroup/zowehlife-sub005/internal/events"
	"github.com/execsgroup/zowehlife-sub005/internal/repository"
	"github.com/execsgroup/zowehlife-sub005/internal/status"
)

// ErrBadRequest marks validation failures the HTTP layer maps to 400.
var ErrBadRequest = errors.New("bad request")

const dateLayout = "2006-01-02"

// FollowupNotice what the notification side needs to know about a newly
// scheduled follow-up. The service only decides whether and for when a
// follow-up exists; timing and delivery belong to the Notifier.
type FollowupNotice struct {
	MinistryID string
	PersonID   string
	PersonName string
	LeaderID   string

	Date      time.Time
	Time      string // optional "19:30"
	VideoLink string

	// Person's contact email, empty if none: an immediate notice is only
	// sent when present.
	RecipientEmail string
}

// Notifier queues reminder delivery for a scheduled follow-up.
// Implementations must not fail the check-in that triggered them.
type Notifier interface {
	FollowupScheduled(ctx context.Context, n FollowupNotice)
}

// PersonService registration and check-in orchestration for trackable
// people. The status rules themselves live in the status package; this
// service wires them to persistence, events and notifications.
type PersonService struct {
	people     repository.PeopleRepo
	ministries repository.MinistriesRepo
	listeners  events.StatusListener
	notifier   Notifier
	logger     *zap.Logger
}

func NewPersonService(
	people repository.PeopleRepo,
	ministries repository.MinistriesRepo,
	listeners events.StatusListener,
	notifier Notifier,
	logger *zap.Logger,
) *PersonService {
	return &PersonService{
		people:     people,
		ministries: ministries,
		listeners:  listeners,
		notifier:   notifier,
		logger:     logger,
	}
}

// RegisterPersonInput new person payload (leader-entered or public
// self-registration form).
type RegisterPersonInput struct {
	MinistryID       string
	Kind             string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	AssignedLeaderID string
	Source           string
}

// RegisterPerson creates a person in the NEW lifecycle state. Every
// kind starts at NEW regardless of how the record arrived.
func (s *PersonService) RegisterPerson(ctx context.Context, in RegisterPersonInput) (*domain.Person, error) {
	if in.FirstName == "" {
		return nil, fmt.Errorf("first_name is required: %w", ErrBadRequest)
	}
	if !status.ValidKind(status.PersonKind(in.Kind)) {
		return nil, fmt.Errorf("unknown person kind %q: %w", in.Kind, ErrBadRequest)
	}

	ministry, err := s.ministries.GetMinistry(ctx, in.MinistryID)
	if err != nil {
		return nil, err
	}
	if ministry.Status != domain.MinistryStatusActive {
		return nil, fmt.Errorf("ministry %s is archived: %w", in.MinistryID, ErrBadRequest)
	}

	source := in.Source
	if source == "" {
		source = domain.PersonSourceLeaderEntered
	}

	p := &domain.Person{
		MinistryID:       in.MinistryID,
		Kind:             in.Kind,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		Phone:            in.Phone,
		Status:           status.TokenNew,
		AssignedLeaderID: in.AssignedLeaderID,
		Source:           source,
	}

	id, err := s.people.CreatePerson(ctx, p)
	if err != nil {
		return nil, err
	}

	created, err := s.people.GetPerson(ctx, in.MinistryID, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Registered person",
		zap.String("ministry_id", in.MinistryID),
		zap.String("person_id", id),
		zap.String("kind", in.Kind),
		zap.String("source", source),
	)
	return created, nil
}

// CheckinInput one follow-up contact attempt as submitted by a leader.
type CheckinInput struct {
	Outcome     string
	Notes       string
	CheckinDate string // optional "2006-01-02", defaults to today

	// Optional explicit next appointment.
	FollowupDate string // "2006-01-02"
	FollowupTime string // "19:30"
	VideoLink    string

	RecordedBy string
}

// RecordCheckin applies the outcome transition for a new check-in and
// persists everything atomically: the appended check-in, the person's
// new status, and the outstanding follow-up (set or cleared).
func (s *PersonService) RecordCheckin(ctx context.Context, ministryID, personID string, in CheckinInput) (*domain.Person, *domain.Checkin, error) {
	return s.recordCheckin(ctx, ministryID, personID, in, "")
}

// CompleteFollowup closes a scheduled check-in by appending the
// appointment's actual outcome. The pending schedule is cleared unless
// the completion itself books the next appointment.
func (s *PersonService) CompleteFollowup(ctx context.Context, ministryID, checkinID string, in CheckinInput) (*domain.Person, *domain.Checkin, error) {
	scheduled, err := s.people.GetCheckin(ctx, ministryID, checkinID)
	if err != nil {
		return nil, nil, err
	}
	if !scheduled.Pending() {
		return nil, nil, fmt.Errorf("checkin %s has no pending follow-up: %w", checkinID, ErrBadRequest)
	}
	return s.recordCheckin(ctx, ministryID, scheduled.PersonID, in, checkinID)
}

func (s *PersonService) recordCheckin(ctx context.Context, ministryID, personID string, in CheckinInput, completesID string) (*domain.Person, *domain.Checkin, error) {
	person, err := s.people.GetPerson(ctx, ministryID, personID)
	if err != nil {
		return nil, nil, err
	}

	var sched *status.Scheduling
	if in.FollowupDate != "" {
		sched = &status.Scheduling{
			Date:      in.FollowupDate,
			Time:      in.FollowupTime,
			VideoLink: in.VideoLink,
		}
	}

	transition, err := status.ApplyOutcome(status.PersonKind(person.Kind), status.Outcome(in.Outcome), sched)
	if err != nil {
		return nil, nil, err
	}

	checkinDate := time.Now()
	if in.CheckinDate != "" {
		checkinDate, err = time.Parse(dateLayout, in.CheckinDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid checkin_date %q: %w", in.CheckinDate, ErrBadRequest)
		}
	}

	rec := repository.CheckinRecord{
		MinistryID: ministryID,
		PersonID:   personID,
		Checkin: &domain.Checkin{
			Outcome:     in.Outcome,
			Notes:       in.Notes,
			CheckinDate: checkinDate,
			VideoLink:   in.VideoLink,
			RecordedBy:  in.RecordedBy,
		},
		NewStatus:          transition.NewStatus,
		CompletesCheckinID: completesID,
	}

	var followupDate time.Time
	if transition.Scheduled != nil {
		followupDate, err = time.Parse(dateLayout, transition.Scheduled.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid followup date %q: %w", transition.Scheduled.Date, ErrBadRequest)
		}
		rec.NextFollowupDate = &followupDate
		rec.NextFollowupTime = transition.Scheduled.Time
	}

	oldStatus := person.Status
	updated, checkin, err := s.people.RecordCheckin(ctx, rec)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("Recorded checkin",
		zap.String("ministry_id", ministryID),
		zap.String("person_id", personID),
		zap.String("outcome", in.Outcome),
		zap.String("old_status", oldStatus),
		zap.String("new_status", updated.Status),
		zap.Bool("scheduled", transition.Scheduled != nil),
	)

	if s.listeners != nil {
		s.listeners.OnStatusChange(ctx, events.StatusChange{
			MinistryID: ministryID,
			PersonID:   personID,
			Kind:       updated.Kind,
			OldStatus:  oldStatus,
			NewStatus:  updated.Status,
			Outcome:    in.Outcome,
			CheckinID:  checkin.CheckinID,
		})
	}

	if s.notifier != nil && transition.Scheduled != nil {
		name := updated.FirstName
		if updated.LastName != "" {
			name += " " + updated.LastName
		}
		s.notifier.FollowupScheduled(ctx, FollowupNotice{
			MinistryID:     ministryID,
			PersonID:       personID,
			PersonName:     name,
			LeaderID:       updated.AssignedLeaderID,
			Date:           followupDate,
			Time:           transition.Scheduled.Time,
			VideoLink:      transition.Scheduled.VideoLink,
			RecipientEmail: updated.Email,
		})
	}

	return updated, checkin, nil
}
