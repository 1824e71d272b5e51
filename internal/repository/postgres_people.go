package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/execsgroup/zowehlife-sub005/internal/domain"
)

// PostgresPeopleRepo people + check-ins repository backed by Postgres.
type PostgresPeopleRepo struct {
	db *sql.DB
}

func NewPostgresPeopleRepo(db *sql.DB) *PostgresPeopleRepo {
	return &PostgresPeopleRepo{db: db}
}

var _ PeopleRepo = (*PostgresPeopleRepo)(nil)

const personColumns = `
	person_id::text,
	ministry_id::text,
	kind,
	first_name,
	COALESCE(last_name, '') as last_name,
	COALESCE(email, '') as email,
	COALESCE(phone, '') as phone,
	status,
	COALESCE(assigned_leader_id::text, '') as assigned_leader_id,
	next_followup_date,
	COALESCE(next_followup_time, '') as next_followup_time,
	source,
	COALESCE(metadata, '{}'::jsonb) as metadata,
	created_at`

func scanPerson(row interface{ Scan(...any) error }) (*domain.Person, error) {
	var p domain.Person
	var metadataRaw json.RawMessage
	err := row.Scan(
		&p.PersonID,
		&p.MinistryID,
		&p.Kind,
		&p.FirstName,
		&p.LastName,
		&p.Email,
		&p.Phone,
		&p.Status,
		&p.AssignedLeaderID,
		&p.NextFollowupDate,
		&p.NextFollowupTime,
		&p.Source,
		&metadataRaw,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Metadata = metadataRaw
	return &p, nil
}

const checkinColumns = `
	checkin_id::text,
	ministry_id::text,
	person_id::text,
	outcome,
	COALESCE(notes, '') as notes,
	checkin_date,
	next_followup_date,
	COALESCE(next_followup_time, '') as next_followup_time,
	COALESCE(video_link, '') as video_link,
	COALESCE(recorded_by::text, '') as recorded_by,
	completed_at,
	created_at`

func scanCheckin(row interface{ Scan(...any) error }) (*domain.Checkin, error) {
	var c domain.Checkin
	err := row.Scan(
		&c.CheckinID,
		&c.MinistryID,
		&c.PersonID,
		&c.Outcome,
		&c.Notes,
		&c.CheckinDate,
		&c.NextFollowupDate,
		&c.NextFollowupTime,
		&c.VideoLink,
		&c.RecordedBy,
		&c.CompletedAt,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresPeopleRepo) GetPerson(ctx context.Context, ministryID, personID string) (*domain.Person, error) {
	if ministryID == "" || personID == "" {
		return nil, fmt.Errorf("ministry_id and person_id are required")
	}

	query := `SELECT ` + personColumns + ` FROM people WHERE ministry_id = $1::uuid AND person_id = $2::uuid`

	p, err := scanPerson(r.db.QueryRowContext(ctx, query, ministryID, personID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("person %s: %w", personID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get person: %w", err)
	}
	return p, nil
}

func (r *PostgresPeopleRepo) ListPeople(ctx context.Context, ministryID string, filter PersonFilters, page, size int) ([]*domain.Person, int, error) {
	if ministryID == "" {
		return nil, 0, fmt.Errorf("ministry_id is required")
	}
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 50
	}
	offset := (page - 1) * size

	where := []string{"ministry_id = $1::uuid"}
	args := []any{ministryID}
	argn := 2

	if filter.Kind != "" {
		where = append(where, fmt.Sprintf("kind = $%d", argn))
		args = append(args, filter.Kind)
		argn++
	}
	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argn))
		args = append(args, filter.Status)
		argn++
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d)", argn, argn))
		args = append(args, "%"+filter.Search+"%")
		argn++
	}

	whereClause := "WHERE " + strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM people " + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count people: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM people %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		personColumns, whereClause, argn, argn+1,
	)
	args = append(args, size, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var people []*domain.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return people, total, nil
}

func (r *PostgresPeopleRepo) CreatePerson(ctx context.Context, p *domain.Person) (string, error) {
	if p.MinistryID == "" {
		return "", fmt.Errorf("ministry_id is required")
	}
	if p.FirstName == "" {
		return "", fmt.Errorf("first_name is required")
	}

	id := p.PersonID
	if id == "" {
		id = uuid.NewString()
	}
	metadata := p.Metadata
	if metadata == nil {
		metadata = json.RawMessage("{}")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO people (person_id, ministry_id, kind, first_name, last_name, email, phone,
		                     status, assigned_leader_id, source, metadata, created_at)
		 VALUES ($1::uuid, $2::uuid, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''),
		         $8, NULLIF($9, '')::uuid, $10, $11::jsonb, NOW())`,
		id, p.MinistryID, p.Kind, p.FirstName, p.LastName, p.Email, p.Phone,
		p.Status, p.AssignedLeaderID, p.Source, string(metadata),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create person: %w", err)
	}
	return id, nil
}

// RecordCheckin appends the check-in and applies its transition result
// to the person in one transaction. The person row is taken FOR UPDATE
// first: two leaders checking in the same person at once serialize here
// instead of racing on next_followup_date.
func (r *PostgresPeopleRepo) RecordCheckin(ctx context.Context, rec CheckinRecord) (*domain.Person, *domain.Checkin, error) {
	if rec.Checkin == nil {
		return nil, nil, fmt.Errorf("checkin is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the person row.
	var currentStatus string
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM people WHERE ministry_id = $1::uuid AND person_id = $2::uuid FOR UPDATE`,
		rec.MinistryID, rec.PersonID,
	).Scan(&currentStatus)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, fmt.Errorf("person %s: %w", rec.PersonID, ErrNotFound)
		}
		return nil, nil, fmt.Errorf("failed to lock person: %w", err)
	}

	c := rec.Checkin
	checkinID := c.CheckinID
	if checkinID == "" {
		checkinID = uuid.NewString()
	}
	checkinDate := c.CheckinDate
	if checkinDate.IsZero() {
		checkinDate = time.Now()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO checkins (checkin_id, ministry_id, person_id, outcome, notes, checkin_date,
		                       next_followup_date, next_followup_time, video_link, recorded_by, created_at)
		 VALUES ($1::uuid, $2::uuid, $3::uuid, $4, NULLIF($5, ''), $6,
		         $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, '')::uuid, NOW())`,
		checkinID, rec.MinistryID, rec.PersonID, c.Outcome, c.Notes, checkinDate,
		rec.NextFollowupDate, rec.NextFollowupTime, c.VideoLink, c.RecordedBy,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to append checkin: %w", err)
	}

	// Close the scheduled check-in this one completes, if any.
	if rec.CompletesCheckinID != "" {
		res, err := tx.ExecContext(ctx,
			`UPDATE checkins SET completed_at = NOW()
			 WHERE ministry_id = $1::uuid AND checkin_id = $2::uuid AND completed_at IS NULL`,
			rec.MinistryID, rec.CompletesCheckinID,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to close scheduled checkin: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, nil, fmt.Errorf("scheduled checkin %s: %w", rec.CompletesCheckinID, ErrNotFound)
		}
	}

	// Apply status + outstanding follow-up (nil date clears it).
	_, err = tx.ExecContext(ctx,
		`UPDATE people
		 SET status = $3,
		     next_followup_date = $4,
		     next_followup_time = NULLIF($5, '')
		 WHERE ministry_id = $1::uuid AND person_id = $2::uuid`,
		rec.MinistryID, rec.PersonID, rec.NewStatus, rec.NextFollowupDate, rec.NextFollowupTime,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update person status: %w", err)
	}

	person, err := scanPerson(tx.QueryRowContext(ctx,
		`SELECT `+personColumns+` FROM people WHERE ministry_id = $1::uuid AND person_id = $2::uuid`,
		rec.MinistryID, rec.PersonID,
	))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload person: %w", err)
	}

	checkin, err := scanCheckin(tx.QueryRowContext(ctx,
		`SELECT `+checkinColumns+` FROM checkins WHERE ministry_id = $1::uuid AND checkin_id = $2::uuid`,
		rec.MinistryID, checkinID,
	))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reload checkin: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit checkin: %w", err)
	}

	return person, checkin, nil
}

func (r *PostgresPeopleRepo) GetCheckin(ctx context.Context, ministryID, checkinID string) (*domain.Checkin, error) {
	if ministryID == "" || checkinID == "" {
		return nil, fmt.Errorf("ministry_id and checkin_id are required")
	}

	query := `SELECT ` + checkinColumns + ` FROM checkins WHERE ministry_id = $1::uuid AND checkin_id = $2::uuid`

	c, err := scanCheckin(r.db.QueryRowContext(ctx, query, ministryID, checkinID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("checkin %s: %w", checkinID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get checkin: %w", err)
	}
	return c, nil
}

func (r *PostgresPeopleRepo) ListCheckins(ctx context.Context, ministryID, personID string) ([]*domain.Checkin, error) {
	if ministryID == "" || personID == "" {
		return nil, fmt.Errorf("ministry_id and person_id are required")
	}

	query := `SELECT ` + checkinColumns + ` FROM checkins
		 WHERE ministry_id = $1::uuid AND person_id = $2::uuid
		 ORDER BY checkin_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, ministryID, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkins: %w", err)
	}
	defer rows.Close()

	var checkins []*domain.Checkin
	for rows.Next() {
		c, err := scanCheckin(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan checkin: %w", err)
		}
		checkins = append(checkins, c)
	}
	return checkins, rows.Err()
}

func (r *PostgresPeopleRepo) CountByStatus(ctx context.Context, ministryID string) (map[string]int, error) {
	if ministryID == "" {
		return nil, fmt.Errorf("ministry_id is required")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM people WHERE ministry_id = $1::uuid GROUP BY status`,
		ministryID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
