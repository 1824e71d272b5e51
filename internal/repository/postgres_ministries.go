package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/execsgroup/zowehlife-sub005/internal/domain"
)

// PostgresMinistriesRepo ministries repository backed by Postgres.
type PostgresMinistriesRepo struct {
	db *sql.DB
}

func NewPostgresMinistriesRepo(db *sql.DB) *PostgresMinistriesRepo {
	return &PostgresMinistriesRepo{db: db}
}

var _ MinistriesRepo = (*PostgresMinistriesRepo)(nil)

const ministryColumns = `
	ministry_id::text,
	ministry_name,
	COALESCE(domain, '') as domain,
	COALESCE(email, '') as email,
	COALESCE(phone, '') as phone,
	COALESCE(status, 'active') as status,
	COALESCE(metadata, '{}'::jsonb) as metadata`

func scanMinistry(row interface{ Scan(...any) error }) (*domain.Ministry, error) {
	var m domain.Ministry
	var metadataRaw json.RawMessage
	err := row.Scan(
		&m.MinistryID,
		&m.MinistryName,
		&m.Domain,
		&m.Email,
		&m.Phone,
		&m.Status,
		&metadataRaw,
	)
	if err != nil {
		return nil, err
	}
	m.Metadata = metadataRaw
	return &m, nil
}

func (r *PostgresMinistriesRepo) GetMinistry(ctx context.Context, ministryID string) (*domain.Ministry, error) {
	if ministryID == "" {
		return nil, fmt.Errorf("ministry_id is required")
	}

	query := `SELECT ` + ministryColumns + ` FROM ministries WHERE ministry_id = $1::uuid`

	m, err := scanMinistry(r.db.QueryRowContext(ctx, query, ministryID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("ministry %s: %w", ministryID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get ministry: %w", err)
	}
	return m, nil
}

func (r *PostgresMinistriesRepo) ListMinistries(ctx context.Context, filter MinistryFilters, page, size int) ([]*domain.Ministry, int, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 {
		size = 50
	}
	offset := (page - 1) * size

	where := []string{}
	args := []any{}
	argn := 1

	if filter.Status != "" {
		where = append(where, fmt.Sprintf("status = $%d", argn))
		args = append(args, filter.Status)
		argn++
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("ministry_name ILIKE $%d", argn))
		args = append(args, "%"+filter.Search+"%")
		argn++
	}

	whereClause := ""
	if len(where) > 0 {
		whereClause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM ministries " + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count ministries: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM ministries %s ORDER BY ministry_name LIMIT $%d OFFSET $%d",
		ministryColumns, whereClause, argn, argn+1,
	)
	args = append(args, size, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ministries: %w", err)
	}
	defer rows.Close()

	var ministries []*domain.Ministry
	for rows.Next() {
		m, err := scanMinistry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan ministry: %w", err)
		}
		ministries = append(ministries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return ministries, total, nil
}

func (r *PostgresMinistriesRepo) CreateMinistry(ctx context.Context, m *domain.Ministry) (string, error) {
	if m.MinistryName == "" {
		return "", fmt.Errorf("ministry_name is required")
	}

	id := m.MinistryID
	if id == "" {
		id = uuid.NewString()
	}
	status := m.Status
	if status == "" {
		status = domain.MinistryStatusActive
	}
	metadata := m.Metadata
	if metadata == nil {
		metadata = json.RawMessage("{}")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ministries (ministry_id, ministry_name, domain, email, phone, status, metadata)
		 VALUES ($1::uuid, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6, $7::jsonb)`,
		id, m.MinistryName, m.Domain, m.Email, m.Phone, status, string(metadata),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create ministry: %w", err)
	}
	return id, nil
}

func (r *PostgresMinistriesRepo) UpdateMinistry(ctx context.Context, ministryID string, m *domain.Ministry) error {
	if ministryID == "" {
		return fmt.Errorf("ministry_id is required")
	}

	metadata := m.Metadata
	if metadata == nil {
		metadata = json.RawMessage("{}")
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE ministries
		 SET ministry_name = $2,
		     domain = NULLIF($3, ''),
		     email = NULLIF($4, ''),
		     phone = NULLIF($5, ''),
		     metadata = $6::jsonb
		 WHERE ministry_id = $1::uuid`,
		ministryID, m.MinistryName, m.Domain, m.Email, m.Phone, string(metadata),
	)
	if err != nil {
		return fmt.Errorf("failed to update ministry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("ministry %s: %w", ministryID, ErrNotFound)
	}
	return nil
}

func (r *PostgresMinistriesRepo) SetMinistryStatus(ctx context.Context, ministryID string, status string) error {
	if status != domain.MinistryStatusActive && status != domain.MinistryStatusArchived {
		return fmt.Errorf("invalid ministry status: %s", status)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE ministries SET status = $2 WHERE ministry_id = $1::uuid`,
		ministryID, status,
	)
	if err != nil {
		return fmt.Errorf("failed to set ministry status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("ministry %s: %w", ministryID, ErrNotFound)
	}
	return nil
}
