package domain

import "encoding/json"

// Ministry tenant model (ministries table).
// Platform-level data, managed by the PlatformAdmin role.
type Ministry struct {
	MinistryID string `db:"ministry_id"` // UUID, PRIMARY KEY

	MinistryName string `db:"ministry_name"` // VARCHAR(200), NOT NULL
	Domain       string `db:"domain"`        // VARCHAR(200), UNIQUE, nullable (subdomain routing)
	Email        string `db:"email"`         // VARCHAR(200), nullable
	Phone        string `db:"phone"`         // VARCHAR(50), nullable

	// active / archived. Ministries are never hard-deleted; archiving
	// hides them from leader-facing views but keeps history intact.
	Status string `db:"status"`

	Metadata json.RawMessage `db:"metadata"` // JSONB, nullable
}

const (
	MinistryStatusActive   = "active"
	MinistryStatusArchived = "archived"
)
