package domain

// User staff account model (users table).
// Roles: PlatformAdmin (cross-ministry), MinistryAdmin, Leader.
type User struct {
	UserID string `db:"user_id"` // UUID, PRIMARY KEY

	MinistryID string `db:"ministry_id"` // UUID, NOT NULL

	Nickname string `db:"nickname"` // VARCHAR(100), NOT NULL
	Email    string `db:"email"`    // VARCHAR(200), NOT NULL
	Role     string `db:"role"`     // VARCHAR(50), NOT NULL
	Status   string `db:"status"`   // active / disabled
}

const (
	RolePlatformAdmin = "PlatformAdmin"
	RoleMinistryAdmin = "MinistryAdmin"
	RoleLeader        = "Leader"
)
