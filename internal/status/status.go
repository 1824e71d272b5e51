// Package status holds the follow-up lifecycle rules shared by every
// trackable person kind: normalization of raw status tokens onto the
// four canonical lifecycle states, and the outcome transition applied
// when a leader records a check-in.
//
// All functions are pure lookups over literal tables. The tables are
// total over the known token set and fail hard on anything else.
package status

// Canonical coarse lifecycle state used for dashboards and filters.
type Canonical string

const (
	New          Canonical = "NEW"
	Scheduled    Canonical = "SCHEDULED"
	Completed    Canonical = "COMPLETED"
	NotConnected Canonical = "NOT_CONNECTED"
)

// Persisted status tokens. people.status stores these; older rows may
// still carry any of the legacy synonyms below, which is why the
// display table keys are strings rather than the Canonical type.
const (
	TokenNew          = "NEW"
	TokenScheduled    = "SCHEDULED"
	TokenCompleted    = "COMPLETED"
	TokenNotConnected = "NOT_CONNECTED"
	TokenConnected    = "CONNECTED"
	TokenNotCompleted = "NOT_COMPLETED"

	// Legacy tokens from earlier schema generations.
	TokenActive         = "ACTIVE"
	TokenInProgress     = "IN_PROGRESS"
	TokenNoResponse     = "NO_RESPONSE"
	TokenNeedsPrayer    = "NEEDS_PRAYER"
	TokenReferred       = "REFERRED"
	TokenNeverContacted = "NEVER_CONTACTED"
	TokenInactive       = "INACTIVE"
)

// displayTable maps every persisted and legacy token onto the canonical
// four. Identity rows first, then persisted transition targets, then
// legacy synonyms. Total by construction; the completeness test walks
// every declared token.
var displayTable = map[string]Canonical{
	TokenNew:          New,
	TokenScheduled:    Scheduled,
	TokenCompleted:    Completed,
	TokenNotConnected: NotConnected,

	TokenConnected:    Completed,
	TokenNotCompleted: NotConnected,

	TokenActive:         Completed,
	TokenInProgress:     Scheduled,
	TokenNoResponse:     NotConnected,
	TokenNeedsPrayer:    NotConnected,
	TokenReferred:       NotConnected,
	TokenNeverContacted: New,
	TokenInactive:       NotConnected,
}

// exportTable holds the human-readable labels used by spreadsheet and
// report generation. Kept separate from displayTable on purpose: export
// copy and UI copy are allowed to drift without that being a bug.
var exportTable = map[string]string{
	TokenNew:          "New",
	TokenScheduled:    "Follow-up Scheduled",
	TokenCompleted:    "Completed",
	TokenNotConnected: "Not Connected",

	TokenConnected:    "Connected",
	TokenNotCompleted: "Not Completed",

	TokenActive:         "Active",
	TokenInProgress:     "In Progress",
	TokenNoResponse:     "No Response",
	TokenNeedsPrayer:    "Needs Prayer",
	TokenReferred:       "Referred",
	TokenNeverContacted: "Never Contacted",
	TokenInactive:       "Inactive",
}

// colorTable cosmetic badge classes for the web frontend. Same total
// contract as the other tables.
var colorTable = map[string]string{
	TokenNew:          "badge-blue",
	TokenScheduled:    "badge-amber",
	TokenCompleted:    "badge-green",
	TokenNotConnected: "badge-gray",

	TokenConnected:    "badge-green",
	TokenNotCompleted: "badge-gray",

	TokenActive:         "badge-green",
	TokenInProgress:     "badge-amber",
	TokenNoResponse:     "badge-gray",
	TokenNeedsPrayer:    "badge-gray",
	TokenReferred:       "badge-gray",
	TokenNeverContacted: "badge-blue",
	TokenInactive:       "badge-gray",
}

// ToCanonical normalizes a raw persisted/legacy token onto the canonical
// four. Unknown tokens return *UnknownStatusError, never a default:
// defaulting would mask migration or data-entry bugs.
func ToCanonical(raw string) (Canonical, error) {
	c, ok := displayTable[raw]
	if !ok {
		return "", &UnknownStatusError{Token: raw, Table: "display"}
	}
	return c, nil
}

// ExportLabel returns the spreadsheet/report label for a raw token.
func ExportLabel(raw string) (string, error) {
	l, ok := exportTable[raw]
	if !ok {
		return "", &UnknownStatusError{Token: raw, Table: "export"}
	}
	return l, nil
}

// ColorClass returns the badge style class for a raw token.
func ColorClass(raw string) (string, error) {
	c, ok := colorTable[raw]
	if !ok {
		return "", &UnknownStatusError{Token: raw, Table: "color"}
	}
	return c, nil
}

// KnownTokens lists every token the tables cover, for completeness
// tests and form option endpoints.
func KnownTokens() []string {
	tokens := make([]string, 0, len(displayTable))
	for t := range displayTable {
		tokens = append(tokens, t)
	}
	return tokens
}
