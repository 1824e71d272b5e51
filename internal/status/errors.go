package status

import "fmt"

// UnknownStatusError is returned when a token is absent from one of the
// status tables. This is a data-integrity bug (bad migration or raw SQL
// write), not user input: callers must log it loudly and never guess a
// default.
type UnknownStatusError struct {
	Token string
	Table string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown status token %q in %s table", e.Token, e.Table)
}

// InvalidOutcomeError is returned when ApplyOutcome receives an outcome
// outside the person kind's vocabulary. Usually a client submitting the
// wrong form's enum; the HTTP layer maps it to a 400.
type InvalidOutcomeError struct {
	Kind    PersonKind
	Outcome Outcome
}

func (e *InvalidOutcomeError) Error() string {
	return fmt.Sprintf("outcome %q is not valid for %s", e.Outcome, e.Kind)
}
