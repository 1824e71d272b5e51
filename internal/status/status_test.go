package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestToCanonical_Closure every known token normalizes onto exactly the
// canonical four.
func TestToCanonical_Closure(t *testing.T) {
	canonical := map[Canonical]bool{
		New:          true,
		Scheduled:    true,
		Completed:    true,
		NotConnected: true,
	}

	for _, token := range KnownTokens() {
		c, err := ToCanonical(token)
		require.NoError(t, err, "token %s", token)
		require.True(t, canonical[c], "token %s mapped outside the canonical set: %s", token, c)
	}
}

// TestToCanonical_UnknownToken unknown tokens error, never default.
func TestToCanonical_UnknownToken(t *testing.T) {
	_, err := ToCanonical("BOGUS")
	require.Error(t, err)

	var unknown *UnknownStatusError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "BOGUS", unknown.Token)
	require.Equal(t, "display", unknown.Table)
}

// TestToCanonical_Idempotent same token, same answer.
func TestToCanonical_Idempotent(t *testing.T) {
	first, err := ToCanonical(TokenNeedsPrayer)
	require.NoError(t, err)
	second, err := ToCanonical(TokenNeedsPrayer)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestToCanonical_LegacyTokens(t *testing.T) {
	cases := map[string]Canonical{
		TokenConnected:      Completed,
		TokenActive:         Completed,
		TokenInProgress:     Scheduled,
		TokenNoResponse:     NotConnected,
		TokenNeedsPrayer:    NotConnected,
		TokenReferred:       NotConnected,
		TokenNotCompleted:   NotConnected,
		TokenNeverContacted: New,
		TokenInactive:       NotConnected,
	}
	for token, want := range cases {
		got, err := ToCanonical(token)
		require.NoError(t, err, "token %s", token)
		require.Equal(t, want, got, "token %s", token)
	}
}

// TestTables_Complete every token in the display table has an entry in
// the export and color tables, and every outcome's persisted status is
// itself a known token. Guards against a new token being added to one
// table and forgotten in the others.
func TestTables_Complete(t *testing.T) {
	for _, token := range KnownTokens() {
		_, err := ExportLabel(token)
		require.NoError(t, err, "export table missing %s", token)

		_, err = ColorClass(token)
		require.NoError(t, err, "color table missing %s", token)
	}

	for outcome, persisted := range outcomeStatus {
		_, err := ToCanonical(persisted)
		require.NoError(t, err, "outcome %s persists unknown token %s", outcome, persisted)
	}
}

func TestExportLabel_UnknownToken(t *testing.T) {
	_, err := ExportLabel("BOGUS")
	var unknown *UnknownStatusError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "export", unknown.Table)
}

func TestColorClass_UnknownToken(t *testing.T) {
	_, err := ColorClass("BOGUS")
	var unknown *UnknownStatusError
	require.True(t, errors.As(err, &unknown))
	require.Equal(t, "color", unknown.Table)
}
