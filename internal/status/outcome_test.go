package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyOutcome_DefaultMappings(t *testing.T) {
	cases := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeConnected, TokenConnected},
		{OutcomeNoResponse, TokenNotCompleted},
		{OutcomeNeedsFollowup, TokenScheduled},
		{OutcomeNeedsPrayer, TokenNotCompleted},
		{OutcomeReferred, TokenNotCompleted},
		{OutcomeOther, TokenNotCompleted},
	}
	for _, tc := range cases {
		tr, err := ApplyOutcome(KindConvert, tc.outcome, nil)
		require.NoError(t, err, "outcome %s", tc.outcome)
		require.Equal(t, tc.want, tr.NewStatus, "outcome %s", tc.outcome)
		require.Nil(t, tr.Scheduled, "outcome %s should not schedule", tc.outcome)
	}

	tr, err := ApplyOutcome(KindNewMember, OutcomeScheduledVisit, nil)
	require.NoError(t, err)
	require.Equal(t, TokenScheduled, tr.NewStatus)
}

// TestApplyOutcome_ExplicitDateWins a concrete appointment overrides the
// outcome's default status.
func TestApplyOutcome_ExplicitDateWins(t *testing.T) {
	tr, err := ApplyOutcome(KindConvert, OutcomeConnected, &Scheduling{Date: "2025-03-01", Time: "19:30"})
	require.NoError(t, err)
	require.Equal(t, TokenScheduled, tr.NewStatus)
	require.NotNil(t, tr.Scheduled)
	require.Equal(t, "2025-03-01", tr.Scheduled.Date)
	require.Equal(t, "19:30", tr.Scheduled.Time)
}

// TestApplyOutcome_EmptyDateIgnored a Scheduling with no date is not an
// appointment; the default mapping applies and nothing is scheduled.
func TestApplyOutcome_EmptyDateIgnored(t *testing.T) {
	tr, err := ApplyOutcome(KindConvert, OutcomeConnected, &Scheduling{VideoLink: "https://meet.example/x"})
	require.NoError(t, err)
	require.Equal(t, TokenConnected, tr.NewStatus)
	require.Nil(t, tr.Scheduled)
}

func TestApplyOutcome_OutsideVocabulary(t *testing.T) {
	// Members only track CONNECTED / NO_RESPONSE.
	_, err := ApplyOutcome(KindMember, OutcomeNeedsPrayer, nil)
	require.Error(t, err)

	var invalid *InvalidOutcomeError
	require.True(t, errors.As(err, &invalid))
	require.Equal(t, KindMember, invalid.Kind)
	require.Equal(t, OutcomeNeedsPrayer, invalid.Outcome)

	// Guests cannot record convert-journey outcomes.
	_, err = ApplyOutcome(KindNewMember, OutcomeNeedsFollowup, nil)
	require.True(t, errors.As(err, &invalid))

	// Unknown kind has an empty vocabulary, so everything is rejected.
	_, err = ApplyOutcome(PersonKind("visitor"), OutcomeConnected, nil)
	require.True(t, errors.As(err, &invalid))
}

// TestVocabulary_Sizes pins the per-kind vocabulary sizes.
func TestVocabulary_Sizes(t *testing.T) {
	require.Len(t, Outcomes(KindConvert), 6)
	require.Len(t, Outcomes(KindNewMember), 4)
	require.Len(t, Outcomes(KindMember), 2)
}

// TestVocabulary_CoveredByTransitionTable every permitted outcome for
// every kind has an entry in the outcome transition table.
func TestVocabulary_CoveredByTransitionTable(t *testing.T) {
	for kind, outcomes := range kindVocabulary {
		for _, o := range outcomes {
			_, ok := outcomeStatus[o]
			require.True(t, ok, "kind %s outcome %s missing from transition table", kind, o)
		}
	}
}

func TestValidKind(t *testing.T) {
	require.True(t, ValidKind(KindConvert))
	require.True(t, ValidKind(KindNewMember))
	require.True(t, ValidKind(KindMember))
	require.False(t, ValidKind(PersonKind("visitor")))
}
