package status

// Outcome result a leader records for one contact attempt.
type Outcome string

const (
	OutcomeConnected      Outcome = "CONNECTED"
	OutcomeNoResponse     Outcome = "NO_RESPONSE"
	OutcomeNeedsFollowup  Outcome = "NEEDS_FOLLOWUP"
	OutcomeNeedsPrayer    Outcome = "NEEDS_PRAYER"
	OutcomeReferred       Outcome = "REFERRED"
	OutcomeScheduledVisit Outcome = "SCHEDULED_VISIT"
	OutcomeOther          Outcome = "OTHER"
)

// PersonKind trackable person variant. Each kind has its own permitted
// outcome vocabulary.
type PersonKind string

const (
	KindConvert   PersonKind = "convert"
	KindNewMember PersonKind = "new_member"
	KindMember    PersonKind = "member"
)

// outcomeStatus maps each outcome to the status token persisted on the
// person. NEEDS_PRAYER / REFERRED / OTHER all land on NOT_COMPLETED:
// the distinction is kept on the check-in row itself (raw outcome is
// stored), only the dashboard bucket is conflated.
var outcomeStatus = map[Outcome]string{
	OutcomeConnected:      TokenConnected,
	OutcomeNoResponse:     TokenNotCompleted,
	OutcomeNeedsFollowup:  TokenScheduled,
	OutcomeNeedsPrayer:    TokenNotCompleted,
	OutcomeReferred:       TokenNotCompleted,
	OutcomeScheduledVisit: TokenScheduled,
	OutcomeOther:          TokenNotCompleted,
}

// kindVocabulary permitted outcomes per person kind. Converts get the
// full pastoral set, guests get visit scheduling, members only track
// whether contact landed.
var kindVocabulary = map[PersonKind][]Outcome{
	KindConvert: {
		OutcomeConnected,
		OutcomeNoResponse,
		OutcomeNeedsFollowup,
		OutcomeNeedsPrayer,
		OutcomeReferred,
		OutcomeOther,
	},
	KindNewMember: {
		OutcomeConnected,
		OutcomeNoResponse,
		OutcomeScheduledVisit,
		OutcomeOther,
	},
	KindMember: {
		OutcomeConnected,
		OutcomeNoResponse,
	},
}

// Scheduling explicit next-appointment data attached to a check-in.
// Date is the wire-format day ("2006-01-02"); Time is optional ("19:30").
type Scheduling struct {
	Date      string
	Time      string
	VideoLink string
}

// Transition result of applying an outcome: the status token to persist
// on the person and, if an appointment was made, the schedule to store
// on the check-in. A nil Scheduled clears any outstanding follow-up.
type Transition struct {
	NewStatus string
	Scheduled *Scheduling
}

// ValidKind reports whether k names a known person kind.
func ValidKind(k PersonKind) bool {
	_, ok := kindVocabulary[k]
	return ok
}

// Outcomes returns the permitted vocabulary for a kind (form options).
func Outcomes(k PersonKind) []Outcome {
	return kindVocabulary[k]
}

// ApplyOutcome decides the person's next status from a recorded outcome.
//
// The outcome must belong to the kind's vocabulary, otherwise
// *InvalidOutcomeError. An explicit sched.Date always wins over the
// outcome's default mapping: a concrete next appointment means the
// person is SCHEDULED no matter what the contact produced. Without a
// schedule the transition clears any outstanding follow-up (completing
// a scheduled item closes it).
func ApplyOutcome(kind PersonKind, outcome Outcome, sched *Scheduling) (Transition, error) {
	permitted := false
	for _, o := range kindVocabulary[kind] {
		if o == outcome {
			permitted = true
			break
		}
	}
	if !permitted {
		return Transition{}, &InvalidOutcomeError{Kind: kind, Outcome: outcome}
	}

	next, ok := outcomeStatus[outcome]
	if !ok {
		// Unreachable while the vocabulary tables stay subsets of the
		// transition table; the completeness test pins that.
		return Transition{}, &InvalidOutcomeError{Kind: kind, Outcome: outcome}
	}

	if sched != nil && sched.Date != "" {
		return Transition{
			NewStatus: TokenScheduled,
			Scheduled: &Scheduling{Date: sched.Date, Time: sched.Time, VideoLink: sched.VideoLink},
		}, nil
	}

	return Transition{NewStatus: next}, nil
}
