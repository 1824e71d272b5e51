package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/execsgroup/zowehlife-sub005/internal/domain"
	"github.com/execsgroup/zowehlife-sub005/internal/status"
)

func seedPerson(t *testing.T, repo *MemoryPeopleRepo, ministryID, firstName, kind string) string {
	t.Helper()
	id, err := repo.CreatePerson(context.Background(), &domain.Person{
		MinistryID: ministryID,
		Kind:       kind,
		FirstName:  firstName,
		Status:     status.TokenNew,
	})
	require.NoError(t, err)
	return id
}

func TestMemoryPeopleRepo_ListFilters(t *testing.T) {
	repo := NewMemoryPeopleRepo()
	ctx := context.Background()

	seedPerson(t, repo, "m1", "Ama", "convert")
	seedPerson(t, repo, "m1", "Kofi", "member")
	seedPerson(t, repo, "m2", "Esi", "convert")

	_, total, err := repo.ListPeople(ctx, "m1", PersonFilters{}, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 2, total)

	people, total, err := repo.ListPeople(ctx, "m1", PersonFilters{Kind: "member"}, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "Kofi", people[0].FirstName)

	people, _, err = repo.ListPeople(ctx, "m1", PersonFilters{Search: "am"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, people, 1)
	require.Equal(t, "Ama", people[0].FirstName)
}

func TestMemoryPeopleRepo_RecordCheckin_ScheduleThenComplete(t *testing.T) {
	repo := NewMemoryPeopleRepo()
	ctx := context.Background()
	personID := seedPerson(t, repo, "m1", "Yaw", "convert")

	followup := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	person, checkin, err := repo.RecordCheckin(ctx, CheckinRecord{
		MinistryID:       "m1",
		PersonID:         personID,
		Checkin:          &domain.Checkin{Outcome: "NEEDS_FOLLOWUP"},
		NewStatus:        status.TokenScheduled,
		NextFollowupDate: &followup,
	})
	require.NoError(t, err)
	require.Equal(t, status.TokenScheduled, person.Status)
	require.True(t, checkin.Pending())

	person, _, err = repo.RecordCheckin(ctx, CheckinRecord{
		MinistryID:         "m1",
		PersonID:           personID,
		Checkin:            &domain.Checkin{Outcome: "CONNECTED"},
		NewStatus:          status.TokenConnected,
		CompletesCheckinID: checkin.CheckinID,
	})
	require.NoError(t, err)
	require.Equal(t, status.TokenConnected, person.Status)
	require.Nil(t, person.NextFollowupDate)

	closed, err := repo.GetCheckin(ctx, "m1", checkin.CheckinID)
	require.NoError(t, err)
	require.NotNil(t, closed.CompletedAt)
	require.False(t, closed.Pending())

	history, err := repo.ListCheckins(ctx, "m1", personID)
	require.NoError(t, err)
	require.Len(t, history, 2)
}

func TestMemoryPeopleRepo_RecordCheckin_UnknownCompletion(t *testing.T) {
	repo := NewMemoryPeopleRepo()
	ctx := context.Background()
	personID := seedPerson(t, repo, "m1", "Adjoa", "convert")

	_, _, err := repo.RecordCheckin(ctx, CheckinRecord{
		MinistryID:         "m1",
		PersonID:           personID,
		Checkin:            &domain.Checkin{Outcome: "CONNECTED"},
		NewStatus:          status.TokenConnected,
		CompletesCheckinID: "missing",
	})
	require.ErrorIs(t, err, ErrNotFound)

	history, err := repo.ListCheckins(ctx, "m1", personID)
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestMemoryPeopleRepo_MinistryScoping(t *testing.T) {
	repo := NewMemoryPeopleRepo()
	ctx := context.Background()
	personID := seedPerson(t, repo, "m1", "Ama", "convert")

	_, err := repo.GetPerson(ctx, "m2", personID)
	require.ErrorIs(t, err, ErrNotFound)

	counts, err := repo.CountByStatus(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, 1, counts[status.TokenNew])
}
