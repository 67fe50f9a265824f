package tournament

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refs(n int) []EventRef {
	out := make([]EventRef, n)
	for i := range out {
		out[i] = EventRef{ID: uuid.New(), EventNumber: i + 1}
	}
	return out
}

func existing(ref EventRef, name string) EventInput {
	id := ref.ID
	return EventInput{ID: &id, Name: name}
}

func TestReconcile_KeepOneDropTwoAddOne(t *testing.T) {
	persisted := refs(3)
	requested := []EventInput{
		existing(persisted[1], "Qualifier 2"),
		{Name: "Grand Final"},
	}

	plan, err := Reconcile(persisted, requested)
	require.NoError(t, err)

	assert.Equal(t, []EventRef{persisted[0], persisted[2]}, plan.Deletes)
	require.Len(t, plan.Updates, 1)
	assert.Equal(t, persisted[1].ID, plan.Updates[0].ID)
	assert.Equal(t, 2, plan.Updates[0].EventNumber)
	require.Len(t, plan.Inserts, 1)
	assert.Equal(t, 4, plan.Inserts[0].EventNumber)
	assert.Equal(t, "Grand Final", plan.Inserts[0].Input.Name)
}

func TestReconcile_ForeignIDAbortsWholePlan(t *testing.T) {
	persisted := refs(2)
	foreign := uuid.New()
	requested := []EventInput{
		existing(persisted[0], "kept"),
		{ID: &foreign, Name: "stolen"},
		{Name: "new"},
	}

	plan, err := Reconcile(persisted, requested)
	assert.ErrorIs(t, err, ErrForeignEventID)
	assert.Nil(t, plan)
}

func TestReconcile_DuplicateIDRejected(t *testing.T) {
	persisted := refs(2)
	requested := []EventInput{
		existing(persisted[0], "first copy"),
		existing(persisted[0], "second copy"),
	}

	_, err := Reconcile(persisted, requested)
	assert.ErrorIs(t, err, ErrDuplicateEventID)
}

func TestReconcile_NewTournamentNumbersFromOne(t *testing.T) {
	plan, err := Reconcile(nil, []EventInput{{Name: "A"}, {Name: "B"}, {Name: "C"}})
	require.NoError(t, err)

	assert.Empty(t, plan.Deletes)
	assert.Empty(t, plan.Updates)
	got := make([]int, 0, len(plan.Inserts))
	for _, ins := range plan.Inserts {
		got = append(got, ins.EventNumber)
	}
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestReconcile_ReorderingDoesNotRenumber(t *testing.T) {
	persisted := refs(3)
	requested := []EventInput{
		{Name: "inserted first"},
		existing(persisted[2], "third"),
		existing(persisted[0], "first"),
		{Name: "inserted last"},
	}

	plan, err := Reconcile(persisted, requested)
	require.NoError(t, err)

	want := []EventUpdate{
		{ID: persisted[2].ID, EventNumber: 3, Input: requested[1]},
		{ID: persisted[0].ID, EventNumber: 1, Input: requested[2]},
	}
	if diff := cmp.Diff(want, plan.Updates); diff != "" {
		t.Errorf("updates mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []EventRef{persisted[1]}, plan.Deletes)
	assert.Equal(t, 4, plan.Inserts[0].EventNumber)
	assert.Equal(t, 5, plan.Inserts[1].EventNumber)
}

func TestReconcile_GapsUseMaximum(t *testing.T) {
	persisted := []EventRef{{ID: uuid.New(), EventNumber: 2}, {ID: uuid.New(), EventNumber: 7}}

	plan, err := Reconcile(persisted, []EventInput{{Name: "new"}})
	require.NoError(t, err)

	assert.Len(t, plan.Deletes, 2)
	assert.ElementsMatch(t, []uuid.UUID{persisted[0].ID, persisted[1].ID}, plan.DeleteIDs())
	assert.Equal(t, 8, plan.Inserts[0].EventNumber)
}

func TestReconcile_SetsAreDisjoint(t *testing.T) {
	persisted := refs(5)
	requested := []EventInput{
		existing(persisted[4], "e"),
		{Name: "x"},
		existing(persisted[1], "b"),
	}

	plan, err := Reconcile(persisted, requested)
	require.NoError(t, err)

	seen := map[uuid.UUID]string{}
	for _, d := range plan.Deletes {
		seen[d.ID] = "delete"
	}
	for _, u := range plan.Updates {
		_, dup := seen[u.ID]
		assert.False(t, dup, "event %s both deleted and updated", u.ID)
	}
	assert.Len(t, plan.Deletes, 3)
	assert.False(t, plan.IsEmpty())
}

func TestReconcile_NumberingFollowsSubmissionOrder(t *testing.T) {
	persisted := refs(3)
	requested := []EventInput{
		{Name: "Opener"},
		existing(persisted[2], "Third"),
		existing(persisted[0], "First"),
		{Name: "Closer"},
	}

	plan, err := Reconcile(persisted, requested)
	require.NoError(t, err)

	if diff := cmp.Diff([]int{4, 3, 1, 5}, plan.Numbering()); diff != "" {
		t.Errorf("numbering mismatch (-want +got):\n%s", diff)
	}
}
