package validate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jirorimi/cup-registration/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validEvent() map[string]any {
	return map[string]any{
		"name":              "Qualifier 1",
		"entry_type":        "open",
		"match_format":      "swiss",
		"matches_per_event": 5,
		"max_participants":  32,
		"scheduled_date":    "2025-05-10",
		"entry_start":       "2025-04-01T10:00",
		"entry_end":         "2025-04-30T23:59",
		"checkin_start":     "2025-05-10T12:00",
		"checkin_end":       "2025-05-10T12:30",
		"rules":             "Bo1 swiss, 5 rounds",
	}
}

func body(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func fieldErrors(t *testing.T, err error) Errors {
	t.Helper()
	var errs Errors
	require.True(t, errors.As(err, &errs), "expected validate.Errors, got %v", err)
	return errs
}

func TestParseCreateRequest_Valid(t *testing.T) {
	in, err := ParseCreateRequest(body(t, map[string]any{
		"name":   "Jiro-Rimi Cup #3",
		"events": []any{validEvent()},
	}))
	require.NoError(t, err)

	assert.Equal(t, "Jiro-Rimi Cup #3", in.Name)
	assert.True(t, in.IsBoys)
	assert.True(t, in.IsGirls)
	require.Len(t, in.Events, 1)
	ev := in.Events[0]
	assert.Nil(t, ev.ID)
	assert.Equal(t, tournament.FormatSwiss, ev.MatchFormat)
	assert.Equal(t, 5, ev.MatchesPerEvent)
	require.NotNil(t, ev.MaxParticipants)
	assert.Equal(t, 32, *ev.MaxParticipants)
	assert.Equal(t, "2025-04-30T23:59", ev.EntryEnd)
}

func TestParseCreateRequest_IgnoresIDs(t *testing.T) {
	ev := validEvent()
	ev["id"] = uuid.NewString()
	in, err := ParseCreateRequest(body(t, map[string]any{"name": "x", "events": []any{ev}}))
	require.NoError(t, err)
	assert.Nil(t, in.Events[0].ID)
}

func TestParseCreateRequest_ZeroEvents(t *testing.T) {
	for name, events := range map[string]any{"empty": []any{}, "missing": nil} {
		t.Run(name, func(t *testing.T) {
			payload := map[string]any{"name": "Cup"}
			if events != nil {
				payload["events"] = events
			}
			_, err := ParseCreateRequest(body(t, payload))
			errs := fieldErrors(t, err)
			assert.True(t, errs.Has("events"))
		})
	}
}

func TestParseCreateRequest_CollectsEveryFailure(t *testing.T) {
	ev := validEvent()
	ev["name"] = ""
	ev["entry_type"] = "closed"
	ev["matches_per_event"] = 11
	ev["scheduled_date"] = "2025/05/10"
	ev["checkin_end"] = "2025-05-10 12:30"

	_, err := ParseCreateRequest(body(t, map[string]any{"name": "", "events": []any{validEvent(), ev}}))
	errs := fieldErrors(t, err)

	for _, path := range []string{
		"name",
		"events[1].name",
		"events[1].entry_type",
		"events[1].matches_per_event",
		"events[1].scheduled_date",
		"events[1].checkin_end",
	} {
		assert.True(t, errs.Has(path), "missing failure for %s in %v", path, errs)
	}
	assert.False(t, errs.Has("events[0].name"))
	assert.Equal(t, "name", errs.First().Path)
}

func TestParseCreateRequest_NameLength(t *testing.T) {
	long := make([]rune, 101)
	for i := range long {
		long[i] = 'あ'
	}
	_, err := ParseCreateRequest(body(t, map[string]any{"name": string(long), "events": []any{validEvent()}}))
	assert.True(t, fieldErrors(t, err).Has("name"))

	_, err = ParseCreateRequest(body(t, map[string]any{"name": string(long[:100]), "events": []any{validEvent()}}))
	assert.NoError(t, err)
}

func TestParseCreateRequest_WindowOrdering(t *testing.T) {
	tests := []struct {
		name   string
		change map[string]any
		path   string
	}{
		{"entry closes at open", map[string]any{"entry_end": "2025-04-01T10:00"}, "events[0].entry_end"},
		{"entry closes before open", map[string]any{"entry_end": "2025-03-31T10:00"}, "events[0].entry_end"},
		{"checkin before entry closes", map[string]any{"checkin_start": "2025-04-30T23:58"}, "events[0].checkin_start"},
		{"checkin closes at open", map[string]any{"checkin_end": "2025-05-10T12:00"}, "events[0].checkin_end"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev := validEvent()
			for k, v := range tc.change {
				ev[k] = v
			}
			_, err := ParseCreateRequest(body(t, map[string]any{"name": "Cup", "events": []any{ev}}))
			errs := fieldErrors(t, err)
			require.Len(t, errs, 1, "%v", errs)
			assert.Equal(t, tc.path, errs[0].Path)
		})
	}
}

func TestParseCreateRequest_BackToBackWindows(t *testing.T) {
	ev := validEvent()
	ev["checkin_start"] = ev["entry_end"]
	_, err := ParseCreateRequest(body(t, map[string]any{"name": "Cup", "events": []any{ev}}))
	assert.NoError(t, err)
}

func TestParseCreateRequest_MaxParticipantsSentinels(t *testing.T) {
	for _, v := range []any{nil, "NaN", "nan", ""} {
		ev := validEvent()
		ev["max_participants"] = v
		in, err := ParseCreateRequest(body(t, map[string]any{"name": "Cup", "events": []any{ev}}))
		require.NoError(t, err, "%v", v)
		assert.Nil(t, in.Events[0].MaxParticipants, "%v", v)
	}

	ev := validEvent()
	delete(ev, "max_participants")
	in, err := ParseCreateRequest(body(t, map[string]any{"name": "Cup", "events": []any{ev}}))
	require.NoError(t, err)
	assert.Nil(t, in.Events[0].MaxParticipants)

	for _, v := range []any{0, -4, 2.5, "ten"} {
		ev := validEvent()
		ev["max_participants"] = v
		_, err := ParseCreateRequest(body(t, map[string]any{"name": "Cup", "events": []any{ev}}))
		assert.True(t, fieldErrors(t, err).Has("events[0].max_participants"), "%v", v)
	}
}

func TestParseCreateRequest_WholeFloatIsInteger(t *testing.T) {
	in, err := ParseCreateRequest([]byte(`{"name":"Cup","events":[{"name":"Q","entry_type":"invite","match_format":"round_robin",
		"matches_per_event":3.0,"scheduled_date":"2025-05-10","entry_start":"2025-04-01T10:00","entry_end":"2025-04-02T10:00",
		"checkin_start":"2025-04-02T10:00","checkin_end":"2025-04-02T11:00"}]}`))
	require.NoError(t, err)
	assert.Equal(t, 3, in.Events[0].MatchesPerEvent)
	assert.Nil(t, in.Events[0].Rules)
}

func TestParseCreateRequest_Category(t *testing.T) {
	_, err := ParseCreateRequest(body(t, map[string]any{"name": "Cup", "is_boys": false, "is_girls": false, "events": []any{validEvent()}}))
	assert.True(t, fieldErrors(t, err).Has("is_girls"))

	in, err := ParseCreateRequest(body(t, map[string]any{"name": "Cup", "is_boys": false, "events": []any{validEvent()}}))
	require.NoError(t, err)
	assert.False(t, in.IsBoys)
	assert.True(t, in.IsGirls)
}

func TestParseCreateRequest_NotAnObject(t *testing.T) {
	for _, raw := range []string{"", "null", "[]", "{", `"x"`} {
		_, err := ParseCreateRequest([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestParseUpdateRequest(t *testing.T) {
	id := uuid.New()
	kept := validEvent()
	kept["id"] = id.String()

	in, err := ParseUpdateRequest(body(t, map[string]any{
		"name":   "Cup",
		"status": "open",
		"events": []any{kept, validEvent()},
	}))
	require.NoError(t, err)

	assert.Equal(t, tournament.StatusOpen, in.Status)
	require.Len(t, in.Events, 2)
	require.NotNil(t, in.Events[0].ID)
	assert.Equal(t, id, *in.Events[0].ID)
	assert.Nil(t, in.Events[1].ID)
}

func TestParseUpdateRequest_Rejections(t *testing.T) {
	id := uuid.NewString()
	dupA, dupB := validEvent(), validEvent()
	dupA["id"], dupB["id"] = id, id
	badID := validEvent()
	badID["id"] = "not-a-uuid"

	tests := []struct {
		name    string
		payload map[string]any
		path    string
	}{
		{"missing status", map[string]any{"name": "Cup", "events": []any{validEvent()}}, "status"},
		{"unknown status", map[string]any{"name": "Cup", "status": "archived", "events": []any{validEvent()}}, "status"},
		{"zero events", map[string]any{"name": "Cup", "status": "draft", "events": []any{}}, "events"},
		{"duplicate id", map[string]any{"name": "Cup", "status": "draft", "events": []any{dupA, dupB}}, "events[1].id"},
		{"malformed id", map[string]any{"name": "Cup", "status": "draft", "events": []any{badID}}, "events[0].id"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseUpdateRequest(body(t, tc.payload))
			assert.True(t, fieldErrors(t, err).Has(tc.path))
		})
	}
}
