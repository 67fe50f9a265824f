package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jirorimi/cup-registration/internal/tournament"
)

const (
	maxNameLength      = 100
	minMatchesPerEvent = 1
	maxMatchesPerEvent = 10
)

var errNotObject = Errors{{Message: "request body must be a JSON object"}}

func decodeObject(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return nil, errNotObject
	}
	return obj, nil
}

// ParseCreateRequest validates a tournament creation body.
func ParseCreateRequest(body []byte) (*tournament.CreateInput, error) {
	obj, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	return CreateRequest(obj)
}

// ParseUpdateRequest validates a full tournament update body.
func ParseUpdateRequest(body []byte) (*tournament.UpdateInput, error) {
	obj, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	return UpdateRequest(obj)
}

func CreateRequest(obj map[string]any) (*tournament.CreateInput, error) {
	c := &checker{}
	in := c.tournament(obj, false)
	if err := c.err(); err != nil {
		return nil, err
	}
	return &in, nil
}

// UpdateRequest is CreateRequest plus a tournament status and optional event IDs.
func UpdateRequest(obj map[string]any) (*tournament.UpdateInput, error) {
	c := &checker{}
	base := c.tournament(obj, true)
	status := oneOf(c, obj, "status", "status", tournament.Statuses)
	if err := c.err(); err != nil {
		return nil, err
	}
	return &tournament.UpdateInput{CreateInput: base, Status: status}, nil
}

func (c *checker) tournament(obj map[string]any, withIDs bool) tournament.CreateInput {
	in := tournament.CreateInput{
		Name:    c.text(obj, "name", "name", "tournament name", maxNameLength),
		IsBoys:  c.optionalBool(obj, "is_boys", "is_boys", true),
		IsGirls: c.optionalBool(obj, "is_girls", "is_girls", true),
	}
	if !in.IsBoys && !in.IsGirls {
		c.add("is_girls", "select at least one category")
	}

	raw, ok := obj["events"]
	if !ok || raw == nil {
		c.add("events", "at least one event is required")
		return in
	}
	list, ok := raw.([]any)
	if !ok {
		c.add("events", "must be a list")
		return in
	}
	if len(list) == 0 {
		c.add("events", "at least one event is required")
		return in
	}

	seen := make(map[uuid.UUID]bool)
	for i, item := range list {
		path := fmt.Sprintf("events[%d]", i)
		evObj, ok := item.(map[string]any)
		if !ok {
			c.add(path, "must be an object")
			continue
		}
		ev := c.event(evObj, path)
		if withIDs {
			ev.ID = c.eventID(evObj, path, seen)
		}
		in.Events = append(in.Events, ev)
	}
	return in
}

func (c *checker) eventID(obj map[string]any, path string, seen map[uuid.UUID]bool) *uuid.UUID {
	raw, ok := obj["id"]
	if !ok || raw == nil {
		return nil
	}
	path = child(path, "id")
	s, ok := raw.(string)
	if !ok {
		c.add(path, "must be a valid UUID")
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		c.add(path, "must be a valid UUID")
		return nil
	}
	if seen[id] {
		c.add(path, "event is listed more than once")
		return nil
	}
	seen[id] = true
	return &id
}

func (c *checker) event(obj map[string]any, path string) tournament.EventInput {
	ev := tournament.EventInput{
		Name:            c.text(obj, "name", child(path, "name"), "event name", maxNameLength),
		EntryType:       oneOf(c, obj, "entry_type", child(path, "entry_type"), tournament.EntryTypes),
		MatchFormat:     oneOf(c, obj, "match_format", child(path, "match_format"), tournament.MatchFormats),
		MatchesPerEvent: c.intRange(obj, "matches_per_event", child(path, "matches_per_event"), minMatchesPerEvent, maxMatchesPerEvent),
		MaxParticipants: c.optionalCount(obj, "max_participants", child(path, "max_participants")),
		ScheduledDate:   c.date(obj, "scheduled_date", child(path, "scheduled_date"), "scheduled date"),
	}

	var entryStartAt, entryEndAt, checkinStartAt, checkinEndAt time.Time
	var okEntryStart, okEntryEnd, okCheckinStart, okCheckinEnd bool
	ev.EntryStart, entryStartAt, okEntryStart = c.window(obj, "entry_start", child(path, "entry_start"), "entry start")
	ev.EntryEnd, entryEndAt, okEntryEnd = c.window(obj, "entry_end", child(path, "entry_end"), "entry end")
	ev.CheckinStart, checkinStartAt, okCheckinStart = c.window(obj, "checkin_start", child(path, "checkin_start"), "check-in start")
	ev.CheckinEnd, checkinEndAt, okCheckinEnd = c.window(obj, "checkin_end", child(path, "checkin_end"), "check-in end")

	// entry_start < entry_end <= checkin_start < checkin_end; back-to-back windows are allowed.
	if okEntryStart && okEntryEnd && !entryStartAt.Before(entryEndAt) {
		c.add(child(path, "entry_end"), "entry must close after it opens")
	}
	if okEntryEnd && okCheckinStart && checkinStartAt.Before(entryEndAt) {
		c.add(child(path, "checkin_start"), "check-in cannot open before entry closes")
	}
	if okCheckinStart && okCheckinEnd && !checkinStartAt.Before(checkinEndAt) {
		c.add(child(path, "checkin_end"), "check-in must close after it opens")
	}

	ev.Rules = c.optionalText(obj, "rules", child(path, "rules"))
	return ev
}
