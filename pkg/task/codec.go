package task

import (
	"encoding/json"
	"time"
)

// Encode serialises tasks as a JSON array of task records.
func Encode(ts []Task) ([]byte, error) {
	if ts == nil {
		ts = []Task{}
	}
	return json.Marshal(ts)
}

// Decode parses a JSON array of task records. Only a payload that is not an
// array at all is an error. Entries that are not objects or carry no string
// text are skipped; other fields with the wrong shape fall back to their
// defaults.
func Decode(bs []byte, now time.Time) ([]Task, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(bs, &raw); err != nil {
		return nil, err
	}
	out := make([]Task, 0, len(raw))
	for _, r := range raw {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(r, &fields); err != nil || fields == nil {
			continue
		}
		t, ok := decodeRecord(fields, now)
		if !ok {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// decodeRecord reports false when the record has no usable text.
func decodeRecord(fields map[string]json.RawMessage, now time.Time) (Task, bool) {
	t := Task{CreatedAt: now}
	if !field(fields, "text", &t.Text) {
		return t, false
	}

	var id string
	if field(fields, "id", &id) && id != "" {
		t.ID = ID(id)
	} else {
		t.ID = NewID()
	}
	field(fields, "inEdit", &t.InEdit)

	var created time.Time
	if field(fields, "createdAt", &created) && !created.IsZero() {
		t.CreatedAt = created
	}
	var edited time.Time
	if field(fields, "editedAt", &edited) && !edited.IsZero() {
		t.EditedAt = &edited
	}
	return t, true
}

// field decodes fields[key] into v and reports whether it succeeded. v is
// left untouched on failure.
func field(fields map[string]json.RawMessage, key string, v interface{}) bool {
	bs, ok := fields[key]
	if !ok || string(bs) == "null" {
		return false
	}
	switch p := v.(type) {
	case *string:
		var s string
		if err := json.Unmarshal(bs, &s); err != nil {
			return false
		}
		*p = s
	case *bool:
		var b bool
		if err := json.Unmarshal(bs, &b); err != nil {
			return false
		}
		*p = b
	case *time.Time:
		var s string
		if err := json.Unmarshal(bs, &s); err != nil {
			return false
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return false
		}
		*p = parsed
	default:
		return false
	}
	return true
}
