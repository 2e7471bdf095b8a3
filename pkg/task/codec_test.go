package task

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDecode(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("records written by the browser app", func(t *testing.T) {
		is := is.New(t)
		ts, err := Decode([]byte(`[
			{"text":"buy milk","inEdit":false,"createdAt":"2024-04-30T10:15:00.000Z","editedAt":null},
			{"text":"call mum","inEdit":true,"createdAt":"2024-04-30T10:16:00.000Z","editedAt":"2024-04-30T11:00:00.000Z"}
		]`), now)
		is.NoErr(err)
		is.Equal(len(ts), 2)
		is.Equal(ts[0].Text, "buy milk")
		is.True(ts[0].EditedAt == nil)
		is.True(ts[0].ID != "")
		is.Equal(ts[0].CreatedAt, time.Date(2024, 4, 30, 10, 15, 0, 0, time.UTC))
		is.True(ts[1].InEdit)
		is.Equal(*ts[1].EditedAt, time.Date(2024, 4, 30, 11, 0, 0, 0, time.UTC))
	})

	t.Run("malformed fields fall back to defaults", func(t *testing.T) {
		is := is.New(t)
		ts, err := Decode([]byte(`[
			{"id":"x","text":"keep me","inEdit":"yes","createdAt":"yesterday","editedAt":7},
			"not a task",
			null,
			{"id":42,"text":""}
		]`), now)
		is.NoErr(err)
		is.Equal(len(ts), 2)
		is.Equal(ts[0].ID, ID("x"))
		is.Equal(ts[0].Text, "keep me")
		is.True(!ts[0].InEdit)
		is.Equal(ts[0].CreatedAt, now)
		is.True(ts[0].EditedAt == nil)
		is.Equal(ts[1].Text, "")
		is.True(ts[1].ID != "")
		is.Equal(ts[1].CreatedAt, now)
	})

	t.Run("records without text are dropped", func(t *testing.T) {
		is := is.New(t)
		ts, err := Decode([]byte(`[
			{"id":"a","text":42},
			{},
			{"id":"b","text":null},
			{"id":"c","text":"kept"}
		]`), now)
		is.NoErr(err)
		is.Equal(len(ts), 1)
		is.Equal(ts[0].ID, ID("c"))
	})

	t.Run("non array is an error", func(t *testing.T) {
		is := is.New(t)
		for _, in := range []string{`{"text":"a"}`, `[{`, ``, `"tasks"`} {
			_, err := Decode([]byte(in), now)
			is.True(err != nil)
		}
	})
}

func TestEncodeDecode(t *testing.T) {
	is := is.New(t)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	edited := created.Add(time.Minute)
	in := []Task{
		{ID: "a", Text: "one", CreatedAt: created},
		{ID: "b", Text: "two", InEdit: true, CreatedAt: created, EditedAt: &edited},
	}
	bs, err := Encode(in)
	is.NoErr(err)
	out, err := Decode(bs, time.Now())
	is.NoErr(err)
	is.Equal(out[0].ID, ID("a"))
	is.True(out[0].EditedAt == nil)
	is.Equal(*out[1].EditedAt, edited)

	empty, err := Encode(nil)
	is.NoErr(err)
	is.Equal(string(empty), "[]")
}
