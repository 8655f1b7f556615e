package application

import (
	"strings"
	"testing"

	"github.com/example/event-registry/internal/persistence"
)

func TestResourceURL(t *testing.T) {
	cases := []struct {
		kind EntityKind
		id   string
		want string
	}{
		{KindHighSchool, "hs-1", "/index/highschools/hs-1"},
		{KindParticipant, "p-1", "/index/participants/p-1"},
		{KindPresenter, "pr-1", "/index/presenters/pr-1"},
		{KindRoom, "r-1", "/index/rooms/r-1"},
		{KindSession, "s-1", "/index/sessions/s-1"},
		{KindTopic, "t-1", "/index/topics/t-1"},
		{KindSchedule, "sch-1", "/index/schedules/sch-1"},
	}
	for _, tc := range cases {
		if got := ResourceURL(tc.kind, tc.id); got != tc.want {
			t.Errorf("ResourceURL(%s, %s) = %q, want %q", tc.kind, tc.id, got, tc.want)
		}
	}
}

func TestPersonName(t *testing.T) {
	if got := PersonName("Rivera", "Sam"); got != "Rivera, Sam" {
		t.Errorf("PersonName = %q", got)
	}
}

func TestSessionTimeRange(t *testing.T) {
	session := persistence.Session{StartTime: "08:00", EndTime: "09:00"}
	if got := SessionTimeRange(session); got != "08:00 - 09:00" {
		t.Errorf("SessionTimeRange = %q", got)
	}
}

func TestRequireText(t *testing.T) {
	t.Run("records empty fields", func(t *testing.T) {
		vErr := &ValidationError{}
		requireText(vErr, "title", "   ", maxTextLen)
		if msg := vErr.FieldErrors["title"]; msg != "title must not be empty" {
			t.Errorf("unexpected message %q", msg)
		}
	})

	t.Run("length checked before escaping", func(t *testing.T) {
		vErr := &ValidationError{}
		// Raw value sits at the limit but expands well past it once escaped.
		value := strings.Repeat("&", maxTextLen)
		got := requireText(vErr, "title", value, maxTextLen)
		if vErr.HasErrors() {
			t.Fatalf("raw value at the limit should pass: %v", vErr.FieldErrors)
		}
		if len(got) <= maxTextLen {
			t.Fatalf("escaped value should exceed raw limit, got %d", len(got))
		}
	})

	t.Run("first message per field wins", func(t *testing.T) {
		vErr := &ValidationError{}
		vErr.add("name", "first")
		vErr.add("name", "second")
		if vErr.FieldErrors["name"] != "first" {
			t.Errorf("expected first message kept, got %q", vErr.FieldErrors["name"])
		}
	})
}

func TestRequireAlphanumeric(t *testing.T) {
	t.Run("accepts letters and digits", func(t *testing.T) {
		vErr := &ValidationError{}
		requireAlphanumeric(vErr, "first_name", "Sam2")
		if vErr.HasErrors() {
			t.Fatalf("unexpected errors: %v", vErr.FieldErrors)
		}
	})

	t.Run("flags punctuation", func(t *testing.T) {
		vErr := &ValidationError{}
		requireAlphanumeric(vErr, "first_name", "Sam O'Neil")
		if !vErr.HasErrors() {
			t.Fatal("expected error for punctuation")
		}
	})
}
