package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/example/event-registry/internal/persistence"
)

func TestRebind(t *testing.T) {
	query := "INSERT INTO topics (id, title, description) VALUES (?, ?, ?)"

	t.Run("sqlite keeps question marks", func(t *testing.T) {
		pool := &ConnectionPool{driver: DriverSQLite}
		if got := pool.rebind(query); got != query {
			t.Fatalf("query should be unchanged, got %q", got)
		}
	})

	t.Run("postgres numbers placeholders", func(t *testing.T) {
		pool := &ConnectionPool{driver: DriverPostgres}
		want := "INSERT INTO topics (id, title, description) VALUES ($1, $2, $3)"
		if got := pool.rebind(query); got != want {
			t.Fatalf("rebind = %q, want %q", got, want)
		}
	})
}

func TestInPlaceholders(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "?"},
		{3, "?, ?, ?"},
	}
	for _, tc := range cases {
		if got := inPlaceholders(tc.n); got != tc.want {
			t.Errorf("inPlaceholders(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestErrorMapper_MapError(t *testing.T) {
	mapper := NewErrorMapper()

	cases := []struct {
		name string
		err  error
		want error
	}{
		{"nil stays nil", nil, nil},
		{"no rows", sql.ErrNoRows, persistence.ErrNotFound},
		{"sqlite unique", errors.New("UNIQUE constraint failed: topics.id"), persistence.ErrDuplicate},
		{"postgres unique", errors.New(`pq: duplicate key value violates unique constraint "topics_pkey"`), persistence.ErrDuplicate},
		{"sqlite check", errors.New("CHECK constraint failed: capacity"), persistence.ErrConstraintViolation},
		{"postgres not null", errors.New(`pq: null value in column "title" violates not-null constraint`), persistence.ErrConstraintViolation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mapper.MapError(tc.err)
			if tc.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %v", got)
				}
				return
			}
			if !errors.Is(got, tc.want) {
				t.Fatalf("MapError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}

	t.Run("unknown errors pass through", func(t *testing.T) {
		original := fmt.Errorf("disk I/O error")
		if got := mapper.MapError(original); got != original {
			t.Fatalf("expected passthrough, got %v", got)
		}
	})
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("mysql", "dsn"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
