package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/event-registry/internal/persistence"
	"github.com/example/event-registry/internal/persistence/memory"
)

func newParticipantFixture(t *testing.T) (*ParticipantService, *memory.Storage, time.Time) {
	t.Helper()
	storage := memory.NewStorage()
	registered := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	now := func() time.Time { return registered }
	service := NewParticipantService(storage, storage, sequentialIDs("part"), now, discardLogger())
	return service, storage, registered
}

func validParticipantInput() ParticipantInput {
	return ParticipantInput{
		LastName:     "Rivera",
		FirstName:    "Sam",
		Address:      "12 Elm Street",
		Email:        "sam@example.com",
		HighSchoolID: "hs-1",
	}
}

func TestParticipantService_Register(t *testing.T) {
	t.Run("stamps registration time from the clock", func(t *testing.T) {
		service, storage, registered := newParticipantFixture(t)

		participant, err := service.Register(context.Background(), validParticipantInput())
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if !participant.RegisteredAt.Equal(registered) {
			t.Fatalf("expected registration time %v, got %v", registered, participant.RegisteredAt)
		}
		if _, err := storage.GetParticipant(context.Background(), participant.ID); err != nil {
			t.Fatalf("stored participant missing: %v", err)
		}
	})

	t.Run("collects every invalid field", func(t *testing.T) {
		service, _, _ := newParticipantFixture(t)

		_, err := service.Register(context.Background(), ParticipantInput{
			LastName:  "O'Neil",
			FirstName: "",
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"last_name", "first_name", "address", "email", "high_school"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Errorf("expected error for %q, got %v", field, vErr.FieldErrors)
			}
		}
	})

	t.Run("accepts plain names despite escaping", func(t *testing.T) {
		service, _, _ := newParticipantFixture(t)

		input := validParticipantInput()
		input.LastName = "  Rivera  "
		if _, err := service.Register(context.Background(), input); err != nil {
			t.Fatalf("trimmed name should pass: %v", err)
		}
	})
}

func TestParticipantService_Update(t *testing.T) {
	service, storage, registered := newParticipantFixture(t)

	created, err := service.Create(context.Background(), validParticipantInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	input := validParticipantInput()
	input.Address = "34 Oak Avenue"
	updated, err := service.Update(context.Background(), created.ID, input)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("expected id preserved, got %q", updated.ID)
	}
	if !updated.RegisteredAt.Equal(registered) {
		t.Fatalf("registration time must survive updates, got %v", updated.RegisteredAt)
	}

	stored, err := storage.GetParticipant(context.Background(), created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Address != "34 Oak Avenue" {
		t.Fatalf("expected updated address, got %q", stored.Address)
	}
}

func TestParticipantService_Get(t *testing.T) {
	t.Run("resolves the high school", func(t *testing.T) {
		service, storage, _ := newParticipantFixture(t)
		if err := storage.CreateHighSchool(context.Background(), persistence.HighSchool{ID: "hs-1", Name: "Central High"}); err != nil {
			t.Fatal(err)
		}
		created, err := service.Create(context.Background(), validParticipantInput())
		if err != nil {
			t.Fatal(err)
		}

		detail, err := service.Get(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if detail.HighSchool == nil || detail.HighSchool.Name != "Central High" {
			t.Fatalf("expected resolved school, got %+v", detail.HighSchool)
		}
	})

	t.Run("tolerates a deleted high school", func(t *testing.T) {
		service, storage, _ := newParticipantFixture(t)
		if err := storage.CreateHighSchool(context.Background(), persistence.HighSchool{ID: "hs-1", Name: "Central High"}); err != nil {
			t.Fatal(err)
		}
		created, err := service.Create(context.Background(), validParticipantInput())
		if err != nil {
			t.Fatal(err)
		}
		if err := storage.DeleteHighSchool(context.Background(), "hs-1"); err != nil {
			t.Fatal(err)
		}

		detail, err := service.Get(context.Background(), created.ID)
		if err != nil {
			t.Fatalf("dangling school must not fail the read: %v", err)
		}
		if detail.HighSchool != nil {
			t.Fatalf("expected nil school, got %+v", detail.HighSchool)
		}
	})

	t.Run("missing participant yields NotFoundError", func(t *testing.T) {
		service, _, _ := newParticipantFixture(t)
		_, err := service.Get(context.Background(), "ghost")
		var nfErr *NotFoundError
		if !errors.As(err, &nfErr) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if nfErr.Kind != KindParticipant {
			t.Fatalf("unexpected kind %q", nfErr.Kind)
		}
	})
}
