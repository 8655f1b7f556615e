package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/event-registry/internal/persistence/memory"
)

func newPresenterFixture(t *testing.T) (*PresenterService, *memory.Storage) {
	t.Helper()
	storage := memory.NewStorage()
	service := NewPresenterService(storage, sequentialIDs("pres"), discardLogger())
	return service, storage
}

func TestPresenterService_Create(t *testing.T) {
	t.Run("phones and email are optional", func(t *testing.T) {
		service, storage := newPresenterFixture(t)

		presenter, err := service.Create(context.Background(), PresenterInput{
			LastName:   "Rivera",
			FirstName:  "Sam",
			Occupation: "Engineer",
		})
		if err != nil {
			t.Fatalf("create without contact details failed: %v", err)
		}
		stored, err := storage.GetPresenter(context.Background(), presenter.ID)
		if err != nil {
			t.Fatalf("stored presenter missing: %v", err)
		}
		if stored.MainPhone != "" || stored.MobilePhone != "" || stored.Email != "" {
			t.Fatalf("empty contact fields should stay empty, got %+v", stored)
		}
	})

	t.Run("keeps contact details when provided", func(t *testing.T) {
		service, _ := newPresenterFixture(t)

		presenter, err := service.Create(context.Background(), PresenterInput{
			LastName:    "Rivera",
			FirstName:   "Sam",
			Occupation:  "Engineer",
			MainPhone:   "5551234",
			MobilePhone: "5555678",
			Email:       "sam@example.com",
		})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if presenter.MainPhone != "5551234" || presenter.Email != "sam@example.com" {
			t.Fatalf("contact details lost: %+v", presenter)
		}
	})

	t.Run("collects every invalid field", func(t *testing.T) {
		service, _ := newPresenterFixture(t)

		_, err := service.Create(context.Background(), PresenterInput{
			LastName:  "O'Neil",
			MainPhone: "55512345678",
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"last_name", "first_name", "occupation", "main_phone"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Errorf("expected error for %q, got %v", field, vErr.FieldErrors)
			}
		}
		if _, ok := vErr.FieldErrors["email"]; ok {
			t.Errorf("absent email must not be flagged: %v", vErr.FieldErrors)
		}
	})
}

func TestPresenterService_Update(t *testing.T) {
	service, _ := newPresenterFixture(t)

	created, err := service.Create(context.Background(), PresenterInput{
		LastName:   "Rivera",
		FirstName:  "Sam",
		Occupation: "Engineer",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := service.Update(context.Background(), created.ID, PresenterInput{
		LastName:   "Rivera",
		FirstName:  "Sam",
		Occupation: "Scientist",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("expected id preserved, got %q", updated.ID)
	}
	if updated.Occupation != "Scientist" {
		t.Fatalf("expected updated occupation, got %q", updated.Occupation)
	}
}
