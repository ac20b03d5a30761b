package application_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"winsbygroup.com/appmachineid/internal/application"
	"winsbygroup.com/appmachineid/internal/machineid"
	"winsbygroup.com/appmachineid/internal/testutil"
)

const demoUUID = "8e9b38ad-0ef8-4b14-894a-83bef002c713"

func TestApplicationLifecycle(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)

	svc := application.NewService(db)

	// -------------------------
	// Create
	// -------------------------
	created, err := svc.Create(ctx, &application.Application{
		AppName:     "  Telemetry Agent ",
		AppUUID:     "{8E9B38AD-0EF8-4B14-894A-83BEF002C713}",
		Description: "reports usage",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if created.ApplicationID == 0 {
		t.Fatalf("expected ApplicationID to be assigned")
	}
	if created.AppName != "Telemetry Agent" {
		t.Errorf("expected trimmed name, got %q", created.AppName)
	}
	if created.AppUUID != demoUUID {
		t.Errorf("expected canonical uuid %q, got %q", demoUUID, created.AppUUID)
	}
	if created.CreatedDate == "" {
		t.Error("expected created date to default")
	}

	// -------------------------
	// Lookups
	// -------------------------
	byName, err := svc.GetByName(ctx, "telemetry agent")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if byName.ApplicationID != created.ApplicationID {
		t.Errorf("expected id %d, got %d", created.ApplicationID, byName.ApplicationID)
	}

	byUUID, err := svc.GetByUUID(ctx, "urn:uuid:"+demoUUID)
	if err != nil {
		t.Fatalf("get by uuid: %v", err)
	}
	if byUUID.AppName != "Telemetry Agent" {
		t.Errorf("expected Telemetry Agent, got %q", byUUID.AppName)
	}

	// -------------------------
	// Update
	// -------------------------
	byName.AppName = "Telemetry"
	if err := svc.Update(ctx, byName); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := svc.Get(ctx, created.ApplicationID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.AppName != "Telemetry" {
		t.Errorf("expected updated name, got %q", got.AppName)
	}

	// -------------------------
	// List
	// -------------------------
	all, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 application, got %d", len(all))
	}

	// -------------------------
	// Delete
	// -------------------------
	if err := svc.Delete(ctx, created.ApplicationID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ApplicationID); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(ctx, created.ApplicationID); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestApplicationCreate_Validation(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	svc := application.NewService(db)

	tests := []struct {
		name string
		app  application.Application
	}{
		{"missing name", application.Application{AppUUID: demoUUID}},
		{"blank name", application.Application{AppName: "   ", AppUUID: demoUUID}},
		{"missing uuid", application.Application{AppName: "App"}},
		{"bad uuid", application.Application{AppName: "App", AppUUID: "not-a-uuid"}},
		{"nil uuid", application.Application{AppName: "App", AppUUID: "00000000-0000-0000-0000-000000000000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := tt.app
			_, err := svc.Create(ctx, &app)
			if !errors.Is(err, application.ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestApplicationGetByUUID_Invalid(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := application.NewService(db)

	_, err := svc.GetByUUID(context.Background(), "not-a-uuid")
	if !errors.Is(err, application.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
	if !errors.Is(err, machineid.ErrInvalidAppID) {
		t.Errorf("expected cause ErrInvalidAppID to be kept, got %v", err)
	}
}

func TestApplicationCreate_Duplicates(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	svc := application.NewService(db)

	if _, err := svc.Create(ctx, &application.Application{AppName: "Agent", AppUUID: demoUUID}); err != nil {
		t.Fatalf("create: %v", err)
	}

	t.Run("same name different case", func(t *testing.T) {
		_, err := svc.Create(ctx, &application.Application{
			AppName: "AGENT",
			AppUUID: "5ffb8744-9446-40d4-984f-3719f4e7dfbe",
		})
		if !errors.Is(err, application.ErrDuplicate) {
			t.Errorf("expected ErrDuplicate, got %v", err)
		}
	})

	t.Run("same uuid", func(t *testing.T) {
		_, err := svc.Create(ctx, &application.Application{
			AppName: "Other",
			AppUUID: demoUUID,
		})
		if !errors.Is(err, application.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
		if !strings.Contains(err.Error(), demoUUID) || !strings.Contains(err.Error(), `"Other"`) {
			t.Errorf("expected name and uuid in message, got %q", err.Error())
		}
	})

	t.Run("update into existing uuid", func(t *testing.T) {
		other, err := svc.Create(ctx, &application.Application{
			AppName: "Second",
			AppUUID: "6ce4047d-4370-4011-a737-e7e6b2d67aec",
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		other.AppUUID = demoUUID
		err = svc.Update(ctx, other)
		if !errors.Is(err, application.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
		if !strings.Contains(err.Error(), demoUUID) {
			t.Errorf("expected uuid in message, got %q", err.Error())
		}
	})
}

func TestNormalizeName(t *testing.T) {
	// "e" + combining acute accent composes to U+00E9
	decomposed := "Cafe\u0301"
	if got := application.NormalizeName(" " + decomposed + " "); got != "Caf\u00e9" {
		t.Errorf("expected NFC form, got %q", got)
	}
}
