package registration_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"

	"vetclinic/internal/clinic"
	"vetclinic/internal/db"
	"vetclinic/internal/registration"
	"vetclinic/internal/storage"
)

func setup(t *testing.T) (*registration.Service, *db.Pool) {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(pool.Close)

	schema, err := os.ReadFile("../../migrations/0001_init.sql")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := registration.New(pool, storage.NewOwnerRepository(pool), storage.NewPatientRepository(pool), logger)
	return svc, pool
}

func uniquePhone() string {
	return fmt.Sprintf("+7%010d", time.Now().UnixNano()%10000000000)
}

func TestRegister_ReusesOwnerByPhone(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	phone := uniquePhone()

	first, err := svc.Register(ctx, "Anna Petrova", phone, "Murka", "cat")
	if err != nil {
		t.Fatalf("first registration: %v", err)
	}
	second, err := svc.Register(ctx, "Anna Petrova", phone, "Rex", "dog")
	if err != nil {
		t.Fatalf("second registration: %v", err)
	}

	if first.OwnerID != second.OwnerID {
		t.Fatalf("expected shared owner, got %d and %d", first.OwnerID, second.OwnerID)
	}
	if first.ID == second.ID {
		t.Fatal("both registrations returned the same patient id")
	}
}

func TestRegister_NameMismatchDoesNotCreateSecondOwner(t *testing.T) {
	svc, pool := setup(t)
	ctx := context.Background()
	phone := uniquePhone()

	if _, err := svc.Register(ctx, "Anna Petrova", phone, "Murka", "cat"); err != nil {
		t.Fatalf("first registration: %v", err)
	}
	// The service reuses the existing owner; asking the user whether to
	// reuse or pick another phone happens in the menu, before this call.
	p, err := svc.Register(ctx, "Not Anna", phone, "Sharik", "dog")
	if err != nil {
		t.Fatalf("second registration: %v", err)
	}

	var ownerCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM owners WHERE phone = $1`, phone).Scan(&ownerCount); err != nil {
		t.Fatalf("count owners: %v", err)
	}
	if ownerCount != 1 {
		t.Fatalf("expected a single owner for the phone, got %d", ownerCount)
	}

	var ownerName string
	if err := pool.QueryRow(ctx, `SELECT full_name FROM owners WHERE id = $1`, p.OwnerID).Scan(&ownerName); err != nil {
		t.Fatalf("read owner: %v", err)
	}
	if ownerName != "Anna Petrova" {
		t.Fatalf("existing owner was renamed to %q", ownerName)
	}
}

func TestOwnerByPhone(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	phone := uniquePhone()

	_, found, err := svc.OwnerByPhone(ctx, phone)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if found {
		t.Fatal("unregistered phone reported as existing")
	}

	if _, err := svc.Register(ctx, "Ivan Sidorov", phone, "Kesha", "parrot"); err != nil {
		t.Fatalf("register: %v", err)
	}

	owner, found, err := svc.OwnerByPhone(ctx, phone)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !found || owner.FullName != "Ivan Sidorov" {
		t.Fatalf("expected Ivan Sidorov, got found=%v owner=%+v", found, owner)
	}
}

func TestPatientCard(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	phone := uniquePhone()

	p, err := svc.Register(ctx, "Olga Ivanova", phone, "Pushok", "rabbit")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	card, err := svc.PatientCard(ctx, p.ID)
	if err != nil {
		t.Fatalf("patient card: %v", err)
	}
	if card.Name != "Pushok" || card.OwnerName != "Olga Ivanova" || card.OwnerPhone != phone {
		t.Fatalf("wrong card: %+v", card)
	}

	_, err = svc.PatientCard(ctx, 1<<60)
	if !errors.Is(err, clinic.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListPatients_IncludesRegistered(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	p, err := svc.Register(ctx, "List Owner", uniquePhone(), "Tuzik", "dog")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	patients, err := svc.ListPatients(ctx)
	if err != nil {
		t.Fatalf("list patients: %v", err)
	}
	for i, sum := range patients {
		if i > 0 && patients[i].ID < patients[i-1].ID {
			t.Fatal("patients out of id order")
		}
		if sum.ID == p.ID {
			return
		}
	}
	t.Fatal("registered patient missing from the list")
}
