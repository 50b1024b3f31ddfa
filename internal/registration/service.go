// Package registration handles owner lookup-or-create and patient intake.
package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"vetclinic/internal/clinic"
	"vetclinic/internal/db"
	"vetclinic/internal/storage"
)

type Service struct {
	pool     *db.Pool
	owners   *storage.OwnerRepository
	patients *storage.PatientRepository
	logger   *slog.Logger
}

func New(pool *db.Pool, owners *storage.OwnerRepository, patients *storage.PatientRepository, logger *slog.Logger) *Service {
	return &Service{
		pool:     pool,
		owners:   owners,
		patients: patients,
		logger:   logger,
	}
}

// Register creates a patient, reusing the owner with the given phone or
// creating one if the phone is new. When the phone belongs to an owner with
// a different name the existing owner is still reused; offering the user the
// choice between reusing and entering another phone is the caller's job,
// before calling Register.
func (s *Service) Register(ctx context.Context, ownerFullName, ownerPhone, patientName, species string) (clinic.Patient, error) {
	owner, found, err := s.owners.FindByPhone(ctx, ownerPhone)
	if err != nil {
		return clinic.Patient{}, storeErr("find owner", err)
	}

	patient, err := s.register(ctx, owner, found, ownerFullName, ownerPhone, patientName, species)
	if err != nil && storage.IsUniqueViolation(err) {
		// Another session created this phone between our lookup and insert.
		// Re-read and attach the patient to the winner's owner row.
		owner, found, err = s.owners.FindByPhone(ctx, ownerPhone)
		if err != nil {
			return clinic.Patient{}, storeErr("re-find owner", err)
		}
		if !found {
			return clinic.Patient{}, storeErr("re-find owner", fmt.Errorf("owner with phone %s vanished", ownerPhone))
		}
		patient, err = s.register(ctx, owner, true, ownerFullName, ownerPhone, patientName, species)
	}
	if err != nil {
		return clinic.Patient{}, storeErr("register patient", err)
	}

	s.logger.Info("patient registered",
		"patient_id", patient.ID,
		"owner_id", patient.OwnerID)
	return patient, nil
}

func (s *Service) register(ctx context.Context, owner clinic.Owner, found bool, ownerFullName, ownerPhone, patientName, species string) (clinic.Patient, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return clinic.Patient{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ownerID := owner.ID
	if !found {
		ownerID, err = s.owners.Insert(ctx, tx, ownerFullName, ownerPhone)
		if err != nil {
			return clinic.Patient{}, err
		}
	}

	patientID, err := s.patients.Insert(ctx, tx, ownerID, patientName, species)
	if err != nil {
		return clinic.Patient{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return clinic.Patient{}, err
	}

	return clinic.Patient{
		ID:      patientID,
		OwnerID: ownerID,
		Name:    patientName,
		Species: species,
	}, nil
}

// OwnerByPhone lets the caller detect an existing owner before registering,
// e.g. to confirm a name mismatch with the user.
func (s *Service) OwnerByPhone(ctx context.Context, phone string) (clinic.Owner, bool, error) {
	owner, found, err := s.owners.FindByPhone(ctx, phone)
	if err != nil {
		return clinic.Owner{}, false, storeErr("find owner", err)
	}
	return owner, found, nil
}

// ListPatients returns every patient with owner details, ordered by id.
func (s *Service) ListPatients(ctx context.Context) ([]clinic.PatientSummary, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, storeErr("list patients", err)
	}
	return patients, nil
}

// PatientCard returns the medical card header for one patient. Returns
// clinic.ErrNotFound for an unknown id.
func (s *Service) PatientCard(ctx context.Context, patientID int64) (clinic.PatientSummary, error) {
	card, err := s.patients.Get(ctx, patientID)
	if err != nil {
		if errors.Is(err, clinic.ErrNotFound) {
			return clinic.PatientSummary{}, err
		}
		return clinic.PatientSummary{}, storeErr("load patient card", err)
	}
	return card, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, clinic.ErrStoreUnavailable, err)
}
