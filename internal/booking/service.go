// Package booking validates and persists appointments and answers
// availability queries.
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"vetclinic/internal/availability"
	"vetclinic/internal/clinic"
	"vetclinic/internal/db"
	"vetclinic/internal/storage"
)

type Service struct {
	pool     *db.Pool
	appts    *storage.AppointmentRepository
	patients *storage.PatientRepository
	doctors  *storage.DoctorRepository
	logger   *slog.Logger
}

func New(pool *db.Pool, appts *storage.AppointmentRepository, patients *storage.PatientRepository, doctors *storage.DoctorRepository, logger *slog.Logger) *Service {
	return &Service{
		pool:     pool,
		appts:    appts,
		patients: patients,
		doctors:  doctors,
		logger:   logger,
	}
}

// Create validates and persists one appointment. Checks run in order and
// fail fast: the patient must exist (clinic.ErrUnknownPatient), the doctor
// must exist (clinic.ErrUnknownDoctor), and the doctor must have no
// appointment overlapping [start, start+30m) under half-open semantics
// (clinic.ErrSlotConflict).
//
// Check and insert run in one transaction, and the appointments table
// carries an exclusion constraint on the doctor's interval, so a concurrent
// booking that slips past the check still loses at insert and surfaces as
// ErrSlotConflict. No working-window rule is applied here: a start outside
// the generated 09:00-16:30 slots is accepted as long as it does not
// overlap, matching the slot engine's documented boundary.
func (s *Service) Create(ctx context.Context, patientID, doctorID int64, start time.Time) (clinic.Appointment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return clinic.Appointment{}, storeErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ok, err := s.patients.Exists(ctx, tx, patientID)
	if err != nil {
		return clinic.Appointment{}, storeErr("check patient", err)
	}
	if !ok {
		return clinic.Appointment{}, clinic.ErrUnknownPatient
	}

	ok, err = s.doctors.Exists(ctx, tx, doctorID)
	if err != nil {
		return clinic.Appointment{}, storeErr("check doctor", err)
	}
	if !ok {
		return clinic.Appointment{}, clinic.ErrUnknownDoctor
	}

	end := start.Add(clinic.AppointmentDuration)
	busy, err := s.appts.HasOverlap(ctx, tx, doctorID, start, end)
	if err != nil {
		return clinic.Appointment{}, storeErr("check overlap", err)
	}
	if busy {
		return clinic.Appointment{}, clinic.ErrSlotConflict
	}

	id, err := s.appts.Insert(ctx, tx, patientID, doctorID, start)
	if err != nil {
		if storage.IsConflict(err) {
			// Lost the race to a concurrent booking.
			return clinic.Appointment{}, clinic.ErrSlotConflict
		}
		return clinic.Appointment{}, storeErr("insert appointment", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if storage.IsConflict(err) {
			return clinic.Appointment{}, clinic.ErrSlotConflict
		}
		return clinic.Appointment{}, storeErr("commit", err)
	}

	s.logger.Info("appointment created",
		"appointment_id", id,
		"patient_id", patientID,
		"doctor_id", doctorID,
		"start", start.Format(time.RFC3339))

	return clinic.Appointment{
		ID:        id,
		PatientID: patientID,
		DoctorID:  doctorID,
		DateTime:  start,
	}, nil
}

// Cancel deletes an appointment and reports whether one was deleted.
// Cancelling an id that does not exist returns false, not an error.
func (s *Service) Cancel(ctx context.Context, appointmentID int64) (bool, error) {
	deleted, err := s.appts.Delete(ctx, appointmentID)
	if err != nil {
		return false, storeErr("delete appointment", err)
	}
	if deleted > 0 {
		s.logger.Info("appointment cancelled", "appointment_id", appointmentID)
	}
	return deleted > 0, nil
}

// ListUpcoming returns every appointment from now on, chronologically,
// with patient and doctor names for display.
func (s *Service) ListUpcoming(ctx context.Context) ([]clinic.AppointmentView, error) {
	appts, err := s.appts.ListUpcoming(ctx, time.Now())
	if err != nil {
		return nil, storeErr("list upcoming", err)
	}
	return appts, nil
}

// ListForPatient returns the patient's appointments, past and future,
// chronologically.
func (s *Service) ListForPatient(ctx context.Context, patientID int64) ([]clinic.PatientVisit, error) {
	visits, err := s.appts.ListForPatient(ctx, patientID)
	if err != nil {
		return nil, storeErr("list patient appointments", err)
	}
	return visits, nil
}

// AvailableSlots returns the doctor's still-bookable slots on day. The busy
// set is read from the store on every call.
func (s *Service) AvailableSlots(ctx context.Context, doctorID int64, day time.Time) ([]time.Time, error) {
	busy, err := s.appts.BusyStarts(ctx, doctorID, day)
	if err != nil {
		return nil, storeErr("list busy slots", err)
	}
	return availability.AvailableSlots(availability.DailySlots(day), busy, day, time.Now()), nil
}

// AvailableDates returns the days currently offered for booking.
func (s *Service) AvailableDates() []time.Time {
	return availability.HorizonDates(time.Now())
}

func (s *Service) Doctors(ctx context.Context) ([]clinic.Doctor, error) {
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return nil, storeErr("list doctors", err)
	}
	return doctors, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, clinic.ErrStoreUnavailable, err)
}
