package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"vetclinic/internal/clinic"
	"vetclinic/internal/db"
)

type AppointmentRepository struct {
	pool *db.Pool
}

func NewAppointmentRepository(pool *db.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func (r *AppointmentRepository) Insert(ctx context.Context, tx pgx.Tx, patientID, doctorID int64, start time.Time) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO appointments (patient_id, doctor_id, date_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`, patientID, doctorID, start).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// HasOverlap reports whether the doctor already has an appointment whose
// half-open interval intersects [start, end). Touching endpoints do not
// count as overlap.
func (r *AppointmentRepository) HasOverlap(ctx context.Context, tx pgx.Tx, doctorID int64, start, end time.Time) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1
			FROM appointments
			WHERE doctor_id = $1
			  AND date_time < $3
			  AND date_time + INTERVAL '30 minutes' > $2
		)
	`, doctorID, start, end).Scan(&exists)
	return exists, err
}

// BusyStarts returns the booked start times for a doctor within the given
// calendar day. Fetched fresh on every call; availability must never be
// served from a stale snapshot.
func (r *AppointmentRepository) BusyStarts(ctx context.Context, doctorID int64, day time.Time) ([]time.Time, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	rows, err := r.pool.Query(ctx, `
		SELECT date_time
		FROM appointments
		WHERE doctor_id = $1
		  AND date_time >= $2
		  AND date_time < $3
	`, doctorID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var starts []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		starts = append(starts, t)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return starts, nil
}

// ListUpcoming returns appointments starting at or after now, joined with
// patient and doctor names, in chronological order.
func (r *AppointmentRepository) ListUpcoming(ctx context.Context, now time.Time) ([]clinic.AppointmentView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, p.name, d.full_name, a.date_time
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		JOIN doctors d ON a.doctor_id = d.id
		WHERE a.date_time >= $1
		ORDER BY a.date_time
	`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []clinic.AppointmentView
	for rows.Next() {
		var a clinic.AppointmentView
		if err := rows.Scan(&a.ID, &a.PatientName, &a.DoctorName, &a.DateTime); err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return appts, nil
}

// ListForPatient returns a patient's whole visit history, past and future,
// in chronological order.
func (r *AppointmentRepository) ListForPatient(ctx context.Context, patientID int64) ([]clinic.PatientVisit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, d.full_name, a.date_time
		FROM appointments a
		JOIN doctors d ON a.doctor_id = d.id
		WHERE a.patient_id = $1
		ORDER BY a.date_time
	`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []clinic.PatientVisit
	for rows.Next() {
		var v clinic.PatientVisit
		if err := rows.Scan(&v.AppointmentID, &v.DoctorName, &v.DateTime); err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return visits, nil
}

// Delete removes an appointment by id and returns how many rows went away.
func (r *AppointmentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM appointments
		WHERE id = $1
	`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
