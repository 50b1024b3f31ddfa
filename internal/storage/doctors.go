package storage

import (
	"context"

	"github.com/jackc/pgx/v5"

	"vetclinic/internal/clinic"
	"vetclinic/internal/db"
)

// DoctorRepository reads doctors only; they are reference data maintained
// outside this application.
type DoctorRepository struct {
	pool *db.Pool
}

func NewDoctorRepository(pool *db.Pool) *DoctorRepository {
	return &DoctorRepository{pool: pool}
}

func (r *DoctorRepository) List(ctx context.Context) ([]clinic.Doctor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, full_name
		FROM doctors
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []clinic.Doctor
	for rows.Next() {
		var d clinic.Doctor
		if err := rows.Scan(&d.ID, &d.FullName); err != nil {
			return nil, err
		}
		doctors = append(doctors, d)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return doctors, nil
}

func (r *DoctorRepository) Exists(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM doctors WHERE id = $1)
	`, id).Scan(&exists)
	return exists, err
}
