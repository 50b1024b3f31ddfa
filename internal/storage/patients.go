package storage

import (
	"context"

	"github.com/jackc/pgx/v5"

	"vetclinic/internal/clinic"
	"vetclinic/internal/db"
)

type PatientRepository struct {
	pool *db.Pool
}

func NewPatientRepository(pool *db.Pool) *PatientRepository {
	return &PatientRepository{pool: pool}
}

func (r *PatientRepository) Insert(ctx context.Context, tx pgx.Tx, ownerID int64, name, species string) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO patients (owner_id, name, species)
		VALUES ($1, $2, $3)
		RETURNING id
	`, ownerID, name, species).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PatientRepository) Exists(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM patients WHERE id = $1)
	`, id).Scan(&exists)
	return exists, err
}

// List returns every patient joined with its owner, ordered by patient id.
func (r *PatientRepository) List(ctx context.Context) ([]clinic.PatientSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.species, o.full_name, o.phone
		FROM patients p
		JOIN owners o ON p.owner_id = o.id
		ORDER BY p.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patients []clinic.PatientSummary
	for rows.Next() {
		var p clinic.PatientSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Species, &p.OwnerName, &p.OwnerPhone); err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return patients, nil
}

// Get returns a single patient joined with its owner, for the medical card
// header. Returns clinic.ErrNotFound when the id is unknown.
func (r *PatientRepository) Get(ctx context.Context, id int64) (clinic.PatientSummary, error) {
	var p clinic.PatientSummary
	err := r.pool.QueryRow(ctx, `
		SELECT p.id, p.name, p.species, o.full_name, o.phone
		FROM patients p
		JOIN owners o ON p.owner_id = o.id
		WHERE p.id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Species, &p.OwnerName, &p.OwnerPhone)
	if IsNotFound(err) {
		return clinic.PatientSummary{}, clinic.ErrNotFound
	}
	if err != nil {
		return clinic.PatientSummary{}, err
	}
	return p, nil
}
