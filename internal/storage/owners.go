// Package storage holds the pgx repositories: one per entity, each scanning
// rows into the named records from the clinic package.
package storage

import (
	"context"

	"github.com/jackc/pgx/v5"

	"vetclinic/internal/clinic"
	"vetclinic/internal/db"
)

type OwnerRepository struct {
	pool *db.Pool
}

func NewOwnerRepository(pool *db.Pool) *OwnerRepository {
	return &OwnerRepository{pool: pool}
}

// FindByPhone looks an owner up by phone, the business key. The second
// return value reports whether one exists.
func (r *OwnerRepository) FindByPhone(ctx context.Context, phone string) (clinic.Owner, bool, error) {
	var o clinic.Owner
	err := r.pool.QueryRow(ctx, `
		SELECT id, full_name, phone
		FROM owners
		WHERE phone = $1
	`, phone).Scan(&o.ID, &o.FullName, &o.Phone)
	if IsNotFound(err) {
		return clinic.Owner{}, false, nil
	}
	if err != nil {
		return clinic.Owner{}, false, err
	}
	return o, true, nil
}

func (r *OwnerRepository) Insert(ctx context.Context, tx pgx.Tx, fullName, phone string) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO owners (full_name, phone)
		VALUES ($1, $2)
		RETURNING id
	`, fullName, phone).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}
