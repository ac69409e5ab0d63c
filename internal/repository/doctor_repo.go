package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"skin-analysis/internal/domain"
)

// DoctorRepository define el contrato de lectura de doctores para auth.
type DoctorRepository interface {
	GetByID(ctx context.Context, id string) (domain.Doctor, error)
	GetByEmail(ctx context.Context, email string) (domain.Doctor, error)
}

// PgDoctorRepository implementa DoctorRepository usando pgxpool.
type PgDoctorRepository struct {
	pool *pgxpool.Pool
}

func NewPgDoctorRepository(pool *pgxpool.Pool) *PgDoctorRepository {
	return &PgDoctorRepository{pool: pool}
}

func (r *PgDoctorRepository) GetByID(ctx context.Context, id string) (domain.Doctor, error) {
	const query = `
		SELECT id, email, COALESCE(full_name, ''), password_hash, created_at
		FROM doctors
		WHERE id = $1
	`
	return r.scanDoctor(ctx, query, id)
}

func (r *PgDoctorRepository) GetByEmail(ctx context.Context, email string) (domain.Doctor, error) {
	const query = `
		SELECT id, email, COALESCE(full_name, ''), password_hash, created_at
		FROM doctors
		WHERE lower(email) = lower($1)
	`
	return r.scanDoctor(ctx, query, email)
}

func (r *PgDoctorRepository) scanDoctor(ctx context.Context, query string, arg any) (domain.Doctor, error) {
	var doctor domain.Doctor
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&doctor.ID,
		&doctor.Email,
		&doctor.FullName,
		&doctor.PasswordHash,
		&doctor.CreatedAt,
	)
	if err != nil {
		return domain.Doctor{}, err
	}
	return doctor, nil
}
