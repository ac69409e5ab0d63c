package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"skin-analysis/internal/domain"
)

// PhotoSessionRepository define el acceso de lectura a sesiones de fotos.
type PhotoSessionRepository interface {
	GetByID(ctx context.Context, id string) (domain.PhotoSession, error)
}

// PgPhotoSessionRepository implementa PhotoSessionRepository usando pgxpool.
type PgPhotoSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgPhotoSessionRepository(pool *pgxpool.Pool) *PgPhotoSessionRepository {
	return &PgPhotoSessionRepository{pool: pool}
}

func (r *PgPhotoSessionRepository) GetByID(ctx context.Context, id string) (domain.PhotoSession, error) {
	const query = `
		SELECT id, patient_id,
			COALESCE(frontal_photo_path, ''),
			COALESCE(left_profile_photo_path, ''),
			COALESCE(right_profile_photo_path, ''),
			created_at
		FROM photo_sessions
		WHERE id = $1
	`
	var session domain.PhotoSession
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.PatientID,
		&session.FrontalPhotoPath,
		&session.LeftProfilePhotoPath,
		&session.RightProfilePhotoPath,
		&session.CreatedAt,
	)
	if err != nil {
		return domain.PhotoSession{}, err
	}
	return session, nil
}
