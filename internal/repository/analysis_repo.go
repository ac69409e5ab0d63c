package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"skin-analysis/internal/domain"
)

// AnalysisRepository define la persistencia de registros de análisis.
// Un registro por sesión de fotos: re-analizar sobreescribe el existente.
type AnalysisRepository interface {
	SavePending(ctx context.Context, record domain.AnalysisRecord) error
	SaveResult(ctx context.Context, photoSessionID, diagnosticID string, rawResponse []byte, result domain.ParsedAnalysisResult) error
	SaveFailed(ctx context.Context, photoSessionID, errorMessage string) error
	GetByPhotoSession(ctx context.Context, photoSessionID string) (domain.AnalysisRecord, error)
}

// PgAnalysisRepository implementa AnalysisRepository usando pgxpool.
type PgAnalysisRepository struct {
	pool *pgxpool.Pool
}

func NewPgAnalysisRepository(pool *pgxpool.Pool) *PgAnalysisRepository {
	return &PgAnalysisRepository{pool: pool}
}

func (r *PgAnalysisRepository) SavePending(ctx context.Context, record domain.AnalysisRecord) error {
	const query = `
		INSERT INTO skin_analyses (
			id, photo_session_id, patient_id, doctor_id, clinical_session_id,
			status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $7)
		ON CONFLICT (photo_session_id) DO UPDATE SET
			patient_id = EXCLUDED.patient_id,
			doctor_id = EXCLUDED.doctor_id,
			clinical_session_id = EXCLUDED.clinical_session_id,
			status = EXCLUDED.status,
			raw_response = NULL,
			result = NULL,
			error_message = NULL,
			diagnostic_id = NULL,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		record.ID,
		record.PhotoSessionID,
		record.PatientID,
		record.DoctorID,
		record.ClinicalSessionID,
		domain.AnalysisStatusPending,
		record.CreatedAt,
	)
	return err
}

func (r *PgAnalysisRepository) SaveResult(ctx context.Context, photoSessionID, diagnosticID string, rawResponse []byte, result domain.ParsedAnalysisResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	const query = `
		UPDATE skin_analyses SET
			status = $2,
			raw_response = $3,
			result = $4,
			diagnostic_id = $5,
			error_message = NULL,
			updated_at = $6
		WHERE photo_session_id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		photoSessionID,
		domain.AnalysisStatusCompleted,
		rawResponse,
		resultJSON,
		diagnosticID,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no analysis record for photo session %s", photoSessionID)
	}
	return nil
}

func (r *PgAnalysisRepository) SaveFailed(ctx context.Context, photoSessionID, errorMessage string) error {
	const query = `
		UPDATE skin_analyses SET
			status = $2,
			error_message = $3,
			updated_at = $4
		WHERE photo_session_id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		photoSessionID,
		domain.AnalysisStatusFailed,
		errorMessage,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no analysis record for photo session %s", photoSessionID)
	}
	return nil
}

func (r *PgAnalysisRepository) GetByPhotoSession(ctx context.Context, photoSessionID string) (domain.AnalysisRecord, error) {
	const query = `
		SELECT id, photo_session_id, patient_id, doctor_id,
			COALESCE(clinical_session_id, ''), status,
			raw_response, result, COALESCE(error_message, ''),
			COALESCE(diagnostic_id, ''), created_at, updated_at
		FROM skin_analyses
		WHERE photo_session_id = $1
	`
	var (
		record     domain.AnalysisRecord
		rawJSON    []byte
		resultJSON []byte
	)
	err := r.pool.QueryRow(ctx, query, photoSessionID).Scan(
		&record.ID,
		&record.PhotoSessionID,
		&record.PatientID,
		&record.DoctorID,
		&record.ClinicalSessionID,
		&record.Status,
		&rawJSON,
		&resultJSON,
		&record.ErrorMessage,
		&record.DiagnosticID,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return domain.AnalysisRecord{}, err
	}

	record.RawResponse = rawJSON
	if len(resultJSON) > 0 {
		var parsed domain.ParsedAnalysisResult
		if err := json.Unmarshal(resultJSON, &parsed); err != nil {
			return domain.AnalysisRecord{}, fmt.Errorf("unmarshal stored result: %w", err)
		}
		record.Result = &parsed
	}
	return record, nil
}
