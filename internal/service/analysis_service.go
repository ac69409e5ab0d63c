package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"skin-analysis/internal/diagnostic"
	"skin-analysis/internal/domain"
	"skin-analysis/internal/repository"
	"skin-analysis/internal/storage"
)

var (
	// ErrPhotoSessionNotFound: la sesión de fotos no existe.
	ErrPhotoSessionNotFound = errors.New("photo session not found")
	// ErrFrontalPhotoMissing: la sesión existe pero no tiene foto frontal.
	ErrFrontalPhotoMissing = errors.New("photo session has no frontal photo")
)

// RateLimitError indica cuota mensual agotada, con los contadores para
// el mensaje al usuario.
type RateLimitError struct {
	CurrentCount int
	Limit        int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("monthly analysis limit reached: %d of %d used", e.CurrentCount, e.Limit)
}

// RunRequest son los inputs del punto de entrada público.
type RunRequest struct {
	PhotoSessionID    string
	DoctorID          string
	ClinicalSessionID string
}

// RunResult es la respuesta de un análisis exitoso.
type RunResult struct {
	DiagnosticID string
	Duration     time.Duration
}

// AnalysisService orquesta un análisis completo: cuota, registro pending,
// firma de URLs, llamada al proveedor, parseo y persistencia del resultado.
// No cachea estado entre invocaciones; los stores son la fuente de verdad.
type AnalysisService struct {
	photoSessions repository.PhotoSessionRepository
	records       repository.AnalysisRepository
	signer        storage.SignedURLResolver
	diagClient    diagnostic.Client
	limiter       UsageLimiter
	parser        DiagnosticParser
	locale        string
	callTimeout   time.Duration
	logger        *zap.Logger
}

func NewAnalysisService(
	photoSessions repository.PhotoSessionRepository,
	records repository.AnalysisRepository,
	signer storage.SignedURLResolver,
	diagClient diagnostic.Client,
	limiter UsageLimiter,
	locale string,
	callTimeout time.Duration,
	logger *zap.Logger,
) *AnalysisService {
	if callTimeout <= 0 {
		callTimeout = 2 * time.Minute
	}
	return &AnalysisService{
		photoSessions: photoSessions,
		records:       records,
		signer:        signer,
		diagClient:    diagClient,
		limiter:       limiter,
		parser:        DefaultDiagnosticParser,
		locale:        locale,
		callTimeout:   callTimeout,
		logger:        logger,
	}
}

// Run ejecuta la máquina de estados de un análisis. Toda falla posterior al
// registro pending lo termina como failed: nunca queda pending indefinido.
func (s *AnalysisService) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	start := time.Now()

	status, err := s.limiter.Check(ctx, req.DoctorID)
	if err != nil {
		// Sin contador no bloqueamos al doctor; el incremento posterior
		// intenta registrar el uso igualmente.
		s.logger.Warn("usage check failed",
			zap.Error(err),
			zap.String("doctor_id", req.DoctorID),
		)
		status = UsageStatus{WithinLimit: true}
	}
	if !status.WithinLimit {
		return RunResult{}, &RateLimitError{CurrentCount: status.CurrentCount, Limit: status.Limit}
	}

	// La cuota se consume apenas pasa el chequeo, antes de cualquier otra
	// validación: un crash a mitad de camino sigue contando contra el mes.
	if err := s.limiter.Increment(ctx, req.DoctorID); err != nil {
		s.logger.Warn("usage increment failed",
			zap.Error(err),
			zap.String("doctor_id", req.DoctorID),
		)
	}

	session, err := s.photoSessions.GetByID(ctx, req.PhotoSessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RunResult{}, ErrPhotoSessionNotFound
		}
		return RunResult{}, fmt.Errorf("get photo session %s: %w", req.PhotoSessionID, err)
	}
	if !session.HasFrontalPhoto() {
		return RunResult{}, ErrFrontalPhotoMissing
	}

	now := time.Now().UTC()
	record := domain.AnalysisRecord{
		ID:                uuid.NewString(),
		PhotoSessionID:    req.PhotoSessionID,
		PatientID:         session.PatientID,
		DoctorID:          req.DoctorID,
		ClinicalSessionID: req.ClinicalSessionID,
		Status:            domain.AnalysisStatusPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.records.SavePending(ctx, record); err != nil {
		return RunResult{}, fmt.Errorf("save pending analysis: %w", err)
	}

	photos, err := s.resolvePhotoURLs(ctx, session)
	if err != nil {
		return RunResult{}, s.fail(ctx, req, "resolve photo urls: "+err.Error())
	}

	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	rawResponse, err := s.diagClient.Analyze(callCtx, photos, s.locale)
	if err != nil {
		// El mensaje del proveedor se captura tal cual para diagnóstico.
		return RunResult{}, s.fail(ctx, req, err.Error())
	}

	parsed, err := s.parser.Parse(rawResponse)
	if err != nil {
		return RunResult{}, s.fail(ctx, req, err.Error())
	}

	diagnosticID := parsed.DiagnosticID
	if diagnosticID == "" {
		diagnosticID = uuid.NewString()
	}

	if err := s.records.SaveResult(ctx, req.PhotoSessionID, diagnosticID, rawResponse, parsed); err != nil {
		// La API externa respondió pero no pudimos guardar: para el caller
		// es una falla completa, no existe éxito parcial.
		return RunResult{}, s.fail(ctx, req, "save analysis result: "+err.Error())
	}

	duration := time.Since(start)
	s.logger.Info("analysis completed",
		zap.String("photo_session_id", req.PhotoSessionID),
		zap.String("doctor_id", req.DoctorID),
		zap.String("diagnostic_id", diagnosticID),
		zap.Duration("duration", duration),
	)
	return RunResult{DiagnosticID: diagnosticID, Duration: duration}, nil
}

// GetResult refleja el estado persistido actual para clientes que hacen
// polling. ok=false significa que no existe registro para la sesión.
func (s *AnalysisService) GetResult(ctx context.Context, photoSessionID string) (domain.AnalysisRecord, bool, error) {
	record, err := s.records.GetByPhotoSession(ctx, photoSessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AnalysisRecord{}, false, nil
		}
		return domain.AnalysisRecord{}, false, fmt.Errorf("get analysis result: %w", err)
	}
	return record, true, nil
}

func (s *AnalysisService) resolvePhotoURLs(ctx context.Context, session domain.PhotoSession) (diagnostic.PhotoURLs, error) {
	var photos diagnostic.PhotoURLs

	frontal, err := s.signer.SignedURL(ctx, session.FrontalPhotoPath)
	if err != nil {
		return diagnostic.PhotoURLs{}, fmt.Errorf("frontal photo: %w", err)
	}
	photos.Frontal = frontal

	if session.LeftProfilePhotoPath != "" {
		left, err := s.signer.SignedURL(ctx, session.LeftProfilePhotoPath)
		if err != nil {
			return diagnostic.PhotoURLs{}, fmt.Errorf("left profile photo: %w", err)
		}
		photos.LeftProfile = left
	}
	if session.RightProfilePhotoPath != "" {
		right, err := s.signer.SignedURL(ctx, session.RightProfilePhotoPath)
		if err != nil {
			return diagnostic.PhotoURLs{}, fmt.Errorf("right profile photo: %w", err)
		}
		photos.RightProfile = right
	}
	return photos, nil
}

// fail termina el registro pending como failed y devuelve el error para el
// caller. Si ni siquiera se puede escribir el estado failed, se loguea:
// el caller igual recibe la falla original.
func (s *AnalysisService) fail(ctx context.Context, req RunRequest, message string) error {
	if err := s.records.SaveFailed(ctx, req.PhotoSessionID, message); err != nil {
		s.logger.Error("save failed analysis",
			zap.Error(err),
			zap.String("photo_session_id", req.PhotoSessionID),
			zap.String("doctor_id", req.DoctorID),
		)
	}
	s.logger.Warn("analysis failed",
		zap.String("photo_session_id", req.PhotoSessionID),
		zap.String("doctor_id", req.DoctorID),
		zap.String("message", message),
	)
	return errors.New(message)
}
