package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skin-analysis/internal/domain"
	"skin-analysis/internal/service"
)

// AnalysisRunner es el contrato del orquestador que consume el handler.
type AnalysisRunner interface {
	Run(ctx context.Context, req service.RunRequest) (service.RunResult, error)
	GetResult(ctx context.Context, photoSessionID string) (domain.AnalysisRecord, bool, error)
}

// AnalysisHandler mantiene dependencias para los endpoints de análisis.
type AnalysisHandler struct {
	logger *zap.Logger
	runner AnalysisRunner
}

// NewAnalysisHandler crea una instancia de AnalysisHandler.
func NewAnalysisHandler(logger *zap.Logger, runner AnalysisRunner) *AnalysisHandler {
	return &AnalysisHandler{logger: logger, runner: runner}
}

// RunAnalysis maneja POST /analysis.
func (h *AnalysisHandler) RunAnalysis(c *gin.Context) {
	var req struct {
		PhotoSessionID    string `json:"photo_session_id" binding:"required"`
		DoctorID          string `json:"doctor_id" binding:"required"`
		ClinicalSessionID string `json:"clinical_session_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid run analysis request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo_session_id and doctor_id are required"})
		return
	}

	result, err := h.runner.Run(c.Request.Context(), service.RunRequest{
		PhotoSessionID:    req.PhotoSessionID,
		DoctorID:          req.DoctorID,
		ClinicalSessionID: req.ClinicalSessionID,
	})
	if err != nil {
		var rateLimited *service.RateLimitError
		switch {
		case errors.As(err, &rateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":         rateLimited.Error(),
				"current_count": rateLimited.CurrentCount,
				"limit":         rateLimited.Limit,
			})
		case errors.Is(err, service.ErrPhotoSessionNotFound),
			errors.Is(err, service.ErrFrontalPhotoMissing):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.logger.Error("analysis failed",
				zap.Error(err),
				zap.String("photo_session_id", req.PhotoSessionID),
				zap.String("doctor_id", req.DoctorID),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"diagnostic_id": result.DiagnosticID,
		"duration_ms":   result.Duration.Milliseconds(),
	})
}

// GetAnalysisResult maneja GET /analysis/:photo_session_id.
// Siempre responde 200: el status del body es el contrato de polling.
func (h *AnalysisHandler) GetAnalysisResult(c *gin.Context) {
	photoSessionID := c.Param("photo_session_id")

	record, found, err := h.runner.GetResult(c.Request.Context(), photoSessionID)
	if err != nil {
		h.logger.Error("get analysis result failed",
			zap.Error(err),
			zap.String("photo_session_id", photoSessionID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read analysis result"})
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"status": "not_found"})
		return
	}

	resp := gin.H{"status": record.Status}
	if record.Result != nil {
		resp["result"] = record.Result
	}
	if record.ErrorMessage != "" {
		resp["error_message"] = record.ErrorMessage
	}
	if record.DiagnosticID != "" {
		resp["diagnostic_id"] = record.DiagnosticID
	}
	c.JSON(http.StatusOK, resp)
}
