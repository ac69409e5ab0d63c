package domain

import (
	"encoding/json"
	"time"
)

// AnalysisStatus es el estado persistido de un análisis.
type AnalysisStatus string

const (
	AnalysisStatusPending   AnalysisStatus = "pending"
	AnalysisStatusCompleted AnalysisStatus = "completed"
	AnalysisStatusFailed    AnalysisStatus = "failed"
)

// AnalysisRecord representa un intento de análisis para una sesión de fotos.
// Nace pending y transiciona una sola vez a completed o failed.
type AnalysisRecord struct {
	ID                string                `json:"id"`
	PhotoSessionID    string                `json:"photo_session_id"`
	PatientID         string                `json:"patient_id"`
	DoctorID          string                `json:"doctor_id"`
	ClinicalSessionID string                `json:"clinical_session_id,omitempty"`
	Status            AnalysisStatus        `json:"status"`
	RawResponse       json.RawMessage       `json:"raw_response,omitempty"`
	Result            *ParsedAnalysisResult `json:"result,omitempty"`
	ErrorMessage      string                `json:"error_message,omitempty"`
	DiagnosticID      string                `json:"diagnostic_id,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// CategoryResult es el score agregado 0-10 de una categoría visual.
type CategoryResult struct {
	CategoryID      string `json:"category_id"`
	VisibilityLevel int    `json:"visibility_level"`
}

// CausationFlag marca un juicio condicional sobre la causa de un síntoma
// (parámetros diferenciales de la categoría redness). No aporta severidad.
type CausationFlag struct {
	Parameter string `json:"parameter"`
	Score     int    `json:"score"`
	Label     string `json:"label,omitempty"`
}

// ImageQuality resume la evaluación de calidad de imagen del proveedor.
type ImageQuality struct {
	Assessment string `json:"assessment,omitempty"`
	Usable     bool   `json:"usable"`
}

// PatientAttributes son estimaciones del proveedor sobre el paciente.
type PatientAttributes struct {
	EstimatedAge int    `json:"estimated_age,omitempty"`
	SkinType     string `json:"skin_type,omitempty"`
}

// ParsedAnalysisResult es la salida normalizada del mapper de respuestas.
type ParsedAnalysisResult struct {
	DiagnosticID      string            `json:"diagnostic_id,omitempty"`
	CategoryResults   []CategoryResult  `json:"category_results"`
	CausationFlags    []CausationFlag   `json:"causation_flags,omitempty"`
	Overview          string            `json:"overview,omitempty"`
	ImageQuality      ImageQuality      `json:"image_quality"`
	PatientAttributes PatientAttributes `json:"patient_attributes"`
}

// CategoryScore devuelve el score de una categoría o 0 si no está presente.
func (r *ParsedAnalysisResult) CategoryScore(categoryID string) int {
	for _, cr := range r.CategoryResults {
		if cr.CategoryID == categoryID {
			return cr.VisibilityLevel
		}
	}
	return 0
}
