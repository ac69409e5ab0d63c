package service

import (
	"encoding/json"
	"fmt"

	"skin-analysis/internal/domain"
	"skin-analysis/internal/scoring"
)

// DiagnosticParser traduce la respuesta cruda del proveedor al modelo
// interno. Transformación pura y determinista: mismo input, mismo output.
// Campos ausentes degradan a score 0, jamás a error; solo un cuerpo
// imposible de decodificar como JSON devuelve error.
type DiagnosticParser struct{}

// DefaultDiagnosticParser permite uso directo sin instanciar.
var DefaultDiagnosticParser = DiagnosticParser{}

// rawDiagnosticResponse es el esquema esperado del proveedor. El decode es
// tolerante: campos desconocidos se ignoran, ausentes quedan en cero.
type rawDiagnosticResponse struct {
	DiagnosticID string `json:"diagnostic_id"`
	Overview     string `json:"overview"`
	ImageQuality struct {
		Assessment string `json:"assessment"`
		Usable     *bool  `json:"usable"`
	} `json:"image_quality"`
	PatientAttributes struct {
		EstimatedAge int    `json:"estimated_age"`
		SkinType     string `json:"skin_type"`
	} `json:"patient_attributes"`
	// Scores: score 0-10 pre-agregado por alias de color.
	Scores map[string]float64 `json:"scores"`
	// Parameters: scores crudos por parámetro, por alias de color.
	// Cuando están presentes tienen prioridad sobre el pre-agregado.
	Parameters map[string][]scoring.ParameterScore `json:"parameters"`
}

// Parse decodifica y mapea la respuesta completa del proveedor.
func (DiagnosticParser) Parse(raw []byte) (domain.ParsedAnalysisResult, error) {
	var decoded rawDiagnosticResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return domain.ParsedAnalysisResult{}, fmt.Errorf("decode diagnostic response: %w", err)
	}

	result := domain.ParsedAnalysisResult{
		DiagnosticID: decoded.DiagnosticID,
		Overview:     decoded.Overview,
		ImageQuality: domain.ImageQuality{
			Assessment: decoded.ImageQuality.Assessment,
			Usable:     decoded.ImageQuality.Usable == nil || *decoded.ImageQuality.Usable,
		},
		PatientAttributes: domain.PatientAttributes{
			EstimatedAge: decoded.PatientAttributes.EstimatedAge,
			SkinType:     decoded.PatientAttributes.SkinType,
		},
	}

	result.CategoryResults = mapCategoryResults(decoded)
	result.CausationFlags = extractCausationFlags(decoded.Parameters)
	return result, nil
}

// MapCategoryScores mapea scores pre-agregados por alias a IDs canónicos,
// acotando cualquier valor fuera de rango a [0,10]. Alias desconocidos se
// descartan; categorías ausentes quedan en 0.
func (DiagnosticParser) MapCategoryScores(rawScoresByAlias map[string]float64) map[string]int {
	out := make(map[string]int, len(scoring.Categories))
	for _, cat := range scoring.Categories {
		out[cat.ID] = 0
	}
	for alias, value := range rawScoresByAlias {
		cat, ok := scoring.CategoryByAlias(alias)
		if !ok {
			continue
		}
		out[cat.ID] = scoring.ClampScore(value)
	}
	return out
}

func mapCategoryResults(decoded rawDiagnosticResponse) []domain.CategoryResult {
	results := make([]domain.CategoryResult, 0, len(scoring.Categories))
	for _, cat := range scoring.Categories {
		score := 0
		if params, ok := decoded.Parameters[cat.Alias]; ok && len(params) > 0 {
			score = scoring.CategoryScore(params)
		} else if pre, ok := decoded.Scores[cat.Alias]; ok {
			score = scoring.ClampScore(pre)
		}
		results = append(results, domain.CategoryResult{
			CategoryID:      cat.ID,
			VisibilityLevel: score,
		})
	}
	return results
}

// extractCausationFlags junta los juicios condicionales de causa (solo los
// usa la categoría redness) para mostrarlos aparte del score de severidad.
func extractCausationFlags(parametersByAlias map[string][]scoring.ParameterScore) []domain.CausationFlag {
	var flags []domain.CausationFlag
	for _, cat := range scoring.Categories {
		for _, p := range parametersByAlias[cat.Alias] {
			cfg, ok := scoring.GetParameterScoreConfig(p.Key)
			if !ok || cfg.Type != scoring.ScaleConditional {
				continue
			}
			label, _ := scoring.GetScoreLabel(p.Key, p.Score)
			flags = append(flags, domain.CausationFlag{
				Parameter: p.Key,
				Score:     p.Score,
				Label:     label,
			})
		}
	}
	return flags
}
