package scoring

// Reglas de modificación de scores normalizados. Los tres conjuntos son
// disjuntos y aplican sin importar a qué categoría pertenece el parámetro.
var (
	// Hallazgos cosméticos incidentales: nunca empujan un score de severidad.
	excludedParameters = map[string]struct{}{
		"freckles": {},
		"moles":    {},
	}

	// La rojez domina la percepción visual de la piel: pondera hacia arriba.
	boostedParameters = map[string]struct{}{
		"redness_present":   {},
		"couperose_present": {},
	}

	// Predictores de riesgo, no severidad observada: aportan a la mitad.
	halfWeightParameters = map[string]struct{}{
		"predictive_factors_hyperpigmentation": {},
		"predictive_factors_dryness":           {},
		"predictive_factors_dehydration":       {},
	}
)

const (
	boostFactor        = 1.3
	maxNormalizedScore = 10.0
)

// NormalizedScore convierte un score crudo 1..MaxScore en un aporte 0-10.
// ok=false significa "sin aporte": parámetros condicionales, excluidos o
// desconocidos no contribuyen jamás a la severidad agregada.
func NormalizedScore(key string, rawScore int) (float64, bool) {
	cfg, found := GetParameterScoreConfig(key)
	if !found || cfg.Type == ScaleConditional {
		return 0, false
	}
	if _, excluded := excludedParameters[key]; excluded {
		return 0, false
	}

	if rawScore < 1 {
		rawScore = 1
	}
	if rawScore > cfg.MaxScore {
		rawScore = cfg.MaxScore
	}

	var normalized float64
	if cfg.MaxScore > 1 {
		normalized = float64(rawScore-1) / float64(cfg.MaxScore-1) * maxNormalizedScore
	}

	if _, boosted := boostedParameters[key]; boosted {
		normalized *= boostFactor
	}
	if _, half := halfWeightParameters[key]; half {
		normalized /= 2
	}

	if normalized > maxNormalizedScore {
		normalized = maxNormalizedScore
	}
	return normalized, true
}
