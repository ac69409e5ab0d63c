package scoring

import "math"

// ParameterScore es un score crudo reportado para un parámetro.
type ParameterScore struct {
	Key   string `json:"key"`
	Score int    `json:"score"`
}

// CategoryScore agrega los aportes normalizados de una categoría en un
// entero 0-10. Regla: el peor síntoma manda. Un hallazgo severo no se
// diluye entre varios hallazgos leves, por eso máximo y no promedio.
func CategoryScore(params []ParameterScore) int {
	worst := 0.0
	for _, p := range params {
		normalized, ok := NormalizedScore(p.Key, p.Score)
		if !ok {
			continue
		}
		if normalized > worst {
			worst = normalized
		}
	}
	return int(math.Round(worst))
}

// ClampScore redondea y acota un score pre-agregado del proveedor a [0,10].
// Valores negativos, mayores a 10 o no enteros jamás se propagan.
func ClampScore(value float64) int {
	if math.IsNaN(value) {
		return 0
	}
	rounded := int(math.Round(value))
	if rounded < 0 {
		return 0
	}
	if rounded > 10 {
		return 10
	}
	return rounded
}
