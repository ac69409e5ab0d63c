package scoring

// ScaleType distingue escalas de severidad de juicios condicionales de causa.
type ScaleType string

const (
	// ScaleSeverity: a mayor valor, hallazgo más visible/severo.
	ScaleSeverity ScaleType = "severity"
	// ScaleConditional: juicio categórico de causalidad, nunca severidad.
	ScaleConditional ScaleType = "conditional"
)

// ScoreOption es un valor discreto válido con su etiqueta estandarizada.
type ScoreOption struct {
	Value int
	Label string
}

// ParameterScoreConfig describe la escala de un parámetro evaluable.
// Invariante: Options tiene exactamente MaxScore entradas con valores 1..MaxScore.
type ParameterScoreConfig struct {
	Type     ScaleType
	MaxScore int
	Options  []ScoreOption
}

func severity(labels ...string) ParameterScoreConfig {
	opts := make([]ScoreOption, len(labels))
	for i, label := range labels {
		opts[i] = ScoreOption{Value: i + 1, Label: label}
	}
	return ParameterScoreConfig{Type: ScaleSeverity, MaxScore: len(labels), Options: opts}
}

// Las escalas condicionales siempre tienen tres valores: ausente,
// presente sin esta causa, presente con esta causa.
func conditional(cause string) ParameterScoreConfig {
	return ParameterScoreConfig{
		Type:     ScaleConditional,
		MaxScore: 3,
		Options: []ScoreOption{
			{Value: 1, Label: "No redness present"},
			{Value: 2, Label: "Redness present, not caused by " + cause},
			{Value: 3, Label: "Redness present, caused by " + cause},
		},
	}
}

// parameterCatalog es la tabla inmutable de todos los parámetros evaluables.
// Las etiquetas son contrato de compatibilidad con datos ya persistidos:
// no reformular sin migración.
var parameterCatalog = map[string]ParameterScoreConfig{
	// Radiance (yellow)
	"complexion": severity(
		"Radiant, even complexion",
		"Slightly dull complexion",
		"Dull, uneven complexion",
		"Very dull, sallow complexion",
	),
	"tiredness": severity(
		"No visible signs of tiredness",
		"Moderately tired appearance",
		"Markedly tired, exhausted appearance",
	),
	"sun_damage": severity(
		"No visible sun damage",
		"Mild sun damage",
		"Moderate sun damage",
		"Severe sun damage",
	),

	// Skin aging (pink)
	"wrinkles": severity(
		"No visible wrinkles",
		"Fine, shallow wrinkles",
		"Moderate, established wrinkles",
		"Deep, pronounced wrinkles",
	),
	"fine_lines": severity(
		"No visible fine lines",
		"Few isolated fine lines",
		"Several visible fine lines",
		"Extensive network of fine lines",
	),
	"elasticity_sagging": severity(
		"Firm skin with good elasticity",
		"Slight loss of elasticity",
		"Moderate sagging",
		"Pronounced sagging and laxity",
	),
	"volume": severity(
		"Full facial volume preserved",
		"Mild volume loss",
		"Significant volume loss",
	),

	// Redness (red)
	"redness_present": severity(
		"No visible redness",
		"Slight localized redness",
		"Moderate redness",
		"Marked, widespread redness",
		"Severe, intense redness",
	),
	"couperose_present": severity(
		"No visible couperose",
		"Few isolated dilated capillaries",
		"Moderate couperose",
		"Marked couperose over larger areas",
		"Severe, dense couperose",
	),
	"is_rosacea":            conditional("rosacea"),
	"is_sunburn":            conditional("sunburn"),
	"is_contact_dermatitis": conditional("contact dermatitis"),
	"is_eczema":             conditional("eczema"),
	"is_infection":          conditional("an infection"),
	"is_acne":               conditional("acne"),
	"is_allergic_reaction":  conditional("an allergic reaction"),

	// Hydration (blue)
	"observed_dryness": severity(
		"No dryness observed",
		"Mild dryness",
		"Moderate dryness with flaking",
		"Severe dryness with scaling",
	),
	"observed_dehydration": severity(
		"No dehydration observed",
		"Mild dehydration",
		"Moderate dehydration with tightness",
		"Severe dehydration with dehydration lines",
	),
	"predictive_factors_dryness": severity(
		"No predisposing factors for dryness",
		"Few predisposing factors for dryness",
		"Several predisposing factors for dryness",
		"Strong predisposition to dryness",
	),
	"predictive_factors_dehydration": severity(
		"No predisposing factors for dehydration",
		"Few predisposing factors for dehydration",
		"Several predisposing factors for dehydration",
		"Strong predisposition to dehydration",
	),

	// Shine (orange)
	"oiliness": severity(
		"No excess oiliness",
		"Slight shine in the T-zone",
		"Moderate oiliness",
		"Severe, persistent oiliness",
	),
	"pores": severity(
		"Pores not visibly enlarged",
		"Slightly enlarged pores",
		"Moderately enlarged pores",
		"Severely enlarged, congested pores",
	),

	// Texture (grey)
	"rough_bumpy_skin": severity(
		"Smooth skin without bumps",
		"Slightly rough or bumpy areas",
		"Moderately rough, bumpy texture",
		"Very rough, markedly bumpy texture",
	),
	"dull_skin": severity(
		"No dullness",
		"Moderately dull surface",
		"Very dull, lifeless surface",
	),
	"uneven_skin_texture": severity(
		"Even skin texture",
		"Slightly uneven texture",
		"Moderately uneven texture",
		"Severely uneven texture",
	),
	"roughness": severity(
		"No perceptible roughness",
		"Moderate roughness",
		"Pronounced roughness",
	),
	"scarring": severity(
		"No visible scarring",
		"Few small scars",
		"Moderate scarring",
		"Extensive or deep scarring",
	),

	// Blemishes (green)
	"comedones": severity(
		"No comedones",
		"Few comedones",
		"Moderate number of comedones",
		"Numerous comedones",
	),
	"pustules": severity(
		"No pustules",
		"Few pustules",
		"Moderate number of pustules",
		"Numerous pustules",
	),
	"papules": severity(
		"No papules",
		"Few papules",
		"Moderate number of papules",
		"Numerous papules",
	),
	"nodules": severity(
		"No nodules",
		"Few nodules",
		"Multiple nodules",
	),
	"cysts": severity(
		"No cysts",
		"Isolated cysts",
		"Multiple cysts",
	),

	// Tone (brown)
	"melasma": severity(
		"No melasma",
		"Faint melasma patches",
		"Moderate melasma",
		"Extensive, dark melasma",
	),
	"post_inflammatory_hyperpigmentation": severity(
		"No post-inflammatory hyperpigmentation",
		"Faint post-inflammatory marks",
		"Moderate post-inflammatory hyperpigmentation",
		"Pronounced post-inflammatory hyperpigmentation",
	),
	"age_sun_spots": severity(
		"No age or sun spots",
		"Few faint age or sun spots",
		"Moderate number of age or sun spots",
		"Numerous, pronounced age or sun spots",
	),
	"freckles": severity(
		"No freckles",
		"Few scattered freckles",
		"Numerous freckles",
	),
	"moles": severity(
		"No visible moles",
		"Few moles",
		"Numerous moles",
	),
	"skin_tone": severity(
		"Even skin tone",
		"Slightly uneven skin tone",
		"Markedly uneven skin tone",
	),
	"predictive_factors_hyperpigmentation": severity(
		"No predisposing factors for hyperpigmentation",
		"Few predisposing factors for hyperpigmentation",
		"Several predisposing factors for hyperpigmentation",
		"Strong predisposition to hyperpigmentation",
	),

	// Eye contour (eye)
	"fine_lines_wrinkles": severity(
		"No fine lines or wrinkles around the eyes",
		"Fine lines at the outer corners",
		"Established wrinkles around the eyes",
		"Deep wrinkles around the eyes",
	),
	"eye_bags": severity(
		"No visible eye bags",
		"Mild eye bags",
		"Moderate eye bags",
		"Pronounced eye bags",
	),
	"hollowed_eyes": severity(
		"No hollowing under the eyes",
		"Mild hollowing under the eyes",
		"Pronounced hollowing under the eyes",
	),
	"puffy_eyes": severity(
		"No puffiness around the eyes",
		"Mild puffiness around the eyes",
		"Pronounced puffiness around the eyes",
	),
	"dark_circles": severity(
		"No dark circles",
		"Faint dark circles",
		"Moderate dark circles",
		"Pronounced dark circles",
	),

	// Neck & décolleté (neck)
	"photoaging": severity(
		"No signs of photoaging",
		"Mild photoaging",
		"Moderate photoaging",
		"Severe photoaging",
	),
	"hyperpigmentation": severity(
		"No hyperpigmentation",
		"Faint hyperpigmentation",
		"Moderate hyperpigmentation",
		"Pronounced hyperpigmentation",
	),
	"dryness_dehydration": severity(
		"No dryness or dehydration",
		"Mild dryness or dehydration",
		"Moderate dryness or dehydration",
		"Severe dryness or dehydration",
	),
	"textural_changes": severity(
		"No textural changes",
		"Mild textural changes",
		"Marked textural changes",
	),
	"elasticity_loss": severity(
		"No loss of elasticity",
		"Mild loss of elasticity",
		"Moderate loss of elasticity",
		"Severe loss of elasticity, crepey skin",
	),
	"redness": severity(
		"No redness",
		"Moderate redness",
		"Marked redness",
	),
	"acne_prone_skin": severity(
		"No signs of acne-prone skin",
		"Visible signs of acne-prone skin",
	),
}

// GetParameterScoreConfig devuelve la configuración de escala de un parámetro.
// Clave desconocida devuelve ok=false, nunca panic.
func GetParameterScoreConfig(key string) (ParameterScoreConfig, bool) {
	cfg, ok := parameterCatalog[key]
	return cfg, ok
}

// GetScoreLabel devuelve la etiqueta estandarizada de un valor de score.
// Fuera de rango o clave desconocida devuelve ok=false: el caller debe
// tratarlo como "sin etiqueta estandarizada", no como error.
func GetScoreLabel(key string, score int) (string, bool) {
	cfg, ok := parameterCatalog[key]
	if !ok {
		return "", false
	}
	if score < 1 || score > cfg.MaxScore {
		return "", false
	}
	return cfg.Options[score-1].Label, true
}
