package scoring

// Canonical category IDs. El proveedor externo usa alias por color;
// la tabla de abajo fija la traducción y los parámetros de cada categoría.
const (
	CategoryRadiance      = "radiance"
	CategorySkinAging     = "skin_aging"
	CategoryRedness       = "redness"
	CategoryHydration     = "hydration"
	CategoryShine         = "shine"
	CategoryTexture       = "texture"
	CategoryBlemishes     = "blemishes"
	CategoryTone          = "tone"
	CategoryEyeContour    = "eye_contour"
	CategoryNeckDecollete = "neck_decollete"
)

// Category define una de las diez categorías visuales fijas.
type Category struct {
	ID         string
	Alias      string
	Label      string
	Parameters []string
}

// Categories es la tabla fija de categorías, en orden de presentación.
var Categories = []Category{
	{
		ID:    CategoryRadiance,
		Alias: "yellow",
		Label: "Radiance",
		Parameters: []string{
			"complexion",
			"tiredness",
			"sun_damage",
		},
	},
	{
		ID:    CategorySkinAging,
		Alias: "pink",
		Label: "Skin Aging",
		Parameters: []string{
			"wrinkles",
			"fine_lines",
			"elasticity_sagging",
			"volume",
		},
	},
	{
		ID:    CategoryRedness,
		Alias: "red",
		Label: "Redness",
		Parameters: []string{
			"redness_present",
			"couperose_present",
			"is_rosacea",
			"is_sunburn",
			"is_contact_dermatitis",
			"is_eczema",
			"is_infection",
			"is_acne",
			"is_allergic_reaction",
		},
	},
	{
		ID:    CategoryHydration,
		Alias: "blue",
		Label: "Hydration",
		Parameters: []string{
			"observed_dryness",
			"observed_dehydration",
			"predictive_factors_dryness",
			"predictive_factors_dehydration",
		},
	},
	{
		ID:    CategoryShine,
		Alias: "orange",
		Label: "Shine",
		Parameters: []string{
			"oiliness",
			"pores",
		},
	},
	{
		ID:    CategoryTexture,
		Alias: "grey",
		Label: "Texture",
		Parameters: []string{
			"rough_bumpy_skin",
			"dull_skin",
			"uneven_skin_texture",
			"roughness",
			"scarring",
		},
	},
	{
		ID:    CategoryBlemishes,
		Alias: "green",
		Label: "Blemishes",
		Parameters: []string{
			"comedones",
			"pustules",
			"papules",
			"nodules",
			"cysts",
		},
	},
	{
		ID:    CategoryTone,
		Alias: "brown",
		Label: "Tone",
		Parameters: []string{
			"melasma",
			"post_inflammatory_hyperpigmentation",
			"age_sun_spots",
			"freckles",
			"moles",
			"skin_tone",
			"predictive_factors_hyperpigmentation",
		},
	},
	{
		ID:    CategoryEyeContour,
		Alias: "eye",
		Label: "Eye Contour",
		Parameters: []string{
			"fine_lines_wrinkles",
			"eye_bags",
			"hollowed_eyes",
			"puffy_eyes",
			"dark_circles",
		},
	},
	{
		ID:    CategoryNeckDecollete,
		Alias: "neck",
		Label: "Neck & Décolleté",
		Parameters: []string{
			"photoaging",
			"hyperpigmentation",
			"dryness_dehydration",
			"textural_changes",
			"elasticity_loss",
			"redness",
			"acne_prone_skin",
		},
	},
}

var categoriesByAlias = func() map[string]Category {
	m := make(map[string]Category, len(Categories))
	for _, c := range Categories {
		m[c.Alias] = c
	}
	return m
}()

var categoriesByID = func() map[string]Category {
	m := make(map[string]Category, len(Categories))
	for _, c := range Categories {
		m[c.ID] = c
	}
	return m
}()

// CategoryByAlias resuelve el alias externo (color) a la categoría canónica.
func CategoryByAlias(alias string) (Category, bool) {
	c, ok := categoriesByAlias[alias]
	return c, ok
}

// CategoryByID devuelve la categoría por su ID canónico.
func CategoryByID(id string) (Category, bool) {
	c, ok := categoriesByID[id]
	return c, ok
}
