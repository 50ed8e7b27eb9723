// Package catalog holds the static product option lists: sticker
// materials with multiplicative price modifiers and cutting options with
// flat surcharges.
package catalog

// Material is a sticker material option. PriceModifier is multiplicative
// against the size base price.
type Material struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Subtitle      string  `json:"subtitle"`
	Description   string  `json:"description"`
	PriceModifier float64 `json:"price_modifier"`
	Recommended   bool    `json:"recommended"`
	Durability    string  `json:"durability"`
	Finish        string  `json:"finish"`
	Specialty     bool    `json:"specialty,omitempty"`
	Warning       string  `json:"warning,omitempty"`
}

// CuttingOption is a cut style. PriceCents is a flat additive surcharge
// per sticker, not scaled by material.
type CuttingOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int    `json:"price_cents"`
	Recommended bool   `json:"recommended"`
	Details     string `json:"details"`
}

var materials = []Material{
	{
		ID:            "premium-vinyl",
		Name:          "Premium Vinyl",
		Subtitle:      "Most popular",
		Description:   "Weather-resistant matte laminate, 3-5 year outdoor life",
		PriceModifier: 1.0,
		Recommended:   true,
		Durability:    "outdoor",
		Finish:        "matte-laminate",
	},
	{
		ID:            "glossy-vinyl",
		Name:          "Glossy Vinyl",
		Subtitle:      "Vibrant colors",
		Description:   "High-shine finish, UV-protected, 3-5 year outdoor life",
		PriceModifier: 1.0,
		Durability:    "outdoor",
		Finish:        "glossy",
	},
	{
		ID:            "matte-vinyl",
		Name:          "Matte Vinyl",
		Subtitle:      "Elegant finish",
		Description:   "No-glare premium matte, 3-5 year outdoor life",
		PriceModifier: 1.0,
		Durability:    "outdoor",
		Finish:        "matte",
	},
	{
		ID:            "clear-vinyl",
		Name:          "Clear Vinyl",
		Subtitle:      "Transparent",
		Description:   "See-through background, perfect for glass and windows",
		PriceModifier: 1.15,
		Durability:    "outdoor",
		Finish:        "transparent",
	},
	{
		ID:            "holographic",
		Name:          "Holographic",
		Subtitle:      "Rainbow effect",
		Description:   "Eye-catching rainbow shimmer, premium specialty finish",
		PriceModifier: 1.3,
		Durability:    "outdoor",
		Finish:        "holographic",
		Specialty:     true,
	},
	{
		ID:            "glitter",
		Name:          "Glitter",
		Subtitle:      "Sparkle finish",
		Description:   "Bold sparkle effect, polyester blend material",
		PriceModifier: 1.4,
		Durability:    "outdoor",
		Finish:        "glitter",
		Specialty:     true,
	},
	{
		ID:            "metallic",
		Name:          "Metallic",
		Subtitle:      "Brushed metal",
		Description:   "Premium metallic finish, available in gold and silver",
		PriceModifier: 1.35,
		Durability:    "outdoor",
		Finish:        "metallic",
		Specialty:     true,
	},
	{
		ID:            "economy",
		Name:          "Economy",
		Subtitle:      "Budget-friendly",
		Description:   "Non-laminated vinyl, indoor use only",
		PriceModifier: 0.7,
		Durability:    "indoor",
		Finish:        "paper",
		Warning:       "Indoor use only - not weather resistant",
	},
}

var cuttingOptions = []CuttingOption{
	{
		ID:          "die-cut",
		Name:        "Die Cut",
		Description: "Cut to exact shape of your design with no border",
		PriceCents:  15,
		Recommended: true,
		Details:     "Follows the contour of your design precisely",
	},
	{
		ID:          "kiss-cut",
		Name:        "Kiss Cut",
		Description: "Cut through sticker only, backing stays intact for easy peeling",
		PriceCents:  10,
		Details:     "Perfect for sticker sheets and easy distribution",
	},
	{
		ID:          "rectangle",
		Name:        "Rectangle",
		Description: "Simple rectangular cut with optional border",
		PriceCents:  0,
		Details:     "Clean and classic shape",
	},
	{
		ID:          "circle",
		Name:        "Circle",
		Description: "Circular or oval shaped stickers",
		PriceCents:  0,
		Details:     "Round shape for logos and badges",
	},
}

// Materials returns a copy of the material catalog in display order.
func Materials() []Material {
	out := make([]Material, len(materials))
	copy(out, materials)
	return out
}

// CuttingOptions returns a copy of the cutting catalog in display order.
func CuttingOptions() []CuttingOption {
	out := make([]CuttingOption, len(cuttingOptions))
	copy(out, cuttingOptions)
	return out
}

// GetMaterial looks up a material by id. A miss returns the first catalog
// entry, not an error; callers depend on this leniency.
func GetMaterial(id string) Material {
	for _, m := range materials {
		if m.ID == id {
			return m
		}
	}
	return materials[0]
}

// GetCuttingOption looks up a cutting option by id, falling back to the
// first entry on a miss.
func GetCuttingOption(id string) CuttingOption {
	for _, c := range cuttingOptions {
		if c.ID == id {
			return c
		}
	}
	return cuttingOptions[0]
}

// DefaultMaterial returns the recommended material, or the first entry if
// none is flagged.
func DefaultMaterial() Material {
	for _, m := range materials {
		if m.Recommended {
			return m
		}
	}
	return materials[0]
}

// DefaultCutting returns the recommended cutting option, or the first
// entry if none is flagged.
func DefaultCutting() CuttingOption {
	for _, c := range cuttingOptions {
		if c.Recommended {
			return c
		}
	}
	return cuttingOptions[0]
}
