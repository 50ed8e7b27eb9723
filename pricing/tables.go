package pricing

// Base price per sticker at single quantity, in cents, sampled on a 0.5"
// grid. The table must cover both endpoints (1.0 and 12.0) and stay
// monotonically non-decreasing so interpolation never leaves the range.
var sizeBasePrices = map[float64]int{
	1:    45,
	1.5:  55,
	2:    65,
	2.5:  75,
	3:    90,
	3.5:  105,
	4:    120,
	4.5:  137,
	5:    155,
	5.5:  175,
	6:    195,
	6.5:  217,
	7:    240,
	7.5:  265,
	8:    290,
	8.5:  317,
	9:    345,
	9.5:  375,
	10:   405,
	10.5: 437,
	11:   470,
	11.5: 505,
	12:   540,
}

// Tier maps a quantity range to a discount fraction. Max == 0 means the
// tier is unbounded above.
type Tier struct {
	Min      int     `json:"min"`
	Max      int     `json:"max"`
	Discount float64 `json:"discount"`
	Label    string  `json:"label"`
}

// quantityTiers is the single source of truth for quantity discounts.
// Tiers partition [1,inf) with no gaps and no overlaps; both the
// calculator and the tier hint read from this table.
var quantityTiers = []Tier{
	{Min: 1, Max: 9, Discount: 0, Label: "Single"},
	{Min: 10, Max: 49, Discount: 0.10, Label: "Small batch"},
	{Min: 50, Max: 99, Discount: 0.15, Label: "Medium batch"},
	{Min: 100, Max: 249, Discount: 0.20, Label: "Large batch"},
	{Min: 250, Max: 0, Discount: 0.25, Label: "Bulk"},
}

// Contains reports whether quantity falls inside the tier.
func (t Tier) Contains(quantity int) bool {
	return quantity >= t.Min && (t.Max == 0 || quantity <= t.Max)
}

// DiscountPercent returns the tier discount as a whole percentage.
func (t Tier) DiscountPercent() int {
	return int(t.Discount*100 + 0.5)
}

// Tiers returns a copy of the quantity tier table for display.
func Tiers() []Tier {
	out := make([]Tier, len(quantityTiers))
	copy(out, quantityTiers)
	return out
}
