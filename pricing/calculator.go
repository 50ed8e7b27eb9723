// Package pricing implements the sticker pricing engine: size-based base
// prices with interpolation, material and cutting adjustments, quantity
// tier discounts, and the discrete bracket tables used by the legacy
// single-image and gang-sheet flows.
package pricing

import "math"

const (
	// MinSizeInches and MaxSizeInches bound the continuous size range.
	MinSizeInches = 1.0
	MaxSizeInches = 12.0

	// MinQuantity and MaxQuantity bound orderable quantities.
	MinQuantity = 1
	MaxQuantity = 9999

	// MinUnitPriceCents is the floor for a computed unit price, so
	// compounding discounts can never produce a zero or negative price.
	MinUnitPriceCents = 10
)

// Breakdown is the itemized decomposition of a computed price, suitable
// for UI display and reconciliation. All monetary fields are cents.
type Breakdown struct {
	BasePriceCents          int    `json:"base_price_cents"`
	MaterialAdjustmentCents int    `json:"material_adjustment_cents"`
	CuttingAdjustmentCents  int    `json:"cutting_adjustment_cents"`
	SubtotalCents           int    `json:"subtotal_cents"`
	DiscountPercent         int    `json:"discount_percent"`
	SavingsCents            int    `json:"savings_cents"`
	UnitPriceCents          int    `json:"unit_price_cents"`
	TotalPriceCents         int    `json:"total_price_cents"`
	TierLabel               string `json:"tier_label"`
}

// SnapSize rounds sizeInches to the nearest 0.5 and clamps it to the
// valid range. Midpoints round half-up, so 6.25 snaps to 6.5.
func SnapSize(sizeInches float64) float64 {
	snapped := math.Floor(sizeInches*2+0.5) / 2
	return math.Max(MinSizeInches, math.Min(MaxSizeInches, snapped))
}

// BasePrice returns the base unit price in cents for a size, snapping to
// the 0.5" grid and interpolating linearly between grid points when the
// snapped size has no exact table entry.
func BasePrice(sizeInches float64) int {
	size := SnapSize(sizeInches)

	if price, ok := sizeBasePrices[size]; ok {
		return price
	}

	lowerSize := math.Floor(size*2) / 2
	upperSize := math.Ceil(size*2) / 2
	lowerPrice := sizeBasePrices[lowerSize]
	upperPrice, ok := sizeBasePrices[upperSize]
	if !ok {
		return lowerPrice
	}

	ratio := (size - lowerSize) / (upperSize - lowerSize)
	return int(math.Round(float64(lowerPrice) + float64(upperPrice-lowerPrice)*ratio))
}

// TierFor returns the quantity tier containing quantity. Tiers are
// checked in ascending order; the table is gap-free so the first match
// is the only match. Quantities below the table fall back to the first
// tier.
func TierFor(quantity int) Tier {
	for _, tier := range quantityTiers {
		if tier.Contains(quantity) {
			return tier
		}
	}
	return quantityTiers[0]
}

// Calculate computes the unit and total price for a configuration.
// It is a pure function: callers validate size and quantity beforehand
// with ValidSize and ValidQuantity.
//
// Steps: base price for size, multiplicative material modifier, additive
// cutting surcharge (not scaled by material), tier discount, unit floor.
func Calculate(sizeInches float64, quantity int, materialModifier float64, cuttingSurchargeCents int) Breakdown {
	basePrice := BasePrice(sizeInches)
	materialPrice := int(math.Round(float64(basePrice) * materialModifier))
	subtotal := materialPrice + cuttingSurchargeCents

	tier := TierFor(quantity)
	unitPrice := int(math.Round(float64(subtotal) * (1 - tier.Discount)))
	if unitPrice < MinUnitPriceCents {
		unitPrice = MinUnitPriceCents
	}

	totalPrice := unitPrice * quantity
	savings := subtotal*quantity - totalPrice
	if savings < 0 {
		savings = 0
	}

	return Breakdown{
		BasePriceCents:          basePrice,
		MaterialAdjustmentCents: materialPrice - basePrice,
		CuttingAdjustmentCents:  cuttingSurchargeCents,
		SubtotalCents:           subtotal,
		DiscountPercent:         tier.DiscountPercent(),
		SavingsCents:            savings,
		UnitPriceCents:          unitPrice,
		TotalPriceCents:         totalPrice,
		TierLabel:               tier.Label,
	}
}

// TierHint describes the next discount tier above a quantity, for upsell
// display.
type TierHint struct {
	NextTierMin     int    `json:"next_tier_min"`
	DiscountPercent int    `json:"discount_percent"`
	UnitsToAdd      int    `json:"units_to_add"`
	Message         string `json:"message"`
	TierLabel       string `json:"tier_label"`
}

// NextTierHint returns the next tier above quantity, or nil when the
// quantity is already in the top tier. It reads the same tier table as
// Calculate, so hint and price cannot diverge.
func NextTierHint(quantity int) *TierHint {
	current := TierFor(quantity)
	for i, tier := range quantityTiers {
		if tier.Min != current.Min {
			continue
		}
		if i >= len(quantityTiers)-1 {
			return nil
		}
		next := quantityTiers[i+1]
		addMore := next.Min - quantity
		return &TierHint{
			NextTierMin:     next.Min,
			DiscountPercent: next.DiscountPercent(),
			UnitsToAdd:      addMore,
			Message:         formatHintMessage(addMore, next.DiscountPercent()),
			TierLabel:       next.Label,
		}
	}
	return nil
}

// ValidSize reports whether sizeInches is inside the continuous range.
func ValidSize(sizeInches float64) bool {
	return sizeInches >= MinSizeInches && sizeInches <= MaxSizeInches
}

// ValidQuantity reports whether quantity is orderable.
func ValidQuantity(quantity int) bool {
	return quantity >= MinQuantity && quantity <= MaxQuantity
}
