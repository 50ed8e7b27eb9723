package pricing

import (
	"fmt"
	"strings"
)

// Item types recognized by the bracket strategy. Anything that is not a
// gang sheet prices as a single image, matching the cart contract where
// "gang-sheet" is the only explicit discriminator.
const (
	ItemTypeGangSheet   = "gang-sheet"
	ItemTypeSingleImage = "single-image"
)

// BracketPrice is the result of a discrete bracket lookup.
type BracketPrice struct {
	UnitPriceCents  int `json:"unit_price_cents"`
	TotalPriceCents int `json:"total_price_cents"`
}

// quantityBrackets are the discrete quantity brackets shared by both
// bracket tables, in ascending order. Max == 0 means unbounded.
var quantityBrackets = []struct {
	Min, Max int
}{
	{1, 49},
	{50, 99},
	{100, 249},
	{250, 0},
}

// Per-bracket unit prices in cents, indexed in bracket order.
var singleImagePrices = map[string][4]int{
	"2x2": {75, 60, 45, 35},
	"3x3": {125, 100, 80, 65},
	"4x4": {175, 140, 115, 95},
	"5x5": {250, 200, 165, 135},
}

var gangSheetPrices = map[string][4]int{
	"22x12":  {1195, 1075, 955, 835},
	"22x24":  {2195, 1975, 1755, 1535},
	"22x36":  {2995, 2695, 2395, 2095},
	"22x60":  {4495, 4045, 3595, 3145},
	"22x120": {7995, 7195, 6395, 5595},
}

// NormalizeSheetSize reduces a gang sheet size string to its canonical
// WxH form: `22" x 12"` becomes `22x12`. Empty input falls back to the
// smallest sheet.
func NormalizeSheetSize(size string) string {
	if size == "" {
		return "22x12"
	}
	normalized := strings.NewReplacer(`"`, "", " ", "", "\t", "").Replace(size)
	normalized = strings.ToLower(normalized)
	if parts := strings.Split(normalized, "x"); len(parts) == 2 {
		return parts[0] + "x" + parts[1]
	}
	return normalized
}

// bracketIndex returns the bracket position for a quantity, or -1 if the
// quantity is below the table minimum.
func bracketIndex(quantity int) int {
	for i, b := range quantityBrackets {
		if quantity >= b.Min && (b.Max == 0 || quantity <= b.Max) {
			return i
		}
	}
	return -1
}

// CalculateForType prices an item with the discrete bracket strategy used
// by the cart checkout flow. This is independent of Calculate: sizes are
// discrete strings, not inches, and each product type carries its own
// table. An unknown size or out-of-range quantity is a pricing error.
func CalculateForType(itemType, size string, quantity int) (BracketPrice, error) {
	idx := bracketIndex(quantity)
	if idx < 0 {
		return BracketPrice{}, fmt.Errorf("quantity %d is below the bracket minimum", quantity)
	}

	var table map[string][4]int
	if itemType == ItemTypeGangSheet {
		table = gangSheetPrices
		size = NormalizeSheetSize(size)
	} else {
		table = singleImagePrices
	}

	prices, ok := table[size]
	if !ok {
		return BracketPrice{}, fmt.Errorf("no price table entry for size %q", size)
	}

	unit := prices[idx]
	return BracketPrice{
		UnitPriceCents:  unit,
		TotalPriceCents: unit * quantity,
	}, nil
}
