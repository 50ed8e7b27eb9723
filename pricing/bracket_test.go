package pricing

import "testing"

func TestNormalizeSheetSize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`22" x 12"`, "22x12"},
		{"22x12", "22x12"},
		{"22 X 36", "22x36"},
		{`22" x 120"`, "22x120"},
		{"", "22x12"},
	}
	for _, tc := range cases {
		if got := NormalizeSheetSize(tc.in); got != tc.want {
			t.Fatalf("NormalizeSheetSize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCalculateForTypeGangSheet(t *testing.T) {
	price, err := CalculateForType(ItemTypeGangSheet, `22" x 12"`, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price.UnitPriceCents != 1195 || price.TotalPriceCents != 1195 {
		t.Fatalf("got %+v, want unit 1195", price)
	}

	price, err = CalculateForType(ItemTypeGangSheet, "22x36", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price.UnitPriceCents != 2395 || price.TotalPriceCents != 239500 {
		t.Fatalf("got %+v, want unit 2395 total 239500", price)
	}
}

func TestCalculateForTypeSingleImage(t *testing.T) {
	price, err := CalculateForType(ItemTypeSingleImage, "3x3", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price.UnitPriceCents != 100 || price.TotalPriceCents != 5000 {
		t.Fatalf("got %+v, want unit 100 total 5000", price)
	}
}

func TestCalculateForTypeUnknownTypePricesAsSingleImage(t *testing.T) {
	direct, err := CalculateForType(ItemTypeSingleImage, "4x4", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other, err := CalculateForType("custom-transfer", "4x4", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if direct != other {
		t.Fatalf("unknown type priced differently: %+v vs %+v", other, direct)
	}
}

func TestCalculateForTypeBracketBoundaries(t *testing.T) {
	want := map[int]int{1: 250, 49: 250, 50: 200, 99: 200, 100: 165, 249: 165, 250: 135, 5000: 135}
	for quantity, unit := range want {
		price, err := CalculateForType(ItemTypeSingleImage, "5x5", quantity)
		if err != nil {
			t.Fatalf("quantity %d: %v", quantity, err)
		}
		if price.UnitPriceCents != unit {
			t.Fatalf("quantity %d: unit %d, want %d", quantity, price.UnitPriceCents, unit)
		}
	}
}

func TestCalculateForTypeErrors(t *testing.T) {
	if _, err := CalculateForType(ItemTypeGangSheet, "17x11", 1); err == nil {
		t.Fatal("expected error for unknown sheet size")
	}
	if _, err := CalculateForType(ItemTypeSingleImage, "9x9", 1); err == nil {
		t.Fatal("expected error for unknown single-image size")
	}
	if _, err := CalculateForType(ItemTypeSingleImage, "3x3", 0); err == nil {
		t.Fatal("expected error for quantity below bracket minimum")
	}
}
