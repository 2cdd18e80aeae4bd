package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"quotebuilder/quote"
)

func TestGroupByCategory(t *testing.T) {
	items := []quote.LineItem{
		{Category: quote.CategoryDemo, Description: "tear-out", Quantity: decimal.NewFromInt(8), Rate: quote.Money(7500)},
		{Category: quote.CategoryTile, Description: "floor tile", Quantity: decimal.NewFromInt(40), Rate: quote.Money(1000)},
		{Category: quote.CategoryDemo, Description: "bin", Quantity: decimal.NewFromInt(1), Rate: quote.Money(45000)},
	}

	groups := GroupByCategory(items)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}

	// First-use order: Demo before Tile even though the second Demo item
	// was entered last.
	if groups[0].Category != quote.CategoryDemo {
		t.Errorf("group 0 = %s, want Demo", groups[0].Category)
	}
	if groups[1].Category != quote.CategoryTile {
		t.Errorf("group 1 = %s, want Tile", groups[1].Category)
	}

	// Entry order preserved inside the group.
	if len(groups[0].Items) != 2 || groups[0].Items[0].Description != "tear-out" || groups[0].Items[1].Description != "bin" {
		t.Errorf("Demo group items out of order: %+v", groups[0].Items)
	}

	// Subtotals: 8×$75 + $450 = $1,050; 40×$10 = $400.
	if groups[0].Subtotal != 105000 {
		t.Errorf("Demo subtotal = %v, want 105000", groups[0].Subtotal)
	}
	if groups[1].Subtotal != 40000 {
		t.Errorf("Tile subtotal = %v, want 40000", groups[1].Subtotal)
	}
}

func TestGroupByCategory_Empty(t *testing.T) {
	if groups := GroupByCategory(nil); len(groups) != 0 {
		t.Errorf("GroupByCategory(nil) = %v, want empty", groups)
	}
}
