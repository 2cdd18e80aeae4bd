// Package testhelpers provides canned quotes and attachment fixtures for
// exporter tests.
package testhelpers

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"quotebuilder/quote"
)

// SampleQuote returns a two-category quote with a fixed date so exported
// dates are predictable.
func SampleQuote(t *testing.T) quote.Quote {
	t.Helper()

	q := quote.New(time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC))
	q.Number = "TBG-20250310-0930"
	q.Customer = quote.Customer{
		Name:    "Jordan Blake",
		Address: "12 Maple Ave",
		City:    "Burlington",
		State:   "ON",
		Zip:     "L7M 4R3",
		Phone:   "(905) 555-0142",
		Email:   "jordan@example.com",
	}
	q.ProjectDescription = "Main floor bathroom renovation"
	q.DurationWeeks = 4
	q.Items = []quote.LineItem{
		{
			Category:    quote.CategoryDemo,
			Description: "Remove existing fixtures and tile",
			Quantity:    decimal.NewFromInt(16),
			Unit:        "hr",
			Rate:        quote.Money(7500),
		},
		{
			Category:    quote.CategoryTile,
			Description: "Supply and install floor tile",
			Quantity:    decimal.NewFromInt(80),
			Unit:        "sq ft",
			Rate:        quote.Money(1250),
		},
		{
			Category:    quote.CategoryDemo,
			Description: "Disposal bin",
			Quantity:    decimal.NewFromInt(1),
			Unit:        "ea",
			Rate:        quote.Money(45000),
		},
	}
	return q
}

// WritePNG creates a small valid PNG file in dir and returns its path.
func WritePNG(t *testing.T, dir string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 196, G: 30, B: 58, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	path := filepath.Join(dir, "plan.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write png: %v", err)
	}
	return path
}

// WriteText creates a plain text file in dir, used to exercise the
// unsupported-attachment path.
func WriteText(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("not an attachment\n"), 0o644); err != nil {
		t.Fatalf("write text: %v", err)
	}
	return path
}
