// Package quote holds the renovation quote data model: customer, line
// items, attachments and duration. A Quote is built once per session,
// validated, and treated as an immutable snapshot by the renderer and
// exporters.
package quote

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer identifies who the quote is addressed to. Free-text fields; only
// the name is required.
type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// CityLine renders "City, ST Zip" with missing pieces dropped.
func (c Customer) CityLine() string {
	line := c.City
	if c.State != "" {
		if line != "" {
			line += ", "
		}
		line += c.State
	}
	if c.Zip != "" {
		if line != "" {
			line += " "
		}
		line += c.Zip
	}
	return line
}

// LineItem is one billable row of the quote.
type LineItem struct {
	Category    Category        `json:"category"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Rate        Money           `json:"rate"`
}

// Total returns quantity × rate rounded half up to the cent. It is always
// derived, never stored, so printed and exported amounts cannot drift.
func (li LineItem) Total() Money {
	return MoneyFromDecimal(li.Quantity.Mul(li.Rate.Decimal()))
}

// Validate checks a single line item.
func (li LineItem) Validate() error {
	if _, err := ParseCategory(string(li.Category)); err != nil {
		return err
	}
	return validation.ValidateStruct(&li,
		validation.Field(&li.Description, validation.Required),
		validation.Field(&li.Quantity, validation.By(func(interface{}) error {
			if !li.Quantity.IsPositive() {
				return fmt.Errorf("must be a positive decimal")
			}
			return nil
		})),
		validation.Field(&li.Rate, validation.By(func(interface{}) error {
			if li.Rate < 0 {
				return fmt.Errorf("must not be negative")
			}
			return nil
		})),
	)
}

// Quote is a finalized renovation quote. ID, Number and Date are assigned at
// creation and never change; everything else is filled in from the editor
// before the quote is handed to a renderer or exporter.
type Quote struct {
	ID                 string       `json:"id"`
	Number             string       `json:"number"`
	Date               time.Time    `json:"date"`
	ValidDays          int          `json:"valid_days"`
	DurationWeeks      int          `json:"duration_weeks"`
	Customer           Customer     `json:"customer"`
	ProjectDescription string       `json:"project_description"`
	Notes              string       `json:"notes"`
	Items              []LineItem   `json:"line_items"`
	Attachments        []Attachment `json:"attachments"`
}

// New returns a quote shell with identity fields assigned: a fresh opaque ID
// and a number in the TBG-YYYYMMDD-HHMM form.
func New(now time.Time) Quote {
	return Quote{
		ID:            uuid.NewString(),
		Number:        "TBG-" + now.Format("20060102-1504"),
		Date:          now,
		ValidDays:     30,
		DurationWeeks: 1,
	}
}

// Subtotal sums the derived line totals.
func (q Quote) Subtotal() Money {
	var sum Money
	for _, li := range q.Items {
		sum += li.Total()
	}
	return sum
}

// ValidUntil is the expiration date derived from Date and ValidDays.
func (q Quote) ValidUntil() time.Time {
	return q.Date.AddDate(0, 0, q.ValidDays)
}

// Validate checks the quote is complete enough to render or export.
func (q Quote) Validate() error {
	if err := validation.ValidateStruct(&q,
		validation.Field(&q.ID, validation.Required),
		validation.Field(&q.Number, validation.Required),
		validation.Field(&q.DurationWeeks, validation.Min(1)),
		validation.Field(&q.ValidDays, validation.Min(0)),
	); err != nil {
		return err
	}
	if strings.TrimSpace(q.Customer.Name) == "" {
		return fmt.Errorf("customer: name is required")
	}
	for i, li := range q.Items {
		if err := li.Validate(); err != nil {
			return fmt.Errorf("line item %d: %w", i+1, err)
		}
	}
	for i, a := range q.Attachments {
		if strings.TrimSpace(a.Path) == "" {
			return fmt.Errorf("attachment %d: path is required", i+1)
		}
	}
	return nil
}
