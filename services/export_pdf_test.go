package services

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	appconfig "quotebuilder/config"
	"quotebuilder/quote"
	"quotebuilder/testhelpers"
)

func renderToTemp(t *testing.T, q quote.Quote) string {
	t.Helper()

	s, err := ComputeSchedule(q.Subtotal(), q.DurationWeeks)
	if err != nil {
		t.Fatalf("ComputeSchedule: %v", err)
	}
	out := filepath.Join(t.TempDir(), "estimate.pdf")
	if err := RenderQuotePDF(q, s, appconfig.Default(), out); err != nil {
		t.Fatalf("RenderQuotePDF: %v", err)
	}
	return out
}

func TestRenderQuotePDF(t *testing.T) {
	out := renderToTemp(t, testhelpers.SampleQuote(t))

	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Errorf("output is not a PDF, starts with %q", b[:8])
	}
	if len(b) < 1024 {
		t.Errorf("suspiciously small PDF: %d bytes", len(b))
	}
}

func TestRenderQuotePDF_NoItems(t *testing.T) {
	q := testhelpers.SampleQuote(t)
	q.Items = nil
	q.ProjectDescription = ""
	q.Notes = ""

	out := renderToTemp(t, q)
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("stat output: %v", err)
	}
}

func TestRenderQuotePDF_ImageAttachment(t *testing.T) {
	q := testhelpers.SampleQuote(t)
	dir := t.TempDir()
	q.Attachments = []quote.Attachment{{Label: "Floor plan", Path: testhelpers.WritePNG(t, dir)}}

	out := renderToTemp(t, q)
	b, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}

func TestRenderQuotePDF_PDFAttachment(t *testing.T) {
	q := testhelpers.SampleQuote(t)

	// Render a plain quote first and reuse it as an attachment, so the
	// merge path runs against a known-valid document.
	inner := renderToTemp(t, testhelpers.SampleQuote(t))
	q.Attachments = []quote.Attachment{{Label: "Permit set", Path: inner}}

	out := renderToTemp(t, q)
	plain, err := os.Stat(inner)
	if err != nil {
		t.Fatalf("stat attachment: %v", err)
	}
	merged, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if merged.Size() <= plain.Size() {
		t.Errorf("merged output (%d bytes) not larger than its attachment (%d bytes)", merged.Size(), plain.Size())
	}
}

func TestRenderQuotePDF_MissingAttachment(t *testing.T) {
	q := testhelpers.SampleQuote(t)
	s, err := ComputeSchedule(q.Subtotal(), q.DurationWeeks)
	if err != nil {
		t.Fatalf("ComputeSchedule: %v", err)
	}
	q.Attachments = []quote.Attachment{{Path: filepath.Join(t.TempDir(), "nope.png")}}

	out := filepath.Join(t.TempDir(), "estimate.pdf")
	err = RenderQuotePDF(q, s, appconfig.Default(), out)
	var readErr *AttachmentReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("err = %v, want AttachmentReadError", err)
	}

	// Preflight failed, so nothing may appear at the destination.
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("output exists after failed render: %v", statErr)
	}
}

func TestRenderQuotePDF_UnsupportedAttachment(t *testing.T) {
	q := testhelpers.SampleQuote(t)
	s, err := ComputeSchedule(q.Subtotal(), q.DurationWeeks)
	if err != nil {
		t.Fatalf("ComputeSchedule: %v", err)
	}
	q.Attachments = []quote.Attachment{{Path: testhelpers.WriteText(t, t.TempDir())}}

	out := filepath.Join(t.TempDir(), "estimate.pdf")
	err = RenderQuotePDF(q, s, appconfig.Default(), out)
	var typeErr *UnsupportedAttachmentTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("err = %v, want UnsupportedAttachmentTypeError", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("output exists after failed render: %v", statErr)
	}
}
