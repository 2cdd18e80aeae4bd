package services

import (
	"fmt"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"quotebuilder/quote"
)

// attachmentKind is the resolved variant of an attachment after sniffing.
type attachmentKind int

const (
	attachmentImage attachmentKind = iota
	attachmentPDF
)

// resolvedAttachment is an attachment whose file has been read and typed.
// Image bytes are held in memory for embedding; PDFs stay on disk and are
// merged page-for-page from their path.
type resolvedAttachment struct {
	quote.Attachment
	kind attachmentKind
	ext  extension.Type
	data []byte
}

// preflightAttachments reads and type-checks every attachment before any
// page is drawn, so a bad file aborts the whole render up front instead of
// truncating the document halfway through.
func preflightAttachments(atts []quote.Attachment) ([]resolvedAttachment, error) {
	resolved := make([]resolvedAttachment, 0, len(atts))
	for _, a := range atts {
		data, err := os.ReadFile(a.Path)
		if err != nil {
			return nil, &AttachmentReadError{Path: a.Path, Err: err}
		}

		mt := mimetype.Detect(data)
		switch {
		case mt.Is("image/png"):
			resolved = append(resolved, resolvedAttachment{
				Attachment: a, kind: attachmentImage, ext: extension.Png, data: data,
			})
		case mt.Is("image/jpeg"):
			resolved = append(resolved, resolvedAttachment{
				Attachment: a, kind: attachmentImage, ext: extension.Jpg, data: data,
			})
		case mt.Is("application/pdf"):
			if err := api.ValidateFile(a.Path, nil); err != nil {
				return nil, &AttachmentReadError{Path: a.Path, Err: fmt.Errorf("invalid pdf: %w", err)}
			}
			resolved = append(resolved, resolvedAttachment{
				Attachment: a, kind: attachmentPDF,
			})
		default:
			return nil, &UnsupportedAttachmentTypeError{Path: a.Path, MIME: mt.String()}
		}
	}
	return resolved, nil
}
