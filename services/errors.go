package services

import (
	"errors"
	"fmt"

	"quotebuilder/quote"
)

// ErrInvalidScheduleInput reports a schedule request with a negative total
// or a duration below one week.
var ErrInvalidScheduleInput = errors.New("payment schedule requires total >= 0 and duration of at least one week")

// UnsupportedAttachmentTypeError reports an attachment that is neither an
// image nor a PDF. It surfaces during preflight, before any page is drawn.
type UnsupportedAttachmentTypeError struct {
	Path string
	MIME string
}

func (e *UnsupportedAttachmentTypeError) Error() string {
	return fmt.Sprintf("attachment %s: unsupported type %s (want png, jpeg or pdf)", e.Path, e.MIME)
}

// AttachmentReadError identifies the attachment file that could not be read.
type AttachmentReadError struct {
	Path string
	Err  error
}

func (e *AttachmentReadError) Error() string {
	return fmt.Sprintf("attachment %s: %v", e.Path, e.Err)
}

func (e *AttachmentReadError) Unwrap() error { return e.Err }

// FileWriteError reports a failure to produce an output artifact. No partial
// file is left at the target path when it is returned.
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error { return e.Err }

// UnbalancedTransactionError reports a ledger block whose split lines do not
// sum to the negated header amount. The desktop importer silently drops such
// transactions, so the export refuses to emit one.
type UnbalancedTransactionError struct {
	Header quote.Money
	Splits quote.Money
}

func (e *UnbalancedTransactionError) Error() string {
	return fmt.Sprintf("unbalanced transaction: header %s, splits sum %s", e.Header, e.Splits)
}

// EscapeEncodingError reports a field that cannot be represented in the
// target grammar. IIF has no quoting rule, so embedded tabs and line breaks
// are unescapable.
type EscapeEncodingError struct {
	Field string
}

func (e *EscapeEncodingError) Error() string {
	return fmt.Sprintf("field %s contains characters the target format cannot escape", e.Field)
}
