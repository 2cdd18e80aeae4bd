package quote

// Attachment references a supplementary file merged into the rendered quote:
// a photo, a plan image, or a PDF drawing. The slice order on the quote is
// the page order in the final document. The concrete kind (image vs PDF) is
// resolved by content sniffing during render preflight rather than trusted
// from the file name.
type Attachment struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}
