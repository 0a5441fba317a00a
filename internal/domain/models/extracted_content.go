package models

// ExtractedContent is the bounded text payload produced from a fetched page.
// It lives for one request only.
type ExtractedContent struct {
	Title string
	// BodyExcerpt is the final "Title: ...\n\n<excerpt>" payload, already within the character budget.
	BodyExcerpt   string
	RawByteLength int
	// ByteCapped is set when the response body was cut at the byte cap.
	ByteCapped  bool
	Truncated   bool
	ContentType string
}
