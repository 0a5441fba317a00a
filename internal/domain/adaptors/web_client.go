package adaptors

import "context"

// FetchedPage is a size-capped response body from an untrusted server.
// Body is already transcoded to UTF-8.
type FetchedPage struct {
	Body        []byte
	RawBytes    int
	StatusCode  int
	ContentType string
	ByteCapped  bool
}

type WebClient interface {
	Fetch(ctx context.Context, url string, maxBytes int64) (*FetchedPage, error)
}
