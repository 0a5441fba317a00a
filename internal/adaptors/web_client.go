package adaptors

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"ux_auditor/internal/domain/adaptors"
	"ux_auditor/internal/pkg/errors"
	"ux_auditor/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
)

const (
	userAgent    = "AI-UX-Auditor/1.0"
	maxRedirects = 5
)

type WebClient struct {
	client *http.Client
	log    *log.Logger
}

// NewWebClient builds the client used to fetch pages from untrusted servers.
// The deadline of a fetch comes from the caller's context; timeout only bounds
// connection setup and is a backstop.
func NewWebClient(timeout time.Duration, allowPrivate bool, log *log.Logger) *WebClient {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           guardedDialer(allowPrivate).DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
	}

	rTripper := promhttp.InstrumentRoundTripperDuration(
		metrics.HTTPClientRequestDuration,
		promhttp.InstrumentRoundTripperCounter(metrics.HTTPClientRequestsTotal, transport))

	return &WebClient{
		client: &http.Client{
			Transport:     rTripper,
			CheckRedirect: redirectPolicy,
		},
		log: log,
	}
}

func redirectPolicy(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("redirect to %q scheme blocked", req.URL.Scheme)
	}
	return nil
}

// Fetch GETs url and reads at most maxBytes of the body, decoded to UTF-8.
func (w *WebClient) Fetch(ctx context.Context, url string, maxBytes int64) (*adaptors.FetchedPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		w.log.WithContext(ctx).WithError(err).Error(`failed to create request`)
		return nil, errors.Wrap(err, `failed to create request`)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := w.client.Do(req)
	if err != nil {
		w.log.WithContext(ctx).WithError(err).Error(`failed to fetch url`)
		return nil, errors.Wrap(err, `failed to fetch url`)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	counted := &countingReader{r: io.LimitReader(resp.Body, maxBytes)}

	decoded, err := charset.NewReader(counted, contentType)
	if err != nil {
		w.log.WithContext(ctx).WithError(err).Warn(`unknown charset, reading body as utf-8`)
		decoded = counted
	}

	bodyByte, err := io.ReadAll(decoded)
	if err != nil {
		w.log.WithContext(ctx).Errorf(`failed to read response body. error: %v`, err)
		return nil, errors.Wrap(err, `failed to read response body`)
	}

	metrics.FetchBytes.Observe(float64(counted.n))

	return &adaptors.FetchedPage{
		Body:        bodyByte,
		RawBytes:    int(counted.n),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		ByteCapped:  counted.n >= maxBytes,
	}, nil
}

// countingReader counts the raw bytes pulled from the network before decoding.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
