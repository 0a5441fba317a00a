package adaptors

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RoundTripFunc lets us mock http.RoundTripper easily.
type RoundTripFunc func(req *http.Request) (*http.Response, error)

func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func stubClient(logger *log.Logger, rt RoundTripFunc) *WebClient {
	return &WebClient{
		client: &http.Client{Timeout: 1 * time.Second, Transport: rt},
		log:    logger,
	}
}

func TestWebClient_Fetch(t *testing.T) {
	logger := log.New()
	ctx := context.Background()
	const testURL = "http://example.com"

	cases := []struct {
		name       string
		setup      func() *WebClient
		maxBytes   int64
		wantBody   string
		wantCode   int
		wantCapped bool
		wantErr    bool
	}{
		{
			name: "success",
			setup: func() *WebClient {
				return stubClient(logger, func(req *http.Request) (*http.Response, error) {
					assert.Equal(t, userAgent, req.Header.Get("User-Agent"))
					return &http.Response{
						StatusCode: 200,
						Body:       io.NopCloser(strings.NewReader("<p>OK</p>")),
						Header:     http.Header{"Content-Type": []string{"text/html; charset=utf-8"}},
					}, nil
				})
			},
			maxBytes: 1024,
			wantBody: "<p>OK</p>",
			wantCode: 200,
		},
		{
			name: "body capped at max bytes",
			setup: func() *WebClient {
				return stubClient(logger, func(req *http.Request) (*http.Response, error) {
					return &http.Response{
						StatusCode: 200,
						Body:       io.NopCloser(strings.NewReader(strings.Repeat("a", 100))),
						Header:     http.Header{"Content-Type": []string{"text/html"}},
					}, nil
				})
			},
			maxBytes:   10,
			wantBody:   strings.Repeat("a", 10),
			wantCode:   200,
			wantCapped: true,
		},
		{
			name: "latin1 body decoded to utf-8",
			setup: func() *WebClient {
				return stubClient(logger, func(req *http.Request) (*http.Response, error) {
					return &http.Response{
						StatusCode: 200,
						Body:       io.NopCloser(strings.NewReader("caf\xe9")),
						Header:     http.Header{"Content-Type": []string{"text/html; charset=iso-8859-1"}},
					}, nil
				})
			},
			maxBytes: 1024,
			wantBody: "café",
			wantCode: 200,
		},
		{
			name: "network error",
			setup: func() *WebClient {
				return stubClient(logger, func(req *http.Request) (*http.Response, error) {
					return nil, errors.New("network failure")
				})
			},
			maxBytes: 1024,
			wantErr:  true,
		},
		{
			name: "read body error",
			setup: func() *WebClient {
				return stubClient(logger, func(req *http.Request) (*http.Response, error) {
					return &http.Response{
						StatusCode: 200,
						Body:       errReadCloser{},
						Header:     make(http.Header),
					}, nil
				})
			},
			maxBytes: 1024,
			wantErr:  true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			wc := tc.setup()
			page, err := wc.Fetch(ctx, testURL, tc.maxBytes)

			if tc.wantErr {
				require.Error(t, err)
				assert.Nil(t, page)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantBody, string(page.Body))
			assert.Equal(t, tc.wantCode, page.StatusCode)
			assert.Equal(t, tc.wantCapped, page.ByteCapped)
			assert.LessOrEqual(t, int64(page.RawBytes), tc.maxBytes)
		})
	}
}

func TestWebClient_InvalidURL(t *testing.T) {
	wc := NewWebClient(time.Second, true, log.New())
	_, err := wc.Fetch(context.Background(), "http://exa mple.com/\x7f", 1024)
	require.Error(t, err)
}

func TestWebClient_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	wc := NewWebClient(5*time.Second, true, log.New())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := wc.Fetch(ctx, srv.URL, 1024)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWebClient_BlocksLoopbackByDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("secret"))
	}))
	defer srv.Close()

	_, err := NewWebClient(time.Second, false, log.New()).Fetch(context.Background(), srv.URL, 1024)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBlockedAddress)

	page, err := NewWebClient(time.Second, true, log.New()).Fetch(context.Background(), srv.URL, 1024)
	require.NoError(t, err)
	assert.Equal(t, "secret", string(page.Body))
}

// errReadCloser is an io.ReadCloser that always errors on Read.
type errReadCloser struct{}

func (e errReadCloser) Read(p []byte) (int, error) {
	return 0, errors.New("read failed")
}
func (e errReadCloser) Close() error {
	return nil
}
