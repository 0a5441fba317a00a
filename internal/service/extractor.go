package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"ux_auditor/internal/application/config"
	"ux_auditor/internal/domain/adaptors"
	"ux_auditor/internal/domain/models"
	"ux_auditor/internal/pkg/errors"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

const maxTitleChars = 300

var bodyRe = regexp.MustCompile(`(?is)<body\b[^>]*>(.*?)</body\s*>`)

// Extractor turns a live page into a bounded text payload for the model.
type Extractor struct {
	webClient adaptors.WebClient
	timeout   time.Duration
	maxBytes  int64
	maxChars  int
	log       *log.Logger
}

func NewExtractor(webClient adaptors.WebClient, cfg config.AuditConfig, log *log.Logger) *Extractor {
	return &Extractor{
		webClient: webClient,
		timeout:   cfg.FetchTimeout,
		maxBytes:  cfg.FetchMaxBytes,
		maxChars:  cfg.MaxContentChars,
		log:       log,
	}
}

// Extract fetches url under a hard deadline and byte cap. Every failure to get
// a readable page comes back as *errors.FetchError.
func (e *Extractor) Extract(ctx context.Context, url string) (*models.ExtractedContent, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	page, err := e.webClient.Fetch(fetchCtx, url, e.maxBytes)
	if err != nil {
		timedOut := errors.Is(err, context.DeadlineExceeded) || errors.Is(fetchCtx.Err(), context.DeadlineExceeded)
		return nil, &errors.FetchError{URL: url, Timeout: timedOut, Cause: err}
	}

	if page.StatusCode < 200 || page.StatusCode > 299 {
		return nil, &errors.FetchError{URL: url, Cause: fmt.Errorf("unexpected status code %d", page.StatusCode)}
	}

	if !isHTML(page.ContentType) {
		e.log.WithContext(ctx).WithFields(log.Fields{
			`url`:          url,
			`content_type`: page.ContentType,
		}).Warn(`fetched content is not html, auditing it anyway`)
	}

	title, payload, truncated := extractPageText(string(page.Body), e.maxChars)

	e.log.WithContext(ctx).WithFields(log.Fields{
		`url`:         url,
		`raw_bytes`:   page.RawBytes,
		`byte_capped`: page.ByteCapped,
		`content_len`: utf8.RuneCountInString(payload),
		`truncated`:   truncated,
	}).Debug(`page extracted`)

	return &models.ExtractedContent{
		Title:         title,
		BodyExcerpt:   payload,
		RawByteLength: page.RawBytes,
		ByteCapped:    page.ByteCapped,
		Truncated:     truncated,
		ContentType:   page.ContentType,
	}, nil
}

func isHTML(contentType string) bool {
	ct := strings.ToLower(contentType)
	return ct == "" || strings.Contains(ct, "html")
}

// extractPageText strips scripts and styles, pulls out the title and body and
// returns "Title: <title>\n\n<body text>" within maxChars.
func extractPageText(raw string, maxChars int) (string, string, bool) {
	stripped := stripScriptsAndStyles(raw)
	title := clipRunes(collapseWhitespace(extractTitle(stripped)), maxTitleChars)

	body := stripped
	if m := bodyRe.FindStringSubmatch(stripped); m != nil {
		body = m[1]
	}

	header := fmt.Sprintf("Title: %s\n\n", title)
	budget := maxChars - utf8.RuneCountInString(header)
	excerpt, truncated := truncateChars(collapseWhitespace(body), max(budget, 0))

	return title, clipRunes(header+excerpt, maxChars), truncated
}

func extractTitle(doc string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(doc))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if string(name) != "title" {
				continue
			}
			if tokenizer.Next() == html.TextToken {
				return strings.TrimSpace(string(tokenizer.Text()))
			}
			return ""
		}
	}
}
