package ingestion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/logger"
	"go.uber.org/zap"
)

var (
	// ErrInvalidURL is returned when URL is malformed
	ErrInvalidURL = errors.New("invalid URL")
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = errors.New("content extraction failed")
	// ErrEmptyContent is returned when a page yields no text at all
	ErrEmptyContent = errors.New("no job description text found")
)

// URLOptions configures IngestFromURL
type URLOptions struct {
	// UseBrowser re-renders pages with too little text in headless Chrome
	UseBrowser     bool
	BrowserTimeout time.Duration
	Fetch          *fetch.Options
	Logger         *zap.Logger
}

// IngestFromURL fetches a job posting, extracts its text with platform-specific
// selectors and returns the cleaned text with metadata.
func IngestFromURL(ctx context.Context, urlStr string, opts URLOptions) (string, *Metadata, error) {
	log := logger.OrNop(opts.Logger)
	if _, err := fetch.ValidateURL(urlStr); err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	platform := fetch.DetectPlatform(urlStr)
	log = log.With(zap.String("url", urlStr), zap.String("platform", string(platform)))

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	log.Debug("fetched job posting", zap.Int("bytes", len(result.HTML)))

	content := fetch.PlatformContentSelectors(platform)
	noise := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(result.HTML, content, noise...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	rendered := false
	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		timeout := opts.BrowserTimeout
		if timeout <= 0 {
			timeout = fetch.DefaultTimeout
		}
		log.Info("page text too short, rendering in browser", zap.Int("chars", len(text)))

		html, berr := fetch.WithBrowser(ctx, urlStr, timeout, log)
		if berr != nil {
			log.Warn("browser rendering failed, keeping HTTP content", zap.Error(berr))
		} else if btext, xerr := fetch.ExtractMainText(html, content, noise...); xerr != nil {
			log.Warn("browser content extraction failed", zap.Error(xerr))
		} else {
			text = btext
			rendered = true
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, ErrEmptyContent
	}

	metadata := NewMetadata(cleaned, urlStr)
	metadata.Platform = string(platform)
	metadata.PageTitle = fetch.Title(result.HTML)
	metadata.Rendered = rendered

	log.Debug("ingested job posting", zap.Int("chars", len(cleaned)), zap.Bool("rendered", rendered))
	return cleaned, metadata, nil
}
