package importer

import (
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"go.trai.ch/lazy/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxModuleBytes bounds the size of a fetched module body.
const maxModuleBytes = 8 << 20

// HTTPImporter fetches modules over HTTP(S). The request is bound to the attempt
// context, so a timeout aborts the transfer.
type HTTPImporter struct {
	httpClient *http.Client
}

// NewHTTPImporter creates an HTTPImporter using client, or http.DefaultClient when nil.
func NewHTTPImporter(client *http.Client) *HTTPImporter {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPImporter{httpClient: client}
}

// Import fetches rawURL and evaluates the body. The format comes from the Content-Type
// header, then the URL extension, and defaults to JSON.
func (h *HTTPImporter) Import(ctx context.Context, rawURL string) (domain.Module, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return domain.Module{}, zerr.With(zerr.Wrap(err, domain.ErrModuleFetchFailed.Error()), "url", rawURL)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return domain.Module{}, zerr.With(zerr.Wrap(err, domain.ErrModuleFetchFailed.Error()), "url", rawURL)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		fetchErr := zerr.With(domain.ErrModuleFetchFailed, "status_code", resp.StatusCode)
		return domain.Module{}, zerr.With(fetchErr, "url", rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxModuleBytes+1))
	if err != nil {
		return domain.Module{}, zerr.With(zerr.Wrap(err, domain.ErrModuleFetchFailed.Error()), "url", rawURL)
	}
	if len(body) > maxModuleBytes {
		tooLarge := zerr.With(domain.ErrModuleFetchFailed, "reason", "module too large")
		return domain.Module{}, zerr.With(tooLarge, "url", rawURL)
	}

	return decode(ctx, responseFormat(resp.Header.Get("Content-Type"), rawURL), rawURL, body)
}

func responseFormat(contentType, rawURL string) Format {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		switch {
		case strings.HasSuffix(mediaType, "json"):
			return FormatJSON
		case strings.HasSuffix(mediaType, "yaml"):
			return FormatYAML
		case strings.HasSuffix(mediaType, "lua"):
			return FormatLua
		}
	}
	if u, err := url.Parse(rawURL); err == nil {
		if format, ok := formatOf(u.Path); ok {
			return format
		}
	}
	return FormatJSON
}
