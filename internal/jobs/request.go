package jobs

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/careerup/careerup/internal/logger"
)

const (
	// DefaultTimeout bounds every outbound provider call.
	DefaultTimeout = 10 * time.Second

	contentType     = "application/json"
	contentEncoding = "gzip"
)

type Item interface{}

// Requester performs the GET-and-decode cycle shared by provider clients.
type Requester struct {
	Provider   string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewRequester(provider string, timeout time.Duration, log *zap.Logger) *Requester {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Requester{
		Provider:   provider,
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     logger.WithCommonFields(log, provider, ""),
	}
}

// GetItems makes a GET request and returns the array found under key in the
// JSON response body. A missing key yields no items.
func (r *Requester) GetItems(ctx context.Context, endpoint string, q url.Values, header http.Header, key string) ([]Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	// The URL carries credentials for some providers.
	r.Logger.Debug("make request", zap.String("host", req.URL.Host), zap.String("path", req.URL.Path))

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		// *url.Error repeats the full URL, query credentials included.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = fmt.Errorf("%s %s: %w", uerr.Op, req.URL.Host, uerr.Err)
		}
		return nil, fmt.Errorf("%s: %w", r.Provider, err)
	}
	defer resp.Body.Close()

	r.Logger.Debug("got response", zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Provider: r.Provider, Code: resp.StatusCode, Status: resp.Status}
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.Provider, err)
		}
		defer gz.Close()
		body = gz
	}

	var payload map[string]any
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", r.Provider, err)
	}

	raw, ok := payload[key]
	if !ok || raw == nil {
		return nil, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: field %q is not a list", r.Provider, key)
	}

	result := make([]Item, 0, len(items))
	for _, item := range items {
		result = append(result, item)
	}
	return result, nil
}

// DecodeItems decodes loosely typed items into target using json tags.
func DecodeItems(items []Item, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(items)
}
