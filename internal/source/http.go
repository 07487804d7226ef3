package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/noobCode-69/reusable-table/pkg/types"
)

// maxErrorBody caps how much of a failed response is kept in an HTTPError.
const maxErrorBody = 512

// HTTPError reports a non-2xx response.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Is makes errors.Is(err, ErrUnexpectedStatus) true for every HTTPError.
func (e *HTTPError) Is(target error) bool { return target == ErrUnexpectedStatus }

// HTTPSource fetches a JSON array of objects with a single GET. No query
// parameters are added; paging and filtering happen client-side.
type HTTPSource struct {
	uri    string
	client *http.Client
}

// NewHTTPSource returns a source for uri. A nil client means http.DefaultClient.
func NewHTTPSource(uri string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{uri: uri, client: client}
}

func (s *HTTPSource) URI() string { return s.uri }

// Fetch issues the GET and decodes the body. Any transport error, non-2xx
// status or malformed body fails the whole fetch.
func (s *HTTPSource) Fetch(ctx context.Context) (*types.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	ds, err := decodeArray(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return ds, nil
}
