package placeholder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/userboard/userboard/internal/domain/entity"
)

// ErrFetch marks any failure of the remote users API call: transport error,
// timeout, non-2xx status or a body that is not a JSON array of objects.
var ErrFetch = errors.New("users api fetch failed")

// Client fetches user records from a JSONPlaceholder-style endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchUsers issues one GET and maps the response array field-by-field into
// entities, preserving source order. A key missing from a record leaves the
// corresponding field nil; it never fails that record. Any transport, status
// or decode error fails the whole fetch.
func (c *Client) FetchUsers(ctx context.Context) ([]entity.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status %d from %s", ErrFetch, resp.StatusCode, c.url)
	}

	var users []entity.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrFetch, err)
	}
	return users, nil
}
