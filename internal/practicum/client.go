// Package practicum talks to the homework review API.
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework-notifier/internal/logging"
	"homework-notifier/internal/models"
)

// Client fetches homework statuses updated since a timestamp.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *logging.Logger
}

func NewClient(endpoint, token string, timeout time.Duration, logger *logging.Logger) *Client {
	return &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch makes exactly one request for homeworks changed since the given Unix time
// and returns the raw JSON body. The body shape is checked by CheckResponse.
func (c *Client) Fetch(ctx context.Context, since int64) (json.RawMessage, error) {
	if since < 0 {
		return nil, fmt.Errorf("from_date %d: %w", since, models.ErrInvalidTimestamp)
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(since, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	c.logger.Debugf("Requesting %s with from_date=%d", c.endpoint, since)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &models.ConnectionError{Endpoint: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &models.UnexpectedStatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.ConnectionError{Endpoint: c.endpoint, Err: fmt.Errorf("read response: %w", err)}
	}
	if !json.Valid(body) {
		return nil, &models.MalformedResponseError{Kind: models.KindInvalidJSON}
	}

	c.logger.Debugf("API response received: %s", body)
	return json.RawMessage(body), nil
}
