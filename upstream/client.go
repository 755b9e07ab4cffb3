package upstream

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	userAgent       = "amtrak-board-local-proxy"
	defaultType     = "application/json; charset=utf-8"
	maxErrorExcerpt = 500
)

// Error describes a failed upstream fetch. Status is 0 when the request
// never produced an HTTP response.
type Error struct {
	Status  int
	Message string
	Body    string
}

func (e *Error) Error() string { return e.Message }

// Client is a blocking HTTP client for the realtime API. The timeout bounds
// the whole fetch; client disconnects are not propagated, the fetch runs to
// completion or timeout regardless.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch performs a GET of path relative to the base URL and returns the
// body and its content type.
func (c *Client) Fetch(path string) ([]byte, string, error) {
	url := c.baseURL + path
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, "", &Error{Message: err.Error()}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", &Error{Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &Error{Status: resp.StatusCode, Message: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", &Error{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("HTTP %d from %s", resp.StatusCode, url),
			Body:    excerpt(body),
		}
	}
	ctype := resp.Header.Get("Content-Type")
	if ctype == "" {
		ctype = defaultType
	}
	return body, ctype, nil
}

func excerpt(body []byte) string {
	if len(body) > maxErrorExcerpt {
		body = body[:maxErrorExcerpt]
	}
	return string(body)
}
