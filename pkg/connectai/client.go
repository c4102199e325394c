// Package connectai is a client for the CData Connect AI API: metadata
// discovery (catalogs, schemas, tables) and SQL query execution against the
// 250+ data sources a Connect AI account federates behind one SQL dialect.
//
// The client is stateless; every call performs exactly one authenticated
// HTTP exchange and returns freshly constructed value objects. Failures are
// reported through a closed set of error kinds: *ConfigurationError (fix
// your setup), *TransportError (check connectivity), and *RequestError (the
// service rejected the call or returned a malformed payload).
package connectai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to one Connect AI account. It is safe for concurrent use;
// nothing is mutated after construction.
type Client struct {
	baseURL    string
	email      string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a Client from an explicit Config.
// Missing credentials yield a *ConfigurationError.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		email:      cfg.Email,
		token:      cfg.Token,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// NewClientFromEnv resolves credentials from the environment and constructs
// a Client against the production endpoint.
func NewClientFromEnv() (*Client, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return NewClient(cfg)
}

// BaseURL returns the endpoint this client targets.
func (c *Client) BaseURL() string { return c.baseURL }

// envelope is the top-level response shape shared by every endpoint:
// a results array whose first element carries the actual payload.
type envelope struct {
	Results []resultSet `json:"results"`
}

// resultSet is one element of the response envelope. Metadata endpoints
// populate only Rows; the query endpoint adds Schema and AffectedRows.
// Rows stay raw here because each row may be a positional array or an
// object keyed by column name.
type resultSet struct {
	Schema       []Column          `json:"schema"`
	Rows         []json.RawMessage `json:"rows"`
	AffectedRows *int64            `json:"affectedRows"`
}

// do performs one authenticated JSON exchange and decodes the response
// envelope. Network-level failures come back as *TransportError, non-2xx
// statuses and undecodable bodies as *RequestError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}) (*envelope, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, ErrRequest(0, "encode request body: %v", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, ErrConfiguration("build request for %s: %v", path, err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		switch {
		case errors.As(err, &netErr) && netErr.Timeout(),
			errors.Is(err, context.DeadlineExceeded):
			return nil, ErrTransport(err, "request to %s timed out", path)
		default:
			return nil, ErrTransport(err, "request to %s failed", path)
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrTransport(err, "read response from %s", path)
	}

	c.logger.DebugContext(ctx, "connect ai request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := ErrRequest(resp.StatusCode, "%s", serviceMessage(respBody))
		reqErr.Body = string(respBody)
		return nil, reqErr
	}

	dec := json.NewDecoder(bytes.NewReader(respBody))
	dec.UseNumber()
	var env envelope
	if err := dec.Decode(&env); err != nil {
		reqErr := ErrRequest(resp.StatusCode, "response is not valid JSON: %v", err)
		reqErr.Body = string(respBody)
		return nil, reqErr
	}
	return &env, nil
}

// firstResult returns the first result set of an envelope, or a
// *RequestError when the service sent an empty results array.
func (c *Client) firstResult(env *envelope, path string) (*resultSet, error) {
	if len(env.Results) == 0 {
		return nil, ErrRequest(http.StatusOK, "response from %s contains no results", path)
	}
	return &env.Results[0], nil
}

// serviceMessage extracts a human-readable message from an error response
// body: the "error" or "message" field when the body is structured JSON,
// the raw body otherwise.
func serviceMessage(body []byte) string {
	var structured struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &structured); err == nil {
		if structured.Error != "" {
			return structured.Error
		}
		if structured.Message != "" {
			return structured.Message
		}
	}
	return strings.TrimSpace(string(body))
}
