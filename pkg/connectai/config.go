package connectai

import (
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultBaseURL is the production Connect AI API endpoint.
const DefaultBaseURL = "https://cloud.cdata.com/api"

// Environment variables holding the account credentials.
const (
	EnvEmail = "CONNECT_AI_EMAIL"
	EnvToken = "CONNECT_AI_TOKEN"
)

const defaultTimeout = 30 * time.Second

// Config holds everything needed to construct a Client. It is built once at
// the boundary (CLI, automation entry point) and passed in, so nothing in
// the library reads process-wide state after construction.
type Config struct {
	// BaseURL of the API. Defaults to DefaultBaseURL.
	BaseURL string
	// Email is the account identity used for Basic auth.
	Email string
	// Token is the personal access token used for Basic auth.
	Token string
	// Timeout bounds each HTTP exchange. Defaults to 30s.
	Timeout time.Duration
	// HTTPClient overrides the underlying *http.Client when set.
	// Timeout is ignored in that case.
	HTTPClient *http.Client
	// Logger receives debug-level request logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// ConfigFromEnv resolves credentials from CONNECT_AI_EMAIL and
// CONNECT_AI_TOKEN. A missing or empty variable is a *ConfigurationError
// naming the variable; no network activity happens here.
func ConfigFromEnv() (Config, error) {
	email := strings.TrimSpace(os.Getenv(EnvEmail))
	token := strings.TrimSpace(os.Getenv(EnvToken))

	if email == "" {
		return Config{}, ErrConfiguration("%s environment variable must be set", EnvEmail)
	}
	if token == "" {
		return Config{}, ErrConfiguration("%s environment variable must be set", EnvToken)
	}

	return Config{Email: email, Token: token}, nil
}

func (c *Config) validate() error {
	if c.Email == "" {
		return ErrConfiguration("email must not be empty")
	}
	if c.Token == "" {
		return ErrConfiguration("access token must not be empty")
	}
	return nil
}
