package connectai

import "fmt"

// ConfigurationError indicates missing or invalid client configuration,
// such as an unset credential environment variable. It is always raised
// before any network activity and is never worth retrying.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string { return e.Message }

// TransportError indicates the service could not be reached at all:
// connection refused, DNS failure, TLS handshake failure, or a request
// timeout. It wraps the underlying network error.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TransportError) Unwrap() error { return e.Err }

// RequestError indicates the service was reached but rejected the request
// or returned a payload the client could not interpret. Status holds the
// HTTP status code and Body the raw response body when one was read.
type RequestError struct {
	Status  int
	Message string
	Body    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("Connect AI API error (HTTP %d): %s", e.Status, e.Message)
}

// ErrConfiguration creates a ConfigurationError with a formatted message.
func ErrConfiguration(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

// ErrTransport creates a TransportError wrapping err.
func ErrTransport(err error, format string, args ...interface{}) *TransportError {
	return &TransportError{Message: fmt.Sprintf(format, args...), Err: err}
}

// ErrRequest creates a RequestError with a formatted message.
func ErrRequest(status int, format string, args ...interface{}) *RequestError {
	return &RequestError{Status: status, Message: fmt.Sprintf(format, args...)}
}
