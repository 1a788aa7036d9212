package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrAuthExpired matches every *AuthExpiredError. Callers should send the
	// operator back to a login surface.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrNoRefreshToken is the cause of an AuthExpiredError raised because
	// the store holds no refresh token.
	ErrNoRefreshToken = errors.New("no refresh token")

	// ErrEmptyAccessToken is returned when the refresh endpoint answers 2xx
	// without an access token.
	ErrEmptyAccessToken = errors.New("refresh response carried no access token")
)

// NetworkError is a transport failure: no response was received.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is any non-2xx answer that was not recovered by a refresh.
type HTTPError struct {
	Method  string
	URL     string
	Status  int
	Body    []byte
	Message string // server supplied message, when the body carried one
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// ValidationError is a 400/422 answer to a create or update call.
type ValidationError struct {
	HTTP *HTTPError
}

func (e *ValidationError) Error() string {
	if e.HTTP.Message != "" {
		return "validation failed: " + e.HTTP.Message
	}
	return "validation failed: " + http.StatusText(e.HTTP.Status)
}

func (e *ValidationError) Unwrap() error { return e.HTTP }

// Message returns the server message for display.
func (e *ValidationError) Message() string { return e.HTTP.Message }

// AuthExpiredError is terminal: the session could not be recovered and the
// token store has been cleared.
type AuthExpiredError struct {
	Cause error
}

func (e *AuthExpiredError) Error() string {
	if e.Cause == nil {
		return ErrAuthExpired.Error()
	}
	return fmt.Sprintf("%s: %v", ErrAuthExpired, e.Cause)
}

func (e *AuthExpiredError) Is(target error) bool { return target == ErrAuthExpired }

func (e *AuthExpiredError) Unwrap() error { return e.Cause }

// IsAuthExpired reports whether err ends the session.
func IsAuthExpired(err error) bool {
	return errors.Is(err, ErrAuthExpired)
}

// errorBody covers the shapes the services answer with:
// {"code","message","details"} and {"error"}.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Details any    `json:"details"`
}

func serverMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	switch {
	case eb.Message != "":
		return eb.Message
	case eb.Error != "":
		return eb.Error
	default:
		return eb.Code
	}
}

func isWrite(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

// statusError builds the error returned for a non-2xx response.
func statusError(method, url string, resp *Response) error {
	he := &HTTPError{
		Method:  method,
		URL:     url,
		Status:  resp.StatusCode,
		Body:    resp.Body,
		Message: serverMessage(resp.Body),
	}
	if isWrite(method) && (resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity) {
		return &ValidationError{HTTP: he}
	}
	return he
}
