package services

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidInput marks a configuration rejected before computation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedResponse marks a CRM body that is not JSON or lacks
	// the expected contact collection.
	ErrMalformedResponse = errors.New("malformed CRM response")

	// ErrNotConfigured is returned when the CRM credentials are missing.
	ErrNotConfigured = errors.New("KARLIA API key is not configured")
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// UpstreamError is a non-2xx answer from the CRM.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("KARLIA API error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// NetworkError wraps a transport failure talking to the CRM.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("KARLIA %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusCode extracts the upstream status from err, 0 when there is none.
func StatusCode(err error) int {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.StatusCode
	}
	return 0
}

// User-facing messages shown by the configurator.
const (
	MessageAuthFailed    = "Erreur d'authentification. Vérifiez votre clé API KARLIA."
	MessageNotFound      = "Ressource non trouvée. Vérifiez les identifiants et URLs."
	MessageServerError   = "Erreur serveur KARLIA. Veuillez réessayer plus tard."
	MessageGenericError  = "Une erreur est survenue lors de la communication avec KARLIA."
	MessageNotConfigured = "La connexion à KARLIA n'est pas configurée."
)

// UserMessage categorizes a CRM failure by status code range.
func UserMessage(err error) string {
	if errors.Is(err, ErrNotConfigured) {
		return MessageNotConfigured
	}
	code := StatusCode(err)
	switch {
	case code == http.StatusUnauthorized:
		return MessageAuthFailed
	case code == http.StatusNotFound:
		return MessageNotFound
	case code >= 500 && code <= 599:
		return MessageServerError
	}
	return MessageGenericError
}
