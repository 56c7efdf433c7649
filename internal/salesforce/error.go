package salesforce

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrClientNotInitialized is returned when the Salesforce client is not initialized.
	ErrClientNotInitialized = errors.New("salesforce client not initialized")

	// ErrNoInstanceURL is returned when the token response carries no instance url.
	ErrNoInstanceURL = errors.New("salesforce token response did not include an instance url")
)

// APIError is a non-2xx response from the Salesforce REST API.
type APIError struct {
	Status    int
	ErrorCode string
	Message   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("salesforce api error (status %d, code %s): %s", e.Status, e.ErrorCode, e.Message)
}

// newAPIError decodes the standard Salesforce error payload, which is a list
// of message/errorCode pairs. Falls back to the HTTP status when the body is
// not in the expected shape.
func newAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var payload []struct {
		Message   string `json:"message"`
		ErrorCode string `json:"errorCode"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && len(payload) > 0 {
		apiErr.Message = payload[0].Message
		apiErr.ErrorCode = payload[0].ErrorCode
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
