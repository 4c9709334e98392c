package typesense

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("typesense: %d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// IsUnauthorized reports whether err is a rejected API key.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
