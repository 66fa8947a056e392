package jobs

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError reports a non-2xx response from a provider.
type StatusError struct {
	Provider string
	Code     int
	Status   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: bad status: %s", e.Provider, e.Status)
}

// IsAuthError reports whether err is a provider rejecting its credentials.
func IsAuthError(err error) bool {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	return statusErr.Code == http.StatusUnauthorized || statusErr.Code == http.StatusForbidden
}
