package client

import (
	"errors"
	"fmt"
)

// ErrNotDifferential means the server answered a differential request with
// something other than a delta.
var ErrNotDifferential = errors.New("response is not a differential response")

type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %s", e.Status)
	}
	return fmt.Sprintf("unexpected status %s: %s", e.Status, e.Body)
}
