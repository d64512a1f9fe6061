package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// QueryError marks a query the store rejected (usually a filter referencing a
// relation field the current schema doesn't have). Fallback ladders advance on
// it instead of failing the caller.
type QueryError struct {
	Status  int
	Message string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("store rejected query (%d): %s", e.Status, e.Message)
}

func IsQueryError(err error) bool {
	var qe *QueryError
	return errors.As(err, &qe)
}
