package mlb

import (
	"errors"
	"fmt"
)

// ErrNoGameToday reports an empty schedule for the query date. It is a normal
// outcome, not a failure; callers distinguish it with errors.Is.
var ErrNoGameToday = errors.New("no game scheduled today")

// FetchError captures transport failures and non-success upstream responses.
// Fetches are not retried; the command pipeline turns this into a user-visible message.
type FetchError struct {
	StatusCode int // 0 when the request never completed
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("mlb: schedule fetch failed (status=%d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("mlb: schedule fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ParseError reports a response that decoded but is missing a required field,
// or one that could not be decoded at all.
type ParseError struct {
	Field string // empty for decode failures
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("mlb: schedule response missing %s", e.Field)
	}
	return fmt.Sprintf("mlb: schedule response malformed: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// AsFetchError attempts to unwrap an error into a FetchError.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// AsParseError attempts to unwrap an error into a ParseError.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
