package services

import (
	"fmt"
)

// FetchError classifies transport-level feed failures: timeouts,
// connection errors, and non-2xx responses. An ingestion run that hits
// one aborts with nothing written; it is never retried automatically.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("feed fetch failed: %s returned status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("feed fetch failed: %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError means the feed payload could not be decoded as JSON.
// Terminal for the whole ingestion attempt.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("feed parse failed: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError means the payload was valid JSON but structurally wrong
// (no recognizable list of price rows). Terminal like ParseError.
type SchemaError struct {
	Msg string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("feed schema invalid: %s", e.Msg)
}
