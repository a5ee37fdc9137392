package ddragon

import "fmt"

// TransportError covers network failures and non-2xx responses. It is fatal
// to a family sync attempt; the version ledger is left untouched.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("ddragon: unexpected status %d from %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("ddragon: request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError covers malformed JSON or an unexpected document shape.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ddragon: failed to parse response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
