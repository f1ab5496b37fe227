package pokeapi

import (
	"errors"
	"fmt"
)

// RequestError indicates the network call itself failed: connectivity,
// timeout, or a non-200 status from the remote service.
type RequestError struct {
	URL    string
	Status int // 0 when the request never completed
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("request %s: HTTP %d", e.URL, e.Status)
	}
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// DecodeError indicates the response arrived but did not match the
// expected JSON shape.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err is a failed network call.
func IsNetworkError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}

// IsDecodeError reports whether err is a schema mismatch.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
