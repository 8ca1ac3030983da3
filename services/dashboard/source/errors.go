package source

import "fmt"

// TransportError signals that the network call could not be completed (DNS, connection refused,
// timeout)
type TransportError struct {
	Err error
}

// Error returns the error as string
func (e *TransportError) Error() string {
	return "transport error: " + e.Err.Error()
}

// Unwrap returns the wrapped network error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Kind returns the taxonomy kind of this error
func (e *TransportError) Kind() string {
	return "transport"
}

// ResponseError signals a non-success HTTP status from the metrics endpoint
type ResponseError struct {
	StatusCode int
}

// Error returns the error as string
func (e *ResponseError) Error() string {
	return fmt.Sprintf("non-2xx HTTP status code: %d", e.StatusCode)
}

// Kind returns the taxonomy kind of this error
func (e *ResponseError) Kind() string {
	return "response"
}

// ParseError signals a body that could not be decoded as a metrics payload
type ParseError struct {
	Reason string
}

// Error returns the error as string
func (e *ParseError) Error() string {
	return "malformed metrics payload: " + e.Reason
}

// Kind returns the taxonomy kind of this error
func (e *ParseError) Kind() string {
	return "parse"
}
