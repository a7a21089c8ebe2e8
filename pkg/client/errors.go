package client

import (
	"errors"
	"fmt"
)

// ErrUnavailable indicates a transport-level failure: the trade API could not
// be reached, timed out, or returned a payload that could not be decoded.
var ErrUnavailable = errors.New("trade api unavailable")

// ErrorClass represents a classification of fetch errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents network/timeout/decoding errors.
	ErrorClassNetwork ErrorClass = "network"
)

// RequestFailedError represents a non-success response from the trade API.
type RequestFailedError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

// Error implements the error interface.
func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("trade api request failed (status %d) on %s: %s",
		e.StatusCode, e.Endpoint, e.Message)
}

// Class returns the error classification for the response status.
func (e *RequestFailedError) Class() ErrorClass {
	return classifyStatus(e.StatusCode)
}

// classifyStatus categorizes a non-success HTTP status for observability.
func classifyStatus(status int) ErrorClass {
	switch {
	case status >= 400 && status < 500:
		return ErrorClassClient
	case status >= 500:
		return ErrorClassServer
	default:
		return ErrorClassNetwork
	}
}
