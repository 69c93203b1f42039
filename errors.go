package yadisk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Error is an application error reported by the service. Code and
// Description are passed through exactly as received.
type Error struct {
	Code        string `json:"error"`
	Message     string `json:"message"`
	Description string `json:"description"`
	StatusCode  int    `json:"-"`
}

func (e *Error) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("yadisk: %s: %s", e.Code, e.Description)
	}
	return "yadisk: " + e.Code
}

// Error codes the client itself needs to recognize.
const (
	codeNotFound      = "DiskNotFoundError"
	codeParentMissing = "DiskPathDoesntExistsError"
	codeFolderExists  = "DiskPathPointsToExistentDirectoryError"
	codeFileExists    = "DiskResourceAlreadyExistsError"
)

// IsNotFound reports whether err says the resource does not exist.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && (e.Code == codeNotFound || e.StatusCode == http.StatusNotFound)
}

// IsAlreadyExists reports whether err says the target path is already taken.
func IsAlreadyExists(err error) bool {
	var e *Error
	return errors.As(err, &e) && (e.Code == codeFolderExists || e.Code == codeFileExists)
}

// isParentMissing reports whether err says an ancestor folder of the
// requested path does not exist.
func isParentMissing(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == codeParentMissing
}

// decodeError returns the provider application error carried by body, if
// any. Bodies without an "error" field on a non-2xx status map to a generic
// *Error so failures are never silently dropped.
func decodeError(status int, body []byte) error {
	if len(body) > 0 {
		var e Error
		if err := json.Unmarshal(body, &e); err == nil && e.Code != "" {
			e.StatusCode = status
			return &e
		}
	}
	if status >= http.StatusBadRequest {
		return &Error{
			Code:        http.StatusText(status),
			Description: fmt.Sprintf("unexpected status %d", status),
			StatusCode:  status,
		}
	}
	return nil
}

// Transfer failure kinds surfaced by Upload and Download.
var (
	ErrFileRequired       = errors.New("yadisk: local file required for upload")
	ErrPreconditionFailed = errors.New("yadisk: transfer precondition failed")
	ErrPayloadTooLarge    = errors.New("yadisk: file too large for the target disk")
	ErrServerFailure      = errors.New("yadisk: storage server failure")
	ErrTimeout            = errors.New("yadisk: transfer timed out")
)

// TransferError is a failure of the raw byte-stream phase of an upload or
// download. StatusCode is zero when the transport failed before a response
// arrived.
type TransferError struct {
	StatusCode int
	Kind       error
}

func (e *TransferError) Error() string {
	if e.Kind != nil {
		if e.StatusCode != 0 {
			return fmt.Sprintf("%v (status %d)", e.Kind, e.StatusCode)
		}
		return e.Kind.Error()
	}
	return fmt.Sprintf("yadisk: unexpected transfer status %d", e.StatusCode)
}

func (e *TransferError) Unwrap() error { return e.Kind }

// transferFailure maps a non-success transfer status to a named kind.
func transferFailure(status int) *TransferError {
	var kind error
	switch status {
	case http.StatusPreconditionFailed:
		kind = ErrPreconditionFailed
	case http.StatusRequestEntityTooLarge:
		kind = ErrPayloadTooLarge
	case http.StatusInternalServerError, http.StatusServiceUnavailable, http.StatusInsufficientStorage:
		kind = ErrServerFailure
	}
	return &TransferError{StatusCode: status, Kind: kind}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
