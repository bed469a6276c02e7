/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package initiate declares the closed error-kind set of the
// transaction-initiation phase.
package initiate

import (
	"errors"
	"net/http"

	"github.com/trustbloc/verifier-frontend/pkg/resterr"
)

// ErrorCode is the closed set of phase-1 error kinds.
type ErrorCode string

const (
	// ErrorCodeMissingUserAgent - the inbound request carried no user-agent header. Terminal.
	ErrorCodeMissingUserAgent ErrorCode = "missing_user_agent"

	// ErrorCodeAPIRequestFailed - the call to the backend Presentation API failed.
	ErrorCodeAPIRequestFailed ErrorCode = "api_request_failed"

	// ErrorCodeInvalidResponse - the backend response or the derived redirect URI is malformed.
	ErrorCodeInvalidResponse ErrorCode = "invalid_response"

	// ErrorCodeSessionError - persisting the transaction state failed; the transaction is aborted.
	ErrorCodeSessionError ErrorCode = "session_error"
)

// Error represents a transaction-initiation error.
type Error = resterr.CodedError[ErrorCode]

func NewMissingUserAgentError(err error) *Error {
	return &Error{
		ErrorCode:  ErrorCodeMissingUserAgent,
		Err:        err,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewAPIRequestFailedError(err error) *Error {
	return &Error{
		ErrorCode:  ErrorCodeAPIRequestFailed,
		Err:        err,
		HTTPStatus: http.StatusBadGateway,
	}
}

func NewInvalidResponseError(err error) *Error {
	return &Error{
		ErrorCode:  ErrorCodeInvalidResponse,
		Err:        err,
		HTTPStatus: http.StatusBadGateway,
	}
}

func NewSessionError(err error) *Error {
	return &Error{
		ErrorCode:  ErrorCodeSessionError,
		Err:        err,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// Classify passes through errors already carrying a phase-1 code and wraps
// everything else into the broadest kind, api_request_failed, so callers
// never observe an unclassified error.
func Classify(err error) *Error {
	var classified *Error

	if errors.As(err, &classified) {
		return classified
	}

	return NewAPIRequestFailedError(err)
}
