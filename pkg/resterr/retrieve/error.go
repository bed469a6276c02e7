/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package retrieve declares the closed error-kind set of the
// wallet-response retrieval phase.
package retrieve

import (
	"errors"
	"net/http"

	"github.com/trustbloc/verifier-frontend/pkg/resterr"
)

// ErrorCode is the closed set of phase-2 error kinds.
type ErrorCode string

const (
	// ErrorCodeMissingPresentationID - no presentation id in session; expired or uninitialized. Terminal.
	ErrorCodeMissingPresentationID ErrorCode = "missing_presentation_id"

	// ErrorCodeMissingVPToken - the authorization response carried no vp_token.
	ErrorCodeMissingVPToken ErrorCode = "missing_vp_token"

	// ErrorCodeAPIRequestFailed - the call to the backend wallet-response API failed.
	ErrorCodeAPIRequestFailed ErrorCode = "api_request_failed"

	// ErrorCodeInvalidResponse - the response envelope or the credential verification input is malformed.
	ErrorCodeInvalidResponse ErrorCode = "invalid_response"

	// ErrorCodeSessionError - reading the transaction state failed.
	ErrorCodeSessionError ErrorCode = "session_error"

	// ErrorCodeMissingEphemeralECDHPrivateJWK - no ephemeral private key in session. Terminal.
	ErrorCodeMissingEphemeralECDHPrivateJWK ErrorCode = "missing_ephemeral_ecdh_private_jwk"
)

// Error represents a wallet-response retrieval error.
type Error = resterr.CodedError[ErrorCode]

func NewMissingPresentationIDError(err error) *Error {
	return &Error{
		ErrorCode:  ErrorCodeMissingPresentationID,
		Err:        err,
		HTTPStatus: http.StatusBadRequest,
	}
}

func NewMissingVPTokenError(err error) *Error {
	return &Error{
		ErrorCode:  ErrorCodeMissingVPToken,
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

func NewMissingEphemeralECDHPrivateJWKError(err error) *Error {
	return &Error{
		ErrorCode:  ErrorCodeMissingEphemeralECDHPrivateJWK,
		Err:        err,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Classify passes through errors already carrying a phase-2 code and wraps
// everything else into the broadest kind, api_request_failed, so callers
// never observe an unclassified error.
func Classify(err error) *Error {
	var classified *Error

	if errors.As(err, &classified) {
		return classified
	}

	return NewAPIRequestFailedError(err)
}
