/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package retrieve_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/verifier-frontend/pkg/resterr/retrieve"
)

func TestConstructors(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		err        *retrieve.Error
		code       retrieve.ErrorCode
		httpStatus int
	}{
		{
			retrieve.NewMissingPresentationIDError(cause),
			retrieve.ErrorCodeMissingPresentationID, http.StatusBadRequest,
		},
		{
			retrieve.NewMissingVPTokenError(cause),
			retrieve.ErrorCodeMissingVPToken, http.StatusBadRequest,
		},
		{
			retrieve.NewAPIRequestFailedError(cause),
			retrieve.ErrorCodeAPIRequestFailed, http.StatusBadGateway,
		},
		{
			retrieve.NewInvalidResponseError(cause),
			retrieve.ErrorCodeInvalidResponse, http.StatusBadGateway,
		},
		{
			retrieve.NewSessionError(cause),
			retrieve.ErrorCodeSessionError, http.StatusInternalServerError,
		},
		{
			retrieve.NewMissingEphemeralECDHPrivateJWKError(cause),
			retrieve.ErrorCodeMissingEphemeralECDHPrivateJWK, http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.ErrorCode)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
			assert.ErrorIs(t, tt.err, cause)
		})
	}
}

func TestClassify(t *testing.T) {
	t.Run("Coded error passes through", func(t *testing.T) {
		original := retrieve.NewMissingVPTokenError(errors.New("no vp_token"))

		classified := retrieve.Classify(fmt.Errorf("wrap: %w", original))
		require.Same(t, original, classified)
	})

	t.Run("Unclassified error defaults to api_request_failed", func(t *testing.T) {
		cause := errors.New("boom")

		classified := retrieve.Classify(cause)
		assert.Equal(t, retrieve.ErrorCodeAPIRequestFailed, classified.ErrorCode)
		assert.ErrorIs(t, classified, cause)
	})
}
