/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package mdocclient calls an external mdoc verification service. The
// frontend never parses device responses itself; it forwards the vp_token
// and trusts the verifier's verdict.
package mdocclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/trustbloc/verifier-frontend/pkg/service/frontend"
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is an HTTP implementation of the mdoc verifier contract.
type Client struct {
	verifyURL string
	client    httpClient
}

// NewClient creates a Client. verifyURL is the full verification endpoint,
// e.g. "https://mdoc-verifier.example.com/verify".
func NewClient(verifyURL string, client httpClient) *Client {
	return &Client{
		verifyURL: verifyURL,
		client:    client,
	}
}

type verifyRequest struct {
	VPToken string `json:"vp_token"`
}

type verifyResponse struct {
	Valid     bool                `json:"valid"`
	Documents []frontend.Document `json:"documents"`
}

// VerifyDeviceResponse posts the vp_token for verification. A verdict of
// valid=false comes back as a normal result, not an error.
func (c *Client) VerifyDeviceResponse(
	ctx context.Context,
	vpToken string,
) (*frontend.MdocVerificationResult, error) {
	body, err := json.Marshal(&verifyRequest{VPToken: vpToken})
	if err != nil {
		return nil, fmt.Errorf("marshal verify request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.verifyURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create verify request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("verify device response: %w", err)
	}

	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read verify response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %v with body %v",
			resp.StatusCode, string(respBody))
	}

	var verdict verifyResponse

	if err = json.Unmarshal(respBody, &verdict); err != nil {
		return nil, fmt.Errorf("decode verify response: %w", err)
	}

	return &frontend.MdocVerificationResult{
		Valid:     verdict.Valid,
		Documents: verdict.Documents,
	}, nil
}
