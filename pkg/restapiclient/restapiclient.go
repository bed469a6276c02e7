/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package restapiclient is the typed HTTP client for the backend
// Presentation API consumed by the two frontend phases.
package restapiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const responseCodeQueryParam = "response_code"

// ErrInvalidResponse marks a response body that could not be decoded into
// the expected wire shape, as opposed to a transport or status failure.
var ErrInvalidResponse = errors.New("invalid response body")

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client calls the backend Presentation API.
type Client struct {
	hostURI string
	apiPath string
	client  httpClient
}

// NewClient creates a Client. apiPath is the presentations resource path,
// e.g. "/ui/presentations".
func NewClient(
	hostURI string,
	apiPath string,
	client httpClient,
) *Client {
	return &Client{
		hostURI: strings.TrimSuffix(hostURI, "/"),
		apiPath: apiPath,
		client:  client,
	}
}

// InitTransaction posts the presentation-initiation request.
func (c *Client) InitTransaction(
	ctx context.Context,
	req *InitTransactionRequest,
) (*InitTransactionResponse, error) {
	return sendInternal[InitTransactionRequest, InitTransactionResponse](
		ctx,
		c.client,
		http.MethodPost,
		fmt.Sprintf("%s%s", c.hostURI, c.apiPath),
		req,
	)
}

// GetWalletResponse fetches the protected wallet response for a
// presentation, passing the optional response code as a query parameter.
func (c *Client) GetWalletResponse(
	ctx context.Context,
	req *GetWalletResponseRequest,
) (*WalletResponse, error) {
	if req.PresentationID == "" {
		return nil, errors.New("presentation id is required")
	}

	query := url.Values{}

	if req.ResponseCode != "" {
		query.Set(responseCodeQueryParam, req.ResponseCode)
	}

	return getInternal[WalletResponse](
		ctx,
		c.client,
		fmt.Sprintf("%s%s/%s", c.hostURI, c.apiPath, url.PathEscape(req.PresentationID)),
		query,
	)
}
