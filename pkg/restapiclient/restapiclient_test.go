/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package restapiclient_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/trustbloc/verifier-frontend/pkg/restapiclient"
)

func TestClient_InitTransaction(t *testing.T) {
	request := &restapiclient.InitTransactionRequest{
		Type:                              "vp_token",
		PresentationDefinition:            json.RawMessage(`{"id":"mdl-request","input_descriptors":[]}`),
		Nonce:                             "nonce-1",
		ResponseMode:                      "direct_post.jwt",
		EphemeralECDHPublicJWK:            json.RawMessage(`{"kty":"EC","crv":"P-256"}`),
		WalletResponseRedirectURITemplate: "https://frontend.example.com/wallet-response?response_code={RESPONSE_CODE}",
	}

	t.Run("Success", func(t *testing.T) {
		httpClient := &fakeHTTPClient{
			resp: jsonResponse(http.StatusOK,
				`{"presentation_id":"presentation-1","client_id":"verifier","request_uri":"https://backend/request"}`),
		}

		client := restapiclient.NewClient("https://backend.example.com/", "/ui/presentations", httpClient)

		resp, err := client.InitTransaction(context.Background(), request)
		require.NoError(t, err)

		assert.Equal(t, "presentation-1", resp.PresentationID)
		assert.Equal(t, "verifier", resp.ClientID)
		assert.Equal(t, "https://backend/request", resp.RequestURI)

		require.NotNil(t, httpClient.gotRequest)
		assert.Equal(t, http.MethodPost, httpClient.gotRequest.Method)
		assert.Equal(t, "https://backend.example.com/ui/presentations", httpClient.gotRequest.URL.String())
		assert.Equal(t, "application/json", httpClient.gotRequest.Header.Get("Content-Type"))

		body := httpClient.gotBody
		assert.Equal(t, "vp_token", gjson.GetBytes(body, "type").String())
		assert.Equal(t, "nonce-1", gjson.GetBytes(body, "nonce").String())
		assert.Equal(t, "mdl-request", gjson.GetBytes(body, "presentation_definition.id").String())
		assert.Equal(t, "EC", gjson.GetBytes(body, "ephemeral_ecdh_public_jwk.kty").String())
		assert.Contains(t, gjson.GetBytes(body, "wallet_response_redirect_uri_template").String(),
			"{RESPONSE_CODE}")
	})

	t.Run("Optional fields are omitted when empty", func(t *testing.T) {
		httpClient := &fakeHTTPClient{
			resp: jsonResponse(http.StatusOK, `{"presentation_id":"presentation-1","client_id":"verifier"}`),
		}

		client := restapiclient.NewClient("https://backend.example.com", "/ui/presentations", httpClient)

		_, err := client.InitTransaction(context.Background(), &restapiclient.InitTransactionRequest{
			Type:                   "vp_token",
			PresentationDefinition: json.RawMessage(`{}`),
			Nonce:                  "nonce-1",
			EphemeralECDHPublicJWK: json.RawMessage(`{}`),
		})
		require.NoError(t, err)

		body := httpClient.gotBody
		assert.False(t, gjson.GetBytes(body, "wallet_response_redirect_uri_template").Exists())
		assert.False(t, gjson.GetBytes(body, "jar_mode").Exists())
		assert.False(t, gjson.GetBytes(body, "presentation_definition_mode").Exists())
	})

	t.Run("Transport failure", func(t *testing.T) {
		client := restapiclient.NewClient("https://backend.example.com", "/ui/presentations",
			&fakeHTTPClient{err: errors.New("connection refused")})

		_, err := client.InitTransaction(context.Background(), request)
		require.ErrorContains(t, err, "connection refused")
	})

	t.Run("Unexpected status", func(t *testing.T) {
		client := restapiclient.NewClient("https://backend.example.com", "/ui/presentations",
			&fakeHTTPClient{resp: jsonResponse(http.StatusInternalServerError, `backend down`)})

		_, err := client.InitTransaction(context.Background(), request)
		require.ErrorContains(t, err, "unexpected status code 500")
		assert.False(t, errors.Is(err, restapiclient.ErrInvalidResponse))
	})

	t.Run("Malformed body is ErrInvalidResponse", func(t *testing.T) {
		client := restapiclient.NewClient("https://backend.example.com", "/ui/presentations",
			&fakeHTTPClient{resp: jsonResponse(http.StatusOK, `not-json`)})

		_, err := client.InitTransaction(context.Background(), request)
		require.ErrorIs(t, err, restapiclient.ErrInvalidResponse)
	})
}

func TestClient_GetWalletResponse(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		httpClient := &fakeHTTPClient{
			resp: jsonResponse(http.StatusOK, `{"state":"state-1","response":"protected.jarm.response"}`),
		}

		client := restapiclient.NewClient("https://backend.example.com", "/ui/presentations", httpClient)

		resp, err := client.GetWalletResponse(context.Background(), &restapiclient.GetWalletResponseRequest{
			PresentationID: "presentation-1",
			ResponseCode:   "code-1",
		})
		require.NoError(t, err)

		assert.Equal(t, "protected.jarm.response", resp.Response)

		require.NotNil(t, httpClient.gotRequest)
		assert.Equal(t, http.MethodGet, httpClient.gotRequest.Method)
		assert.Equal(t, "/ui/presentations/presentation-1", httpClient.gotRequest.URL.Path)
		assert.Equal(t, "code-1", httpClient.gotRequest.URL.Query().Get("response_code"))
	})

	t.Run("No response code omits the query param", func(t *testing.T) {
		httpClient := &fakeHTTPClient{
			resp: jsonResponse(http.StatusOK, `{"response":"protected.jarm.response"}`),
		}

		client := restapiclient.NewClient("https://backend.example.com", "/ui/presentations", httpClient)

		_, err := client.GetWalletResponse(context.Background(), &restapiclient.GetWalletResponseRequest{
			PresentationID: "presentation-1",
		})
		require.NoError(t, err)
		assert.Empty(t, httpClient.gotRequest.URL.RawQuery)
	})

	t.Run("Missing presentation id", func(t *testing.T) {
		client := restapiclient.NewClient("https://backend.example.com", "/ui/presentations",
			&fakeHTTPClient{})

		_, err := client.GetWalletResponse(context.Background(), &restapiclient.GetWalletResponseRequest{})
		require.ErrorContains(t, err, "presentation id is required")
	})

	t.Run("Presentation id is path escaped", func(t *testing.T) {
		httpClient := &fakeHTTPClient{
			resp: jsonResponse(http.StatusOK, `{"response":"protected.jarm.response"}`),
		}

		client := restapiclient.NewClient("https://backend.example.com", "/ui/presentations", httpClient)

		_, err := client.GetWalletResponse(context.Background(), &restapiclient.GetWalletResponseRequest{
			PresentationID: "a/b c",
		})
		require.NoError(t, err)
		assert.Equal(t, "/ui/presentations/a%2Fb%20c", httpClient.gotRequest.URL.EscapedPath())
	})
}

type fakeHTTPClient struct {
	resp *http.Response
	err  error

	gotRequest *http.Request
	gotBody    []byte
}

func (f *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	f.gotRequest = req

	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}

		f.gotBody = b
	}

	if f.err != nil {
		return nil, f.err
	}

	return f.resp, nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}
