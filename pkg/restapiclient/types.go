/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package restapiclient

import "encoding/json"

// InitTransactionRequest is the phase-1 wire request toward the backend
// Presentation API. WalletResponseRedirectURITemplate is only populated
// for mobile clients; its absence tells the backend to use a different
// notification channel.
type InitTransactionRequest struct {
	Type                              string          `json:"type"`
	PresentationDefinition            json.RawMessage `json:"presentation_definition"`
	Nonce                             string          `json:"nonce"`
	ResponseMode                      string          `json:"response_mode,omitempty"`
	JarMode                           string          `json:"jar_mode,omitempty"`
	PresentationDefinitionMode        string          `json:"presentation_definition_mode,omitempty"`
	EphemeralECDHPublicJWK            json.RawMessage `json:"ephemeral_ecdh_public_jwk"`
	WalletResponseRedirectURITemplate string          `json:"wallet_response_redirect_uri_template,omitempty"`
}

// InitTransactionResponse is the phase-1 wire response.
type InitTransactionResponse struct {
	PresentationID string `json:"presentation_id"`
	ClientID       string `json:"client_id"`
	Request        string `json:"request,omitempty"`
	RequestURI     string `json:"request_uri,omitempty"`
}

// GetWalletResponseRequest addresses the phase-2 wallet-response resource.
type GetWalletResponseRequest struct {
	PresentationID string
	ResponseCode   string
}

// WalletResponse is the phase-2 wire envelope. Response is the opaque JARM
// protected payload, consumed by the JARM verifier.
type WalletResponse struct {
	State    string `json:"state,omitempty"`
	Response string `json:"response"`
}
