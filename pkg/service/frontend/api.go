/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package frontend

import (
	"context"
	"encoding/json"

	"github.com/trustbloc/verifier-frontend/pkg/doc/jarm"
	"github.com/trustbloc/verifier-frontend/pkg/kms/key"
	"github.com/trustbloc/verifier-frontend/pkg/restapiclient"
	"github.com/trustbloc/verifier-frontend/pkg/session"
)

// InitiateTransactionData carries the inbound request attributes consumed
// by phase 1.
type InitiateTransactionData struct {
	UserAgent string
}

// InitiateTransactionResult is the phase-1 outcome.
type InitiateTransactionResult struct {
	WalletRedirectURI string `json:"wallet_redirect_uri"`
	IsMobile          bool   `json:"is_mobile"`
}

// Document is one mobile document extracted from a verified vp_token.
type Document struct {
	DocType    string                            `json:"doc_type"`
	Namespaces map[string]map[string]interface{} `json:"namespaces,omitempty"`
}

// MdocVerificationResult is what the external MDOC verifier reports. A
// Valid of false is a legitimate outcome, not an error.
type MdocVerificationResult struct {
	Valid     bool
	Documents []Document
}

// VerificationResult is the phase-2 outcome.
type VerificationResult struct {
	Valid     bool       `json:"valid"`
	Documents []Document `json:"documents"`
	VPToken   string     `json:"vp_token,omitempty"`
}

type backendClient interface {
	InitTransaction(
		ctx context.Context,
		req *restapiclient.InitTransactionRequest,
	) (*restapiclient.InitTransactionResponse, error)
	GetWalletResponse(
		ctx context.Context,
		req *restapiclient.GetWalletResponseRequest,
	) (*restapiclient.WalletResponse, error)
}

type sessionManager interface {
	Create(ctx context.Context, id session.ID, presentationID, nonce string, privateKey *key.Private) error
	PresentationID(ctx context.Context, id session.ID) (string, error)
	EphemeralPrivateKey(ctx context.Context, id session.ID) (*key.Private, error)
	Evict(ctx context.Context, id session.ID) error
}

type nonceGenerator interface {
	GenerateNonce() (string, error)
}

type keyCreator interface {
	CreateECDHKey(ctx context.Context) (*key.Private, error)
}

type presentationDefinitionProvider interface {
	Generate() (json.RawMessage, error)
}

type mobileClassifier interface {
	IsMobile(userAgent string) bool
}

type jarmVerifier interface {
	Verify(option *jarm.Option, privateKey *key.Private, response string) (*jarm.AuthorizationResponse, error)
}

type mdocVerifier interface {
	VerifyDeviceResponse(ctx context.Context, vpToken string) (*MdocVerificationResult, error)
}

// Collaborator contract aliases for implementers outside this package.
type (
	BackendClient                  = backendClient
	SessionManager                 = sessionManager
	NonceGen                       = nonceGenerator
	KeyCreator                     = keyCreator
	PresentationDefinitionProvider = presentationDefinitionProvider
	MobileClassifier               = mobileClassifier
	JarmVerifier                   = jarmVerifier
	MdocVerifier                   = mdocVerifier
)
