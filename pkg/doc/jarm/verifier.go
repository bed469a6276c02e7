/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jarm

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-jose/go-jose/v3"
	"github.com/valyala/fastjson"

	"github.com/trustbloc/verifier-frontend/pkg/kms/key"
)

// AuthorizationResponse is the decrypted and verified content of a JARM
// protected wallet response.
type AuthorizationResponse struct {
	VPToken                string          `json:"vp_token,omitempty"`
	IDToken                string          `json:"id_token,omitempty"`
	PresentationSubmission json.RawMessage `json:"presentation_submission,omitempty"`
	State                  string          `json:"state,omitempty"`
	Error                  string          `json:"error,omitempty"`
	ErrorDescription       string          `json:"error_description,omitempty"`
}

// KeyResolver resolves the wallet's verification key for signed response
// modes, typically through the wallet's metadata or DID document.
type KeyResolver interface {
	ResolveVerificationKey(keyID, alg string) (interface{}, error)
}

type verifierOpts struct {
	keyResolver KeyResolver
}

// VerifierOpt configures a Verifier.
type VerifierOpt func(opts *verifierOpts)

// WithKeyResolver enables verification of signed response modes.
func WithKeyResolver(resolver KeyResolver) VerifierOpt {
	return func(opts *verifierOpts) {
		opts.keyResolver = resolver
	}
}

// Verifier decrypts and verifies JARM protected wallet responses using the
// per-transaction ephemeral private key.
type Verifier struct {
	keyResolver KeyResolver
}

// NewVerifier creates a Verifier.
func NewVerifier(opts ...VerifierOpt) *Verifier {
	op := &verifierOpts{}

	for _, fn := range opts {
		fn(op)
	}

	return &Verifier{keyResolver: op.keyResolver}
}

// Verify unwraps the raw protected response according to the negotiated
// option and returns the contained authorization response.
func (v *Verifier) Verify(option *Option, privateKey *key.Private, response string) (*AuthorizationResponse, error) {
	if option == nil {
		return nil, errors.New("jarm option is required")
	}

	if response == "" {
		return nil, errors.New("response is empty")
	}

	switch option.Type() {
	case OptionTypeEncrypted:
		payload, err := v.decrypt(option, privateKey, response)
		if err != nil {
			return nil, err
		}

		return parseAuthorizationResponse(payload)
	case OptionTypeSignedAndEncrypted:
		inner, err := v.decrypt(option, privateKey, response)
		if err != nil {
			return nil, err
		}

		return v.verifySigned(option, string(inner))
	case OptionTypeSigned:
		return v.verifySigned(option, response)
	default:
		return nil, fmt.Errorf("unsupported jarm option type %s", option.Type())
	}
}

func (v *Verifier) decrypt(option *Option, privateKey *key.Private, response string) ([]byte, error) {
	if privateKey == nil {
		return nil, errors.New("ephemeral private key is required for encrypted response")
	}

	jwe, err := jose.ParseEncrypted(response)
	if err != nil {
		return nil, fmt.Errorf("parse jwe: %w", err)
	}

	if expectedAlg, ok := option.JWEAlg(); ok && jwe.Header.Algorithm != expectedAlg {
		return nil, fmt.Errorf("unexpected jwe alg %q, want %q", jwe.Header.Algorithm, expectedAlg)
	}

	payload, err := jwe.Decrypt(privateKey.JWK())
	if err != nil {
		return nil, fmt.Errorf("decrypt jarm response: %w", err)
	}

	return payload, nil
}

func (v *Verifier) verifySigned(option *Option, response string) (*AuthorizationResponse, error) {
	if v.keyResolver == nil {
		return nil, errors.New("no key resolver configured for signed response mode")
	}

	jws, err := jose.ParseSigned(response)
	if err != nil {
		return nil, fmt.Errorf("parse jws: %w", err)
	}

	if len(jws.Signatures) == 0 {
		return nil, errors.New("jws has no signatures")
	}

	header := jws.Signatures[0].Protected

	if expectedAlg, ok := option.JWSAlg(); ok && header.Algorithm != expectedAlg {
		return nil, fmt.Errorf("unexpected jws alg %q, want %q", header.Algorithm, expectedAlg)
	}

	verificationKey, err := v.keyResolver.ResolveVerificationKey(header.KeyID, header.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("resolve verification key: %w", err)
	}

	payload, err := jws.Verify(verificationKey)
	if err != nil {
		return nil, fmt.Errorf("verify jarm response signature: %w", err)
	}

	return parseAuthorizationResponse(payload)
}

func parseAuthorizationResponse(payload []byte) (*AuthorizationResponse, error) {
	parsed, err := fastjson.ParseBytes(payload)
	if err != nil {
		return nil, fmt.Errorf("parse authorization response payload: %w", err)
	}

	resp := &AuthorizationResponse{
		VPToken:          string(parsed.GetStringBytes("vp_token")),
		IDToken:          string(parsed.GetStringBytes("id_token")),
		State:            string(parsed.GetStringBytes("state")),
		Error:            string(parsed.GetStringBytes("error")),
		ErrorDescription: string(parsed.GetStringBytes("error_description")),
	}

	if submission := parsed.Get("presentation_submission"); submission != nil {
		resp.PresentationSubmission = submission.MarshalTo(nil)
	}

	return resp, nil
}
