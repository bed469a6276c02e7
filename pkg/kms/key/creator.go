/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package key holds the ephemeral ECDH key material minted once per
// presentation transaction. The private half never leaves the session
// store; the public half is the only part sent to the backend.
package key

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-jose/go-jose/v3"
	"github.com/google/uuid"
)

const (
	keyUseEnc = "enc"
	ecdhESAlg = "ECDH-ES"
)

// Private wraps a JWK carrying EC private key material.
type Private struct {
	jwk jose.JSONWebKey
}

// Public wraps a JWK carrying only the public half of an EC key.
type Public struct {
	jwk jose.JSONWebKey
}

// NewPrivate validates that jwk carries private key material.
func NewPrivate(jwk jose.JSONWebKey) (*Private, error) {
	if !jwk.Valid() {
		return nil, errors.New("invalid jwk")
	}

	if jwk.IsPublic() {
		return nil, errors.New("jwk carries no private key material")
	}

	return &Private{jwk: jwk}, nil
}

// ParsePrivate restores a private key from its serialized JWK form.
func ParsePrivate(raw []byte) (*Private, error) {
	var jwk jose.JSONWebKey

	if err := json.Unmarshal(raw, &jwk); err != nil {
		return nil, fmt.Errorf("unmarshal private jwk: %w", err)
	}

	return NewPrivate(jwk)
}

// JWK returns the underlying JWK, private material included.
func (p *Private) JWK() jose.JSONWebKey {
	return p.jwk
}

// KeyID returns the key identifier assigned at creation.
func (p *Private) KeyID() string {
	return p.jwk.KeyID
}

// Bytes serializes the private JWK for session storage.
func (p *Private) Bytes() ([]byte, error) {
	b, err := p.jwk.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal private jwk: %w", err)
	}

	return b, nil
}

// DerivePublic strips the private key material. This is the only supported
// way to obtain an outward-facing representation of the transaction key.
func (p *Private) DerivePublic() *Public {
	return &Public{jwk: p.jwk.Public()}
}

// JWK returns the underlying public JWK.
func (p *Public) JWK() jose.JSONWebKey {
	return p.jwk
}

// MarshalJSON renders the public JWK in its wire form.
func (p *Public) MarshalJSON() ([]byte, error) {
	return p.jwk.MarshalJSON()
}

type creatorOpts struct {
	curve elliptic.Curve
}

// CreatorOpt configures a Creator.
type CreatorOpt func(opts *creatorOpts)

// WithCurve overrides the default P-256 curve.
func WithCurve(curve elliptic.Curve) CreatorOpt {
	return func(opts *creatorOpts) {
		opts.curve = curve
	}
}

// Creator mints fresh ephemeral ECDH key pairs.
type Creator struct {
	curve elliptic.Curve
}

// NewCreator creates a Creator.
func NewCreator(opts ...CreatorOpt) *Creator {
	op := &creatorOpts{
		curve: elliptic.P256(),
	}

	for _, fn := range opts {
		fn(op)
	}

	return &Creator{curve: op.curve}
}

// CreateECDHKey generates a fresh EC key pair wrapped in a JWK marked for
// ECDH-ES key agreement. The context is accepted so remote implementations
// of the same contract can honor cancellation.
func (c *Creator) CreateECDHKey(_ context.Context) (*Private, error) {
	ecKey, err := ecdsa.GenerateKey(c.curve, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate ec key: %w", err)
	}

	return &Private{
		jwk: jose.JSONWebKey{
			Key:       ecKey,
			KeyID:     uuid.NewString(),
			Use:       keyUseEnc,
			Algorithm: ecdhESAlg,
		},
	}, nil
}
