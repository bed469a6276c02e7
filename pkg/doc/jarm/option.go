/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package jarm models the JWT Secured Authorization Response Mode (JARM)
// protection negotiated between the verifier frontend and the wallet, and
// provides a default verifier for protected wallet responses.
package jarm

import (
	"errors"
	"fmt"
)

// OptionType is the closed set of response-protection modes.
type OptionType string

const (
	// OptionTypeSigned expects a signed (JWS) authorization response.
	OptionTypeSigned OptionType = "signed"

	// OptionTypeEncrypted expects an encrypted (JWE) authorization response.
	OptionTypeEncrypted OptionType = "encrypted"

	// OptionTypeSignedAndEncrypted expects a signed response nested in an encrypted one.
	OptionTypeSignedAndEncrypted OptionType = "signedAndEncrypted"
)

// Option is an immutable description of the negotiated protection mode.
// The zero value is not usable; construct through NewSigned, NewEncrypted
// or NewSignedAndEncrypted so the type tag is always consistent with the
// populated algorithm identifiers.
type Option struct {
	optionType OptionType

	jwsAlg string
	jweAlg string
	jweEnc string

	signed    *Option
	encrypted *Option
}

// NewSigned returns the protection mode for a response signed with jwsAlg.
func NewSigned(jwsAlg string) (*Option, error) {
	if jwsAlg == "" {
		return nil, errors.New("jws alg is required")
	}

	return &Option{
		optionType: OptionTypeSigned,
		jwsAlg:     jwsAlg,
	}, nil
}

// NewEncrypted returns the protection mode for a response encrypted with
// key management algorithm jweAlg and content encryption jweEnc.
func NewEncrypted(jweAlg, jweEnc string) (*Option, error) {
	if jweAlg == "" {
		return nil, errors.New("jwe alg is required")
	}

	if jweEnc == "" {
		return nil, errors.New("jwe enc is required")
	}

	return &Option{
		optionType: OptionTypeEncrypted,
		jweAlg:     jweAlg,
		jweEnc:     jweEnc,
	}, nil
}

// NewSignedAndEncrypted combines a signed mode and an encrypted mode. The
// accessors delegate to the respective child.
func NewSignedAndEncrypted(signed, encrypted *Option) (*Option, error) {
	if signed == nil || signed.optionType != OptionTypeSigned {
		return nil, errors.New("signed child option of type signed is required")
	}

	if encrypted == nil || encrypted.optionType != OptionTypeEncrypted {
		return nil, errors.New("encrypted child option of type encrypted is required")
	}

	return &Option{
		optionType: OptionTypeSignedAndEncrypted,
		signed:     signed,
		encrypted:  encrypted,
	}, nil
}

// Type returns the protection mode tag.
func (o *Option) Type() OptionType {
	return o.optionType
}

// JWSAlg returns the signing algorithm. It is defined only for the signed
// and signedAndEncrypted modes.
func (o *Option) JWSAlg() (string, bool) {
	switch o.optionType {
	case OptionTypeSigned:
		return o.jwsAlg, true
	case OptionTypeSignedAndEncrypted:
		return o.signed.JWSAlg()
	case OptionTypeEncrypted:
		return "", false
	default:
		return "", false
	}
}

// JWEAlg returns the key management algorithm. It is defined only for the
// encrypted and signedAndEncrypted modes.
func (o *Option) JWEAlg() (string, bool) {
	switch o.optionType {
	case OptionTypeEncrypted:
		return o.jweAlg, true
	case OptionTypeSignedAndEncrypted:
		return o.encrypted.JWEAlg()
	case OptionTypeSigned:
		return "", false
	default:
		return "", false
	}
}

// JWEEnc returns the content encryption algorithm. It is defined only for
// the encrypted and signedAndEncrypted modes.
func (o *Option) JWEEnc() (string, bool) {
	switch o.optionType {
	case OptionTypeEncrypted:
		return o.jweEnc, true
	case OptionTypeSignedAndEncrypted:
		return o.encrypted.JWEEnc()
	case OptionTypeSigned:
		return "", false
	default:
		return "", false
	}
}

// String renders the mode with its algorithm identifiers for diagnostics.
func (o *Option) String() string {
	switch o.optionType {
	case OptionTypeSigned:
		return fmt.Sprintf("signed(%s)", o.jwsAlg)
	case OptionTypeEncrypted:
		return fmt.Sprintf("encrypted(%s,%s)", o.jweAlg, o.jweEnc)
	case OptionTypeSignedAndEncrypted:
		return fmt.Sprintf("signedAndEncrypted(%s,%s)", o.signed, o.encrypted)
	default:
		return string(o.optionType)
	}
}
