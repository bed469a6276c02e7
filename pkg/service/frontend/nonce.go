/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package frontend

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const nonceSize = 16

// NonceGenerator is the default replay-nonce source.
type NonceGenerator struct {
	size int
}

// NewNonceGenerator creates a NonceGenerator.
func NewNonceGenerator() *NonceGenerator {
	return &NonceGenerator{size: nonceSize}
}

// GenerateNonce returns a fresh URL-safe random nonce.
func (g *NonceGenerator) GenerateNonce() (string, error) {
	nonceBytes := make([]byte, g.size)

	if _, err := rand.Read(nonceBytes); err != nil {
		return "", fmt.Errorf("nonce generating random failed: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(nonceBytes), nil
}
