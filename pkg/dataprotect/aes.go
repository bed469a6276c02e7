/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dataprotect

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// AES encrypts with AES-GCM under a static, config-provided key.
type AES struct {
	key []byte
}

// NewAES creates an AES cipher. The key must be 16, 24 or 32 bytes.
func NewAES(key []byte) (*AES, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("invalid aes key length %d", len(key))
	}

	return &AES{key: key}, nil
}

// Encrypt seals data, returning the ciphertext and the nonce used.
func (a *AES) Encrypt(data []byte) ([]byte, []byte, error) {
	gcm, err := a.newGCM()
	if err != nil {
		return nil, nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, err
	}

	return gcm.Seal(nil, nonce, data, nil), nonce, nil
}

// Decrypt opens ciphertext sealed by Encrypt.
func (a *AES) Decrypt(ciphertext, nonce []byte) ([]byte, error) {
	gcm, err := a.newGCM()
	if err != nil {
		return nil, err
	}

	if len(nonce) != gcm.NonceSize() {
		return nil, errors.New("invalid nonce size")
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: %w", err)
	}

	return plaintext, nil
}

func (a *AES) newGCM() (cipher.AEAD, error) {
	block, err := aes.NewCipher(a.key)
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}
