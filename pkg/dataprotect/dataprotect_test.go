/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package dataprotect_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/verifier-frontend/pkg/dataprotect"
)

func TestDataProtector(t *testing.T) {
	aesCrypto, err := dataprotect.NewAES(randomKey(t, 32))
	require.NoError(t, err)

	protector := dataprotect.NewDataProtector(aesCrypto, 16, 4)

	t.Run("Round trip", func(t *testing.T) {
		msg := []byte("sensitive ephemeral key material that spans multiple chunks")

		encrypted, err := protector.Encrypt(context.Background(), msg)
		require.NoError(t, err)
		assert.Greater(t, len(encrypted.Chunks), 1)

		decrypted, err := protector.Decrypt(context.Background(), encrypted)
		require.NoError(t, err)
		assert.Equal(t, msg, decrypted)
	})

	t.Run("Chunks keep order", func(t *testing.T) {
		msg := bytes.Repeat([]byte("0123456789abcdef"), 20)

		encrypted, err := protector.Encrypt(context.Background(), msg)
		require.NoError(t, err)

		decrypted, err := protector.Decrypt(context.Background(), encrypted)
		require.NoError(t, err)
		assert.Equal(t, msg, decrypted)
	})

	t.Run("Tampered chunk fails decryption", func(t *testing.T) {
		encrypted, err := protector.Encrypt(context.Background(), []byte("payload"))
		require.NoError(t, err)

		encrypted.Chunks[0].Encrypted[0] ^= 0xff

		_, err = protector.Decrypt(context.Background(), encrypted)
		require.Error(t, err)
	})

	t.Run("Crypto failure propagates", func(t *testing.T) {
		failing := dataprotect.NewDataProtector(&failingCrypto{}, 16, 2)

		_, err := failing.Encrypt(context.Background(), []byte("payload"))
		require.ErrorContains(t, err, "encrypt failed")
	})
}

func TestNewAES(t *testing.T) {
	for _, size := range []int{16, 24, 32} {
		_, err := dataprotect.NewAES(randomKey(t, size))
		require.NoError(t, err)
	}

	_, err := dataprotect.NewAES(randomKey(t, 15))
	require.ErrorContains(t, err, "invalid aes key length")
}

func TestAES(t *testing.T) {
	aesCrypto, err := dataprotect.NewAES(randomKey(t, 16))
	require.NoError(t, err)

	t.Run("Round trip", func(t *testing.T) {
		ciphertext, nonce, err := aesCrypto.Encrypt([]byte("payload"))
		require.NoError(t, err)

		plaintext, err := aesCrypto.Decrypt(ciphertext, nonce)
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), plaintext)
	})

	t.Run("Invalid nonce size", func(t *testing.T) {
		ciphertext, _, err := aesCrypto.Encrypt([]byte("payload"))
		require.NoError(t, err)

		_, err = aesCrypto.Decrypt(ciphertext, []byte("short"))
		require.ErrorContains(t, err, "invalid nonce size")
	})
}

func randomKey(t *testing.T, size int) []byte {
	t.Helper()

	key := make([]byte, size)

	_, err := rand.Read(key)
	require.NoError(t, err)

	return key
}

type failingCrypto struct{}

func (f *failingCrypto) Encrypt([]byte) ([]byte, []byte, error) {
	return nil, nil, errors.New("encrypt failed")
}

func (f *failingCrypto) Decrypt([]byte, []byte) ([]byte, error) {
	return nil, errors.New("decrypt failed")
}
