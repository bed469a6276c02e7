/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jarm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/verifier-frontend/pkg/doc/jarm"
)

func TestNewSigned(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		option, err := jarm.NewSigned("ES256")
		require.NoError(t, err)

		assert.Equal(t, jarm.OptionTypeSigned, option.Type())

		alg, ok := option.JWSAlg()
		require.True(t, ok)
		assert.Equal(t, "ES256", alg)

		_, ok = option.JWEAlg()
		assert.False(t, ok)

		_, ok = option.JWEEnc()
		assert.False(t, ok)
	})

	t.Run("Empty alg", func(t *testing.T) {
		_, err := jarm.NewSigned("")
		require.Error(t, err)
	})
}

func TestNewEncrypted(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		option, err := jarm.NewEncrypted("ECDH-ES", "A128CBC-HS256")
		require.NoError(t, err)

		assert.Equal(t, jarm.OptionTypeEncrypted, option.Type())

		_, ok := option.JWSAlg()
		assert.False(t, ok)

		alg, ok := option.JWEAlg()
		require.True(t, ok)
		assert.Equal(t, "ECDH-ES", alg)

		enc, ok := option.JWEEnc()
		require.True(t, ok)
		assert.Equal(t, "A128CBC-HS256", enc)
	})

	t.Run("Empty alg", func(t *testing.T) {
		_, err := jarm.NewEncrypted("", "A128CBC-HS256")
		require.Error(t, err)
	})

	t.Run("Empty enc", func(t *testing.T) {
		_, err := jarm.NewEncrypted("ECDH-ES", "")
		require.Error(t, err)
	})
}

func TestNewSignedAndEncrypted(t *testing.T) {
	signed, err := jarm.NewSigned("ES256")
	require.NoError(t, err)

	encrypted, err := jarm.NewEncrypted("ECDH-ES", "A128CBC-HS256")
	require.NoError(t, err)

	t.Run("Success delegates to children", func(t *testing.T) {
		option, err := jarm.NewSignedAndEncrypted(signed, encrypted)
		require.NoError(t, err)

		assert.Equal(t, jarm.OptionTypeSignedAndEncrypted, option.Type())

		alg, ok := option.JWSAlg()
		require.True(t, ok)
		assert.Equal(t, "ES256", alg)

		jweAlg, ok := option.JWEAlg()
		require.True(t, ok)
		assert.Equal(t, "ECDH-ES", jweAlg)

		jweEnc, ok := option.JWEEnc()
		require.True(t, ok)
		assert.Equal(t, "A128CBC-HS256", jweEnc)
	})

	t.Run("Nil signed child", func(t *testing.T) {
		_, err := jarm.NewSignedAndEncrypted(nil, encrypted)
		require.Error(t, err)
	})

	t.Run("Nil encrypted child", func(t *testing.T) {
		_, err := jarm.NewSignedAndEncrypted(signed, nil)
		require.Error(t, err)
	})

	t.Run("Wrong-variant children", func(t *testing.T) {
		_, err := jarm.NewSignedAndEncrypted(encrypted, encrypted)
		require.Error(t, err)

		_, err = jarm.NewSignedAndEncrypted(signed, signed)
		require.Error(t, err)
	})
}

func TestOption_String(t *testing.T) {
	signed, err := jarm.NewSigned("ES256")
	require.NoError(t, err)
	assert.NotEmpty(t, signed.String())

	encrypted, err := jarm.NewEncrypted("ECDH-ES", "A128CBC-HS256")
	require.NoError(t, err)
	assert.NotEmpty(t, encrypted.String())

	both, err := jarm.NewSignedAndEncrypted(signed, encrypted)
	require.NoError(t, err)
	assert.NotEmpty(t, both.String())
}
