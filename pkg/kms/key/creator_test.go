/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package key_test

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"testing"

	"github.com/go-jose/go-jose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/verifier-frontend/pkg/kms/key"
)

func TestCreator_CreateECDHKey(t *testing.T) {
	privateKey, err := key.NewCreator().CreateECDHKey(context.Background())
	require.NoError(t, err)

	jwk := privateKey.JWK()

	assert.NotEmpty(t, privateKey.KeyID())
	assert.Equal(t, "enc", jwk.Use)
	assert.Equal(t, "ECDH-ES", jwk.Algorithm)
	assert.False(t, jwk.IsPublic())

	ecKey, ok := jwk.Key.(*ecdsa.PrivateKey)
	require.True(t, ok)
	assert.Equal(t, elliptic.P256(), ecKey.Curve)
}

func TestCreator_WithCurve(t *testing.T) {
	privateKey, err := key.NewCreator(key.WithCurve(elliptic.P384())).CreateECDHKey(context.Background())
	require.NoError(t, err)

	ecKey, ok := privateKey.JWK().Key.(*ecdsa.PrivateKey)
	require.True(t, ok)
	assert.Equal(t, elliptic.P384(), ecKey.Curve)
}

func TestPrivate_DerivePublic(t *testing.T) {
	privateKey, err := key.NewCreator().CreateECDHKey(context.Background())
	require.NoError(t, err)

	publicKey := privateKey.DerivePublic()

	b, err := publicKey.MarshalJSON()
	require.NoError(t, err)

	var fields map[string]interface{}

	require.NoError(t, json.Unmarshal(b, &fields))
	assert.NotContains(t, fields, "d")
	assert.Contains(t, fields, "x")
	assert.Contains(t, fields, "y")
	assert.Equal(t, privateKey.KeyID(), fields["kid"])
}

func TestParsePrivate(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		privateKey, err := key.NewCreator().CreateECDHKey(context.Background())
		require.NoError(t, err)

		b, err := privateKey.Bytes()
		require.NoError(t, err)

		restored, err := key.ParsePrivate(b)
		require.NoError(t, err)
		assert.Equal(t, privateKey.KeyID(), restored.KeyID())
	})

	t.Run("Not json", func(t *testing.T) {
		_, err := key.ParsePrivate([]byte("not-json"))
		require.ErrorContains(t, err, "unmarshal private jwk")
	})

	t.Run("Public-only jwk is rejected", func(t *testing.T) {
		ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		publicJWK := jose.JSONWebKey{Key: &ecKey.PublicKey}

		b, err := publicJWK.MarshalJSON()
		require.NoError(t, err)

		_, err = key.ParsePrivate(b)
		require.ErrorContains(t, err, "no private key material")
	})
}
