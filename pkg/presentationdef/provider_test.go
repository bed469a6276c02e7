/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package presentationdef_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/verifier-frontend/pkg/presentationdef"
)

const mdlDefinition = `{
	"id": "mdl-request",
	"input_descriptors": [
		{
			"id": "org.iso.18013.5.1.mDL",
			"format": {"mso_mdoc": {"alg": ["ES256"]}},
			"constraints": {
				"fields": [
					{"path": ["$['org.iso.18013.5.1']['family_name']"], "intent_to_retain": false}
				]
			}
		}
	]
}`

func TestProvider(t *testing.T) {
	t.Run("Valid definition", func(t *testing.T) {
		provider, err := presentationdef.NewProvider(json.RawMessage(mdlDefinition))
		require.NoError(t, err)

		definition, err := provider.Generate()
		require.NoError(t, err)
		assert.JSONEq(t, mdlDefinition, string(definition))
	})

	t.Run("Missing id", func(t *testing.T) {
		_, err := presentationdef.NewProvider(json.RawMessage(`{"input_descriptors":[]}`))
		require.ErrorContains(t, err, "invalid presentation definition")
	})

	t.Run("Missing input descriptors", func(t *testing.T) {
		_, err := presentationdef.NewProvider(json.RawMessage(`{"id":"mdl-request"}`))
		require.ErrorContains(t, err, "invalid presentation definition")
	})

	t.Run("Not json", func(t *testing.T) {
		_, err := presentationdef.NewProvider(json.RawMessage(`not-json`))
		require.Error(t, err)
	})
}
