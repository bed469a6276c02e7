/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package presentationdef supplies the presentation definition attached to
// every initiation request. The definition content is authored outside
// this module; the provider only guards its shape.
package presentationdef

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed presentation_definition_schema.json
var definitionSchema []byte

// Provider hands out a schema-validated presentation definition.
type Provider struct {
	definition json.RawMessage
}

// NewProvider validates definition against the presentation-exchange
// schema and returns a Provider serving it.
func NewProvider(definition json.RawMessage) (*Provider, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(definitionSchema),
		gojsonschema.NewBytesLoader(definition),
	)
	if err != nil {
		return nil, fmt.Errorf("validate presentation definition: %w", err)
	}

	if !result.Valid() {
		return nil, fmt.Errorf("invalid presentation definition: %s", result.Errors())
	}

	return &Provider{definition: definition}, nil
}

// Generate returns the definition for one initiation request.
func (p *Provider) Generate() (json.RawMessage, error) {
	return p.definition, nil
}
