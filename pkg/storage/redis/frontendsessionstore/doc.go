/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package frontendsessionstore

import (
	"encoding/json"
	"time"

	"github.com/trustbloc/verifier-frontend/pkg/session"
)

type redisDocument struct {
	Record   session.Record `json:"record"`
	ExpireAt time.Time      `json:"expireAt,omitempty"`
}

func (d *redisDocument) MarshalBinary() ([]byte, error) {
	return json.Marshal(d)
}

func (d *redisDocument) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, d)
}
