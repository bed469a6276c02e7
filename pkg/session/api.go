/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package session holds the per-transaction state that correlates the two
// frontend phases: the backend-assigned presentation id, the replay nonce
// and the serialized ephemeral ECDH private key.
package session

import (
	"context"
	"errors"
)

// ErrDataNotFound is returned when a session record, or a required slot of
// it, is absent or expired.
var ErrDataNotFound = errors.New("data not found")

// ID identifies one frontend session.
type ID string

// Record is the fixed session schema. All three slots are written together
// at phase-1 success; phase 2 only reads them.
type Record struct {
	PresentationID          string `json:"presentationId"`
	Nonce                   string `json:"nonce"`
	EphemeralECDHPrivateJWK string `json:"ephemeralECDHPrivateJwk"`
}

// Store persists session records keyed by ID.
//
// Concurrent operations on different IDs must never interfere. Concurrent
// writes to the same ID are last-write-wins; single-use consumption of a
// record is enforced above the store by the Manager's eviction policy.
type Store interface {
	// Get returns the record for id, or ErrDataNotFound.
	Get(ctx context.Context, id ID) (*Record, error)

	// Set writes the whole record in one operation.
	Set(ctx context.Context, id ID, record *Record) error

	// Delete removes the record. Deleting an absent record is not an error.
	Delete(ctx context.Context, id ID) error

	// Keys lists the IDs of all live records.
	Keys(ctx context.Context) ([]ID, error)
}
