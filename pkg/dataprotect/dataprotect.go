/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package dataprotect shields session-held key material before it reaches
// a storage backend.
package dataprotect

import (
	"context"

	"github.com/gammazero/workerpool"
	"github.com/samber/lo"
)

type crypto interface {
	Encrypt(data []byte) ([]byte, []byte, error)
	Decrypt(ciphertext, nonce []byte) ([]byte, error)
}

// EncryptedChunk is one sealed slice of the protected payload.
type EncryptedChunk struct {
	Encrypted []byte `json:"encrypted"`
	Nonce     []byte `json:"nonce"`
}

// EncryptedData is the storable envelope produced by DataProtector.
type EncryptedData struct {
	Chunks []*EncryptedChunk `json:"chunks"`
}

// DataProtector seals payloads chunk-wise so large values do not hold a
// single worker for their whole encryption.
type DataProtector struct {
	crypto             crypto
	maxChunkSize       int
	routinesPerRequest int
}

// NewDataProtector creates a DataProtector.
func NewDataProtector(crypto crypto, maxChunkSize, routinesPerRequest int) *DataProtector {
	if routinesPerRequest < 1 {
		routinesPerRequest = 1
	}

	if maxChunkSize < 1 {
		maxChunkSize = 1
	}

	return &DataProtector{
		crypto:             crypto,
		maxChunkSize:       maxChunkSize,
		routinesPerRequest: routinesPerRequest,
	}
}

// Encrypt seals msg into a storable envelope.
func (d *DataProtector) Encrypt(_ context.Context, msg []byte) (*EncryptedData, error) {
	var finalErr error

	chunks := lo.Chunk(msg, d.maxChunkSize)
	final := make([]*EncryptedChunk, len(chunks))
	pool := workerpool.New(d.routinesPerRequest)

	for i1, c1 := range chunks {
		i, c := i1, c1

		pool.Submit(func() {
			if finalErr != nil {
				return
			}

			encrypted, nonce, err := d.crypto.Encrypt(c)
			if err != nil {
				finalErr = err
				return
			}

			final[i] = &EncryptedChunk{Encrypted: encrypted, Nonce: nonce}
		})
	}

	pool.StopWait()

	if finalErr != nil {
		return nil, finalErr
	}

	return &EncryptedData{Chunks: final}, nil
}

// Decrypt opens an envelope produced by Encrypt.
func (d *DataProtector) Decrypt(_ context.Context, data *EncryptedData) ([]byte, error) {
	var finalErr error

	decrypted := make([][]byte, len(data.Chunks))
	pool := workerpool.New(d.routinesPerRequest)

	for i1, c1 := range data.Chunks {
		i, c := i1, c1

		pool.Submit(func() {
			if finalErr != nil {
				return
			}

			plaintext, err := d.crypto.Decrypt(c.Encrypted, c.Nonce)
			if err != nil {
				finalErr = err
				return
			}

			decrypted[i] = plaintext
		})
	}

	pool.StopWait()

	if finalErr != nil {
		return nil, finalErr
	}

	var final []byte
	for _, chunk := range decrypted {
		final = append(final, chunk...)
	}

	return final, nil
}
