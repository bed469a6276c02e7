/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/trustbloc/verifier-frontend/pkg/dataprotect"
	"github.com/trustbloc/verifier-frontend/pkg/kms/key"
)

type dataProtector interface {
	Encrypt(ctx context.Context, msg []byte) (*dataprotect.EncryptedData, error)
	Decrypt(ctx context.Context, data *dataprotect.EncryptedData) ([]byte, error)
}

// Manager mediates all access to the session schema. It performs the
// single logical phase-1 write, protects the private key slot at rest and
// owns the single-use eviction policy.
type Manager struct {
	store     Store
	protector dataProtector
}

// NewManager creates a Manager.
func NewManager(store Store, protector dataProtector) *Manager {
	return &Manager{
		store:     store,
		protector: protector,
	}
}

// Create persists the complete transaction state as one logical write.
// There is no valid partial state: any failure leaves the caller with an
// aborted transaction.
func (m *Manager) Create(ctx context.Context, id ID, presentationID, nonce string, privateKey *key.Private) error {
	if presentationID == "" {
		return errors.New("presentation id is empty")
	}

	if nonce == "" {
		return errors.New("nonce is empty")
	}

	if privateKey == nil {
		return errors.New("ephemeral private key is nil")
	}

	privateJWK, err := privateKey.Bytes()
	if err != nil {
		return fmt.Errorf("serialize ephemeral private jwk: %w", err)
	}

	protectedJWK, err := m.protectKey(ctx, privateJWK)
	if err != nil {
		return err
	}

	record := &Record{
		PresentationID:          presentationID,
		Nonce:                   nonce,
		EphemeralECDHPrivateJWK: protectedJWK,
	}

	if err = m.store.Set(ctx, id, record); err != nil {
		return fmt.Errorf("session set: %w", err)
	}

	return nil
}

// PresentationID reads the presentation-id slot.
func (m *Manager) PresentationID(ctx context.Context, id ID) (string, error) {
	record, err := m.store.Get(ctx, id)
	if err != nil {
		return "", err
	}

	if record.PresentationID == "" {
		return "", ErrDataNotFound
	}

	return record.PresentationID, nil
}

// Nonce reads the nonce slot.
func (m *Manager) Nonce(ctx context.Context, id ID) (string, error) {
	record, err := m.store.Get(ctx, id)
	if err != nil {
		return "", err
	}

	if record.Nonce == "" {
		return "", ErrDataNotFound
	}

	return record.Nonce, nil
}

// EphemeralPrivateKey reads and unprotects the private key slot.
func (m *Manager) EphemeralPrivateKey(ctx context.Context, id ID) (*key.Private, error) {
	record, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if record.EphemeralECDHPrivateJWK == "" {
		return nil, ErrDataNotFound
	}

	privateJWK, err := m.unprotectKey(ctx, record.EphemeralECDHPrivateJWK)
	if err != nil {
		return nil, err
	}

	privateKey, err := key.ParsePrivate(privateJWK)
	if err != nil {
		return nil, fmt.Errorf("restore ephemeral private key: %w", err)
	}

	return privateKey, nil
}

// Evict removes the record. Called once the transaction completed
// successfully; the ephemeral key is single-use.
func (m *Manager) Evict(ctx context.Context, id ID) error {
	return m.store.Delete(ctx, id)
}

func (m *Manager) protectKey(ctx context.Context, privateJWK []byte) (string, error) {
	encrypted, err := m.protector.Encrypt(ctx, privateJWK)
	if err != nil {
		return "", fmt.Errorf("protect ephemeral private jwk: %w", err)
	}

	envelope, err := json.Marshal(encrypted)
	if err != nil {
		return "", fmt.Errorf("marshal protected jwk envelope: %w", err)
	}

	return base64.StdEncoding.EncodeToString(envelope), nil
}

func (m *Manager) unprotectKey(ctx context.Context, protectedJWK string) ([]byte, error) {
	envelope, err := base64.StdEncoding.DecodeString(protectedJWK)
	if err != nil {
		return nil, fmt.Errorf("decode protected jwk envelope: %w", err)
	}

	var encrypted dataprotect.EncryptedData

	if err = json.Unmarshal(envelope, &encrypted); err != nil {
		return nil, fmt.Errorf("unmarshal protected jwk envelope: %w", err)
	}

	privateJWK, err := m.protector.Decrypt(ctx, &encrypted)
	if err != nil {
		return nil, fmt.Errorf("unprotect ephemeral private jwk: %w", err)
	}

	return privateJWK, nil
}
