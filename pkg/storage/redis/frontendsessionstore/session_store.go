/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package frontendsessionstore keeps frontend session records in redis
// with TTL-based expiry.
package frontendsessionstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	redisapi "github.com/redis/go-redis/v9"

	"github.com/trustbloc/verifier-frontend/pkg/session"
	"github.com/trustbloc/verifier-frontend/pkg/storage/redis"
)

const (
	keyPrefix = "frontend_session"

	keysScanBatchSize = 100
)

// Store implements session.Store over redis.
type Store struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// New creates a new instance of Store.
func New(redisClient *redis.Client, ttlSec int32) *Store {
	return &Store{
		redisClient: redisClient,
		ttl:         time.Duration(ttlSec) * time.Second,
	}
}

// Get returns the record for id, or session.ErrDataNotFound.
func (s *Store) Get(ctx context.Context, id session.ID) (*session.Record, error) {
	b, err := s.redisClient.API().Get(ctx, resolveRedisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redisapi.Nil) {
			return nil, session.ErrDataNotFound
		}

		return nil, fmt.Errorf("find key: %w", err)
	}

	var doc redisDocument
	if err = doc.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("decode session document: %w", err)
	}

	if doc.ExpireAt.Before(time.Now().UTC()) {
		return nil, session.ErrDataNotFound
	}

	record := doc.Record

	return &record, nil
}

// Set writes the whole record under id. A concurrent Set to the same id is
// last-write-wins.
func (s *Store) Set(ctx context.Context, id session.ID, record *session.Record) error {
	doc := &redisDocument{
		Record:   *record,
		ExpireAt: time.Now().UTC().Add(s.ttl),
	}

	if err := s.redisClient.API().Set(ctx, resolveRedisKey(id), doc, s.ttl).Err(); err != nil {
		return fmt.Errorf("set session record: %w", err)
	}

	return nil
}

// Delete removes the record. Deleting an absent record is not an error.
func (s *Store) Delete(ctx context.Context, id session.ID) error {
	if err := s.redisClient.API().Del(ctx, resolveRedisKey(id)).Err(); err != nil {
		return fmt.Errorf("del failed: %w", err)
	}

	return nil
}

// Keys lists the IDs of all live records.
func (s *Store) Keys(ctx context.Context) ([]session.ID, error) {
	var (
		ids    []session.ID
		cursor uint64
	)

	for {
		keys, next, err := s.redisClient.API().
			Scan(ctx, cursor, keyPrefix+"-*", keysScanBatchSize).Result()
		if err != nil {
			return nil, fmt.Errorf("scan keys: %w", err)
		}

		for _, k := range keys {
			ids = append(ids, session.ID(strings.TrimPrefix(k, keyPrefix+"-")))
		}

		cursor = next

		if cursor == 0 {
			break
		}
	}

	return ids, nil
}

func resolveRedisKey(id session.ID) string {
	return fmt.Sprintf("%s-%s", keyPrefix, id)
}
