/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package frontendsessionstore keeps frontend session records in mongo
// with an expireAt TTL index.
package frontendsessionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trustbloc/verifier-frontend/pkg/session"
	"github.com/trustbloc/verifier-frontend/pkg/storage/mongodb"
)

const (
	sessionCollection = "frontendsessionstore"
)

type sessionDocument struct {
	ID       string         `bson:"_id,omitempty"`
	Record   session.Record `bson:"record"`
	ExpireAt time.Time      `bson:"expireAt"`
}

// Store implements session.Store over mongo.
type Store struct {
	mongoClient *mongodb.Client
	ttl         time.Duration
}

// New creates Store.
func New(mongoClient *mongodb.Client, ttlSec int32) (*Store, error) {
	s := &Store{
		mongoClient: mongoClient,
		ttl:         time.Duration(ttlSec) * time.Second,
	}

	if err := s.migrate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) migrate() error {
	ctxWithTimeout, cancel := s.mongoClient.ContextWithTimeout()
	defer cancel()

	if _, err := s.mongoClient.Database().Collection(sessionCollection).Indexes().
		CreateMany(ctxWithTimeout, []mongo.IndexModel{
			{ // ttl index https://www.mongodb.com/community/forums/t/ttl-index-internals/4086/2
				Keys: map[string]interface{}{
					"expireAt": 1,
				},
				Options: options.Index().SetExpireAfterSeconds(0),
			},
		}); err != nil {
		return err
	}

	return nil
}

// Get returns the record for id, or session.ErrDataNotFound.
func (s *Store) Get(ctx context.Context, id session.ID) (*session.Record, error) {
	collection := s.mongoClient.Database().Collection(sessionCollection)

	doc := &sessionDocument{}

	err := collection.FindOne(ctx, bson.M{"_id": string(id)}).Decode(doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, session.ErrDataNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("mongo find failed: %w", err)
	}

	// Mongo evicts expired documents lazily; an expired record must not be
	// served in the window before the TTL monitor runs.
	if doc.ExpireAt.Before(time.Now().UTC()) {
		return nil, session.ErrDataNotFound
	}

	record := doc.Record

	return &record, nil
}

// Set writes the whole record under id. A concurrent Set to the same id is
// last-write-wins.
func (s *Store) Set(ctx context.Context, id session.ID, record *session.Record) error {
	collection := s.mongoClient.Database().Collection(sessionCollection)

	doc := &sessionDocument{
		ID:       string(id),
		Record:   *record,
		ExpireAt: time.Now().UTC().Add(s.ttl),
	}

	_, err := collection.ReplaceOne(ctx,
		bson.M{"_id": string(id)}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace failed: %w", err)
	}

	return nil
}

// Delete removes the record. Deleting an absent record is not an error.
func (s *Store) Delete(ctx context.Context, id session.ID) error {
	collection := s.mongoClient.Database().Collection(sessionCollection)

	if _, err := collection.DeleteOne(ctx, bson.M{"_id": string(id)}); err != nil {
		return fmt.Errorf("mongo delete failed: %w", err)
	}

	return nil
}

// Keys lists the IDs of all live records.
func (s *Store) Keys(ctx context.Context) ([]session.ID, error) {
	collection := s.mongoClient.Database().Collection(sessionCollection)

	cursor, err := collection.Find(ctx, bson.M{
		"expireAt": bson.M{"$gt": time.Now().UTC()},
	})
	if err != nil {
		return nil, fmt.Errorf("mongo find failed: %w", err)
	}

	defer cursor.Close(ctx) //nolint:errcheck

	var ids []session.ID

	for cursor.Next(ctx) {
		var doc sessionDocument

		if err = cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongo decode failed: %w", err)
		}

		ids = append(ids, session.ID(doc.ID))
	}

	if err = cursor.Err(); err != nil {
		return nil, fmt.Errorf("mongo cursor failed: %w", err)
	}

	return ids, nil
}
