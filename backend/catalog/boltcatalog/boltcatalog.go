// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package boltcatalog persists the schema catalog (§6.1
// "datastore().storesByName()") to a local BoltDB file, for callers that
// want the store/schema definitions to survive a process restart without
// standing up a real metadata database. It satisfies backend.Datastore,
// so any analyzer.Resolver can bind against it exactly as it would
// against backend/memengine's in-memory catalog.
package boltcatalog

import (
	"encoding/json"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"

	"github.com/squashql/squashql-go/backend"
	"github.com/squashql/squashql-go/core"
)

// schemaBucket is the single bucket every store definition is written
// into, keyed by store name.
var schemaBucket = []byte("squashql_schema_catalog")

// Catalog is a backend.Datastore backed by a BoltDB file. The zero value
// is not usable; build one with Open.
type Catalog struct {
	db *bolt.DB
}

// Open opens (creating if absent) the BoltDB file at path and ensures the
// schema bucket exists.
func Open(path string) (*Catalog, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open bolt catalog %q", path)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(schemaBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema bucket")
	}
	return &Catalog{db: db}, nil
}

// Close releases the underlying BoltDB file handle.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// PutStore persists (or replaces) store's schema definition.
func (c *Catalog) PutStore(store core.Store) error {
	buf, err := json.Marshal(store)
	if err != nil {
		return errors.Wrapf(err, "marshal store %q", store.Name)
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(schemaBucket).Put([]byte(store.Name), buf)
	})
}

// DeleteStore removes name's schema definition, if present.
func (c *Catalog) DeleteStore(name string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(schemaBucket).Delete([]byte(name))
	})
}

// StoresByName implements backend.Datastore, decoding every persisted
// store definition on each call. The schema catalog is read far less
// often than it is queried against (§6.1), so this trades a little
// per-call decode cost for never needing cache invalidation logic here.
func (c *Catalog) StoresByName() map[string]core.Store {
	stores := make(map[string]core.Store)
	_ = c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(schemaBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var store core.Store
			if err := json.Unmarshal(v, &store); err != nil {
				return errors.Wrapf(err, "decode store %q", string(k))
			}
			stores[store.Name] = store
			return nil
		})
	})
	return stores
}

var _ backend.Datastore = (*Catalog)(nil)
