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

// Package store imports and exports knowledge bases through a bolt database
// file. Proofs always run against in-memory tables; the store is a snapshot
// layer on the side, one bucket per knowledge-base name, clause text as
// values. Rules whose bodies have no surface syntax (constraints) cannot be
// round-tripped.
package store

import (
	"encoding/binary"

	"github.com/boltdb/bolt"
	"gopkg.in/src-d/go-errors.v1"

	"gopkg.in/src-d/go-prolog.v0/logic"
	"gopkg.in/src-d/go-prolog.v0/logic/parse"
	"gopkg.in/src-d/go-prolog.v0/mem"
)

var (
	// ErrUnknownBase is returned when loading a knowledge base that was
	// never saved.
	ErrUnknownBase = errors.NewKind("no knowledge base named %q in store")
)

// Store is a handle on a bolt file holding saved knowledge bases.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the store at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Save writes a snapshot of the table's rules under the given name,
// replacing any previous snapshot with that name.
func (s *Store) Save(name string, t logic.Table) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(name)) != nil {
			if err := tx.DeleteBucket([]byte(name)); err != nil {
				return err
			}
		}
		bucket, err := tx.CreateBucket([]byte(name))
		if err != nil {
			return err
		}
		for i, rule := range t.Rules() {
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, uint64(i))
			if err := bucket.Put(key, []byte(parse.FormatRule(rule))); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load reads the named snapshot into a table built by the factory. A nil
// factory loads into a linear table.
func (s *Store) Load(name string, factory func() logic.Table) (logic.Table, error) {
	if factory == nil {
		factory = func() logic.Table { return mem.NewLinear() }
	}
	t := factory()
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(name))
		if bucket == nil {
			return ErrUnknownBase.New(name)
		}
		return bucket.ForEach(func(_, value []byte) error {
			rules, err := parse.Clauses(string(value))
			if err != nil {
				return err
			}
			for _, r := range rules {
				t.Tell(r)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Bases lists the names of saved knowledge bases.
func (s *Store) Bases() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			names = append(names, string(name))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}
