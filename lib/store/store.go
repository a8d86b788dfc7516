// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"errors"

	"github.com/zeebo/blake3"
)

// Sentinel errors for the collection contracts. Callers detect them
// with errors.Is; messages carry the offending key.
var (
	// ErrAlreadyExists is returned when inserting under a key that is
	// already present. Records are never implicitly overwritten.
	ErrAlreadyExists = errors.New("already exists")

	// ErrKeyNotFound is returned when an operation requires a key that
	// has no entry.
	ErrKeyNotFound = errors.New("key not found")

	// ErrDuplicateMember is returned when adding a member that is
	// already in the set under that key.
	ErrDuplicateMember = errors.New("duplicate member")
)

// hashedKeyLen is the storage-key contribution of a hashed outer key
// in a nested collection's namespace.
const hashedKeyLen = 32

// Store owns the byte meter and the journal that its collections share.
// Construct with New, then attach collections via NewTable,
// NewIndexedSet, and NewNestedMap.
type Store struct {
	used    uint64
	journal *Journal
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// BytesUsed returns the total bytes currently retained across all
// collections attached to this store. The escrow accountant samples
// it before and after a call to price the delta.
func (s *Store) BytesUsed() uint64 {
	return s.used
}

// Begin opens a journal. Every collection mutation until Commit or
// Rollback records its inverse. Panics if a journal is already open:
// the execution model admits one call at a time, so an overlapping
// Begin is a bug, not a condition to handle.
func (s *Store) Begin() *Journal {
	if s.journal != nil {
		panic("store: journal already open")
	}
	j := &Journal{store: s}
	s.journal = j
	return j
}

// grow charges n bytes to the meter.
func (s *Store) grow(n int) {
	s.used += uint64(n)
}

// shrink releases n bytes from the meter.
func (s *Store) shrink(n int) {
	s.used -= uint64(n)
}

// record appends an undo step to the open journal, if any.
func (s *Store) record(undo func()) {
	if s.journal != nil {
		s.journal.undo = append(s.journal.undo, undo)
	}
}

// Journal is an undo log over one call's mutations.
type Journal struct {
	store *Store
	undo  []func()
	done  bool
}

// Commit discards the undo log, making the call's mutations final.
func (j *Journal) Commit() {
	j.finish()
}

// Rollback undoes the call's mutations in reverse order, restoring
// the collections and the meter to their state at Begin. Safe to call
// after Commit (it is then a no-op), which lets callers defer a
// rollback as the abort path.
func (j *Journal) Rollback() {
	if j.done {
		return
	}
	// Undo steps must not journal themselves.
	j.store.journal = nil
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = nil
	j.done = true
}

func (j *Journal) finish() {
	if j.done {
		return
	}
	j.store.journal = nil
	j.undo = nil
	j.done = true
}

// hashKey returns the BLAKE3 digest of an outer key, used to namespace
// nested collection entries.
func hashKey(key string) [hashedKeyLen]byte {
	return blake3.Sum256([]byte(key))
}
