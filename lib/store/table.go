// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"slices"

	"github.com/bountyboard-foundation/bountyboard/lib/codec"
)

// Table is the primary record collection: key → record, globally
// unique keys, no implicit overwrite. Records are metered by the byte
// length of their deterministic CBOR encoding plus the storage key.
//
// Key enumeration is sorted, which gives pagination a stable order;
// callers must not rely on any semantic meaning of that order.
type Table[K ~string, V any] struct {
	store   *Store
	name    string
	entries map[K]tableEntry[V]
	keys    []K
}

type tableEntry[V any] struct {
	value V
	size  int
}

// NewTable attaches an empty table to the store. The name namespaces
// the table's storage keys and appears in error messages.
func NewTable[K ~string, V any](s *Store, name string) *Table[K, V] {
	return &Table[K, V]{
		store:   s,
		name:    name,
		entries: make(map[K]tableEntry[V]),
	}
}

// Len returns the number of records.
func (t *Table[K, V]) Len() int {
	return len(t.entries)
}

// Has reports whether a record exists under key.
func (t *Table[K, V]) Has(key K) bool {
	_, exists := t.entries[key]
	return exists
}

// Get returns the record under key. The second return value is false
// if no record exists. The returned value is a copy of the record
// struct; callers that modify it must Put it back.
func (t *Table[K, V]) Get(key K) (V, bool) {
	entry, exists := t.entries[key]
	return entry.value, exists
}

// Insert adds a new record. Fails with ErrAlreadyExists if the key is
// taken; creation is a one-time act per identifier.
func (t *Table[K, V]) Insert(key K, value V) error {
	if _, exists := t.entries[key]; exists {
		return fmt.Errorf("%s: %q: %w", t.name, string(key), ErrAlreadyExists)
	}
	size, err := t.entrySize(key, value)
	if err != nil {
		return err
	}
	t.entries[key] = tableEntry[V]{value: value, size: size}
	t.insertKey(key)
	t.store.grow(size)
	t.store.record(func() {
		delete(t.entries, key)
		t.removeKey(key)
		t.store.shrink(size)
	})
	return nil
}

// Put writes the record under key, overwriting any existing record.
// Used for in-place lifecycle updates of records that already paid
// their way in via Insert; the meter moves by the size difference.
func (t *Table[K, V]) Put(key K, value V) error {
	size, err := t.entrySize(key, value)
	if err != nil {
		return err
	}
	old, existed := t.entries[key]
	t.entries[key] = tableEntry[V]{value: value, size: size}
	if existed {
		t.store.shrink(old.size)
		t.store.grow(size)
		t.store.record(func() {
			t.entries[key] = old
			t.store.shrink(size)
			t.store.grow(old.size)
		})
		return nil
	}
	t.insertKey(key)
	t.store.grow(size)
	t.store.record(func() {
		delete(t.entries, key)
		t.removeKey(key)
		t.store.shrink(size)
	})
	return nil
}

// Remove deletes the record under key. Fails with ErrKeyNotFound if
// no record exists.
func (t *Table[K, V]) Remove(key K) error {
	entry, exists := t.entries[key]
	if !exists {
		return fmt.Errorf("%s: %q: %w", t.name, string(key), ErrKeyNotFound)
	}
	delete(t.entries, key)
	t.removeKey(key)
	t.store.shrink(entry.size)
	t.store.record(func() {
		t.entries[key] = entry
		t.insertKey(key)
		t.store.grow(entry.size)
	})
	return nil
}

// Keys returns all keys in sorted order. The slice is a copy.
func (t *Table[K, V]) Keys() []K {
	return slices.Clone(t.keys)
}

// PageKeys returns the keys in positions [offset, offset+limit) of the
// sorted enumeration. Out-of-range pages return an empty slice.
func (t *Table[K, V]) PageKeys(offset, limit int) []K {
	if offset < 0 || offset >= len(t.keys) || limit <= 0 {
		return nil
	}
	end := offset + limit
	if end > len(t.keys) {
		end = len(t.keys)
	}
	return slices.Clone(t.keys[offset:end])
}

// entrySize is the metered footprint: table namespace + key + encoded
// record.
func (t *Table[K, V]) entrySize(key K, value V) (int, error) {
	encoded, err := codec.Marshal(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %q: encoding record: %w", t.name, string(key), err)
	}
	return len(t.name) + 1 + len(key) + len(encoded), nil
}

func (t *Table[K, V]) insertKey(key K) {
	at, _ := slices.BinarySearch(t.keys, key)
	t.keys = slices.Insert(t.keys, at, key)
}

func (t *Table[K, V]) removeKey(key K) {
	at, found := slices.BinarySearch(t.keys, key)
	if found {
		t.keys = slices.Delete(t.keys, at, at+1)
	}
}
