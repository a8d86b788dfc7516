// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"slices"

	"github.com/bountyboard-foundation/bountyboard/lib/codec"
)

// NestedMap is a two-level record collection: (outer, inner) → record.
// The submission ledger uses it as task → submitter → submission.
// Inner entries live in a namespace derived from the BLAKE3 hash of
// the outer key, like IndexedSet members. When removing the last inner
// entry, the outer entry is cascade-deleted.
type NestedMap[K1 ~string, K2 ~string, V any] struct {
	store *Store
	name  string
	outer map[[hashedKeyLen]byte]*innerMap[K2, V]
}

type innerMap[K2 ~string, V any] struct {
	entries map[K2]tableEntry[V]
	order   []K2
}

// NewNestedMap attaches an empty nested map to the store.
func NewNestedMap[K1 ~string, K2 ~string, V any](s *Store, name string) *NestedMap[K1, K2, V] {
	return &NestedMap[K1, K2, V]{
		store: s,
		name:  name,
		outer: make(map[[hashedKeyLen]byte]*innerMap[K2, V]),
	}
}

// Insert adds a record under (outer, inner). Fails with
// ErrAlreadyExists if that pair already has one.
func (n *NestedMap[K1, K2, V]) Insert(outer K1, inner K2, value V) error {
	ns := hashKey(string(outer))
	m, exists := n.outer[ns]
	if !exists {
		m = &innerMap[K2, V]{entries: make(map[K2]tableEntry[V])}
	}
	if _, dup := m.entries[inner]; dup {
		return fmt.Errorf("%s: %q/%q: %w", n.name, string(outer), string(inner), ErrAlreadyExists)
	}
	encoded, err := codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %q/%q: encoding record: %w", n.name, string(outer), string(inner), err)
	}
	if !exists {
		n.outer[ns] = m
		n.store.grow(n.shellSize(outer))
		n.store.record(func() {
			delete(n.outer, ns)
			n.store.shrink(n.shellSize(outer))
		})
	}
	size := len(n.name) + 1 + hashedKeyLen + len(inner) + len(encoded)
	m.entries[inner] = tableEntry[V]{value: value, size: size}
	at, _ := slices.BinarySearch(m.order, inner)
	m.order = slices.Insert(m.order, at, inner)
	n.store.grow(size)
	n.store.record(func() {
		delete(m.entries, inner)
		if at, found := slices.BinarySearch(m.order, inner); found {
			m.order = slices.Delete(m.order, at, at+1)
		}
		n.store.shrink(size)
	})
	return nil
}

// Get returns the record under (outer, inner). The second return value
// is false if either level misses.
func (n *NestedMap[K1, K2, V]) Get(outer K1, inner K2) (V, bool) {
	var zero V
	m, exists := n.outer[hashKey(string(outer))]
	if !exists {
		return zero, false
	}
	entry, exists := m.entries[inner]
	if !exists {
		return zero, false
	}
	return entry.value, true
}

// Remove deletes the record under (outer, inner). Fails with
// ErrKeyNotFound if the pair has no record. Removing the last inner
// entry cascade-deletes the outer entry.
func (n *NestedMap[K1, K2, V]) Remove(outer K1, inner K2) error {
	ns := hashKey(string(outer))
	m, exists := n.outer[ns]
	if !exists {
		return fmt.Errorf("%s: %q: %w", n.name, string(outer), ErrKeyNotFound)
	}
	entry, exists := m.entries[inner]
	if !exists {
		return fmt.Errorf("%s: %q/%q: %w", n.name, string(outer), string(inner), ErrKeyNotFound)
	}
	delete(m.entries, inner)
	if at, found := slices.BinarySearch(m.order, inner); found {
		m.order = slices.Delete(m.order, at, at+1)
	}
	n.store.shrink(entry.size)
	n.store.record(func() {
		n.outer[ns] = m
		m.entries[inner] = entry
		at, _ := slices.BinarySearch(m.order, inner)
		m.order = slices.Insert(m.order, at, inner)
		n.store.grow(entry.size)
	})
	if len(m.entries) == 0 {
		delete(n.outer, ns)
		n.store.shrink(n.shellSize(outer))
		n.store.record(func() {
			n.outer[ns] = m
			n.store.grow(n.shellSize(outer))
		})
	}
	return nil
}

// HasOuter reports whether the outer key has any records.
func (n *NestedMap[K1, K2, V]) HasOuter(outer K1) bool {
	_, exists := n.outer[hashKey(string(outer))]
	return exists
}

// Len returns the number of records under outer, zero if none.
func (n *NestedMap[K1, K2, V]) Len(outer K1) int {
	m, exists := n.outer[hashKey(string(outer))]
	if !exists {
		return 0
	}
	return len(m.entries)
}

// InnerKeys returns the inner keys under outer in sorted order. The
// slice is a copy; nil if the outer key has no records.
func (n *NestedMap[K1, K2, V]) InnerKeys(outer K1) []K2 {
	m, exists := n.outer[hashKey(string(outer))]
	if !exists {
		return nil
	}
	return slices.Clone(m.order)
}

// PageInnerKeys returns inner keys in positions [offset, offset+limit)
// of the sorted enumeration under outer.
func (n *NestedMap[K1, K2, V]) PageInnerKeys(outer K1, offset, limit int) []K2 {
	m, exists := n.outer[hashKey(string(outer))]
	if !exists || offset < 0 || offset >= len(m.order) || limit <= 0 {
		return nil
	}
	end := offset + limit
	if end > len(m.order) {
		end = len(m.order)
	}
	return slices.Clone(m.order[offset:end])
}

// RemoveAll deletes every record under outer, including the outer
// entry. No-op if the outer key has no records.
func (n *NestedMap[K1, K2, V]) RemoveAll(outer K1) {
	for _, inner := range n.InnerKeys(outer) {
		// Remove cannot fail here: the keys were just enumerated and
		// the execution model admits no interleaving call.
		_ = n.Remove(outer, inner)
	}
}

// shellSize is the metered footprint of the outer entry: namespace
// plus outer key plus its hashed-namespace registration.
func (n *NestedMap[K1, K2, V]) shellSize(outer K1) int {
	return len(n.name) + 1 + len(outer) + hashedKeyLen
}
