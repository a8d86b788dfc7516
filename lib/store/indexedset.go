// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"fmt"
	"slices"
)

// IndexedSet is a key → set-of-members collection, the building block
// for the marketplace's reverse indices (company → tasks, invited user
// → tasks). Members of a key live in a namespace derived from the
// BLAKE3 hash of the key, so an entry's metered size depends on the
// member alone, not on how long the outer key happens to be.
//
// Removing the last member of a key deletes the outer entry; an index
// never accumulates empty shells that would cost storage indefinitely.
type IndexedSet[K ~string, M ~string] struct {
	store *Store
	name  string
	sets  map[[hashedKeyLen]byte]*memberSet[K, M]
}

type memberSet[K ~string, M ~string] struct {
	key     K
	members map[M]struct{}
	order   []M
}

// NewIndexedSet attaches an empty index to the store.
func NewIndexedSet[K ~string, M ~string](s *Store, name string) *IndexedSet[K, M] {
	return &IndexedSet[K, M]{
		store: s,
		name:  name,
		sets:  make(map[[hashedKeyLen]byte]*memberSet[K, M]),
	}
}

// Add inserts member into the set under key, creating the set if this
// is the key's first member. Fails with ErrDuplicateMember if the
// member is already present.
func (x *IndexedSet[K, M]) Add(key K, member M) error {
	ns := hashKey(string(key))
	set, exists := x.sets[ns]
	if !exists {
		set = &memberSet[K, M]{key: key, members: make(map[M]struct{})}
		x.sets[ns] = set
		x.store.grow(x.shellSize(key))
		x.store.record(func() {
			delete(x.sets, ns)
			x.store.shrink(x.shellSize(key))
		})
	}
	if _, dup := set.members[member]; dup {
		return fmt.Errorf("%s: %q already has %q: %w", x.name, string(key), string(member), ErrDuplicateMember)
	}
	set.members[member] = struct{}{}
	at, _ := slices.BinarySearch(set.order, member)
	set.order = slices.Insert(set.order, at, member)
	size := x.memberSize(member)
	x.store.grow(size)
	x.store.record(func() {
		delete(set.members, member)
		if at, found := slices.BinarySearch(set.order, member); found {
			set.order = slices.Delete(set.order, at, at+1)
		}
		x.store.shrink(size)
	})
	return nil
}

// Remove deletes member from the set under key. Fails with
// ErrKeyNotFound if the key has no set at all; removing a member that
// is not present is a no-op. When the removal empties the set, the
// outer entry is deleted.
func (x *IndexedSet[K, M]) Remove(key K, member M) error {
	ns := hashKey(string(key))
	set, exists := x.sets[ns]
	if !exists {
		return fmt.Errorf("%s: %q: %w", x.name, string(key), ErrKeyNotFound)
	}
	if _, present := set.members[member]; !present {
		return nil
	}
	delete(set.members, member)
	if at, found := slices.BinarySearch(set.order, member); found {
		set.order = slices.Delete(set.order, at, at+1)
	}
	size := x.memberSize(member)
	x.store.shrink(size)
	x.store.record(func() {
		x.sets[ns] = set
		set.members[member] = struct{}{}
		at, _ := slices.BinarySearch(set.order, member)
		set.order = slices.Insert(set.order, at, member)
		x.store.grow(size)
	})
	if len(set.members) == 0 {
		delete(x.sets, ns)
		x.store.shrink(x.shellSize(key))
		x.store.record(func() {
			x.sets[ns] = set
			x.store.grow(x.shellSize(key))
		})
	}
	return nil
}

// Has reports whether member is in the set under key.
func (x *IndexedSet[K, M]) Has(key K, member M) bool {
	set, exists := x.sets[hashKey(string(key))]
	if !exists {
		return false
	}
	_, present := set.members[member]
	return present
}

// Keys returns every outer key that currently has members, in sorted
// order. The slice is a copy.
func (x *IndexedSet[K, M]) Keys() []K {
	keys := make([]K, 0, len(x.sets))
	for _, set := range x.sets {
		keys = append(keys, set.key)
	}
	slices.Sort(keys)
	return keys
}

// HasKey reports whether key has any members at all.
func (x *IndexedSet[K, M]) HasKey(key K) bool {
	_, exists := x.sets[hashKey(string(key))]
	return exists
}

// Len returns the number of members under key, zero if the key has no
// set.
func (x *IndexedSet[K, M]) Len(key K) int {
	set, exists := x.sets[hashKey(string(key))]
	if !exists {
		return 0
	}
	return len(set.members)
}

// Members returns all members under key in sorted order. The slice is
// a copy; nil if the key has no set.
func (x *IndexedSet[K, M]) Members(key K) []M {
	set, exists := x.sets[hashKey(string(key))]
	if !exists {
		return nil
	}
	return slices.Clone(set.order)
}

// PageMembers returns members in positions [offset, offset+limit) of
// the sorted enumeration under key.
func (x *IndexedSet[K, M]) PageMembers(key K, offset, limit int) []M {
	set, exists := x.sets[hashKey(string(key))]
	if !exists || offset < 0 || offset >= len(set.order) || limit <= 0 {
		return nil
	}
	end := offset + limit
	if end > len(set.order) {
		end = len(set.order)
	}
	return slices.Clone(set.order[offset:end])
}

// shellSize is the metered footprint of the outer entry itself: the
// index namespace plus the key registration that maps it to its hashed
// member namespace.
func (x *IndexedSet[K, M]) shellSize(key K) int {
	return len(x.name) + 1 + len(key) + hashedKeyLen
}

// memberSize is the metered footprint of one member entry: hashed key
// namespace plus the member.
func (x *IndexedSet[K, M]) memberSize(member M) int {
	return len(x.name) + 1 + hashedKeyLen + len(member)
}
