// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package store provides the marketplace's metered persistent
// collections: a primary record table, a key→set index, and a
// two-level map for the submission ledger.
//
// Every byte a collection retains is tracked by the owning Store's
// meter, because storage in this execution model is rented by whoever
// holds it: the escrow accountant samples the meter before and after
// each mutating call and charges the caller for the difference. Sizes
// are computed from the collection's namespace, the entry key, and the
// record's deterministic CBOR encoding, so the same logical mutation
// always produces the same delta. Nested collections namespace their
// entries under the BLAKE3 hash of the outer key, keeping entry sizes
// independent of outer-key length collisions.
//
// # Atomicity
//
// A Store hands out one Journal at a time. Collection mutations made
// while a journal is open record their inverse; Rollback undoes them
// in reverse order, restoring both the data and the meter exactly.
// Engine calls run their whole mutation inside a journal and roll back
// on any error, including an escrow shortfall discovered after the
// mutation, so a failed call leaves no partial state.
//
// # Concurrency
//
// None. One call completes fully before the next is admitted; the
// collections have no internal locking.
package store
