// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the marketplace's standard CBOR encoding
// configuration.
//
// Every record the engine retains (tasks, submissions, index entries)
// is stored as CBOR, and the escrow accountant charges callers by the
// byte length of what they cause the store to retain. That makes the
// encoding part of the accounting contract: the encoder uses Core
// Deterministic Encoding (RFC 8949 §4.2, sorted map keys, smallest
// integer encoding, no indefinite-length items) so the same logical
// record always costs the same number of bytes, and storage deltas in
// tests are exact rather than approximate.
//
// Usage:
//
//	data, err := codec.Marshal(record)
//	err = codec.Unmarshal(data, &record)
package codec
