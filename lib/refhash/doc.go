// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package refhash computes and formats the 32-byte BLAKE3 digests that
// accompany every content reference in the marketplace. Task details
// and submissions point at off-engine content (typically encrypted
// documents on decentralized storage); the engine stores the reference
// URL plus its digest so a reader can verify what the URL resolves to.
//
// The engine itself never fetches or hashes referenced content; it
// only validates that a supplied digest has the right shape. Sum exists
// for the parties that do hold the content: companies hashing a brief
// before posting, submitters hashing their work, and tests.
package refhash
