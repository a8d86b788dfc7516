// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

package refhash

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Size is the digest length in bytes. Records that carry a reference
// hash are validated against exactly this length.
const Size = 32

// Sum computes the BLAKE3 digest of data.
func Sum(data []byte) [Size]byte {
	return blake3.Sum256(data)
}

// Format returns the hex-encoded string representation of a digest.
// This is the canonical format in query responses and log output.
func Format(digest [Size]byte) string {
	return hex.EncodeToString(digest[:])
}

// Parse parses a hex-encoded digest string into a 32-byte array.
// Returns an error if the string is not a valid 64-character hex
// encoding of 32 bytes.
func Parse(hexString string) ([Size]byte, error) {
	var digest [Size]byte
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing reference hash: %w", err)
	}
	if len(decoded) != Size {
		return digest, fmt.Errorf("reference hash is %d bytes, want %d", len(decoded), Size)
	}
	copy(digest[:], decoded)
	return digest, nil
}
