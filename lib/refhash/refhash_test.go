// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

package refhash

import (
	"strings"
	"testing"
)

func TestSumIsStable(t *testing.T) {
	data := []byte("encrypted task brief v1")
	if Sum(data) != Sum(data) {
		t.Fatal("Sum is not deterministic for identical input")
	}
	if Sum(data) == Sum([]byte("encrypted task brief v2")) {
		t.Fatal("different inputs produced the same digest")
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	digest := Sum([]byte("submission archive"))

	formatted := Format(digest)
	if len(formatted) != Size*2 {
		t.Fatalf("Format length = %d, want %d", len(formatted), Size*2)
	}

	parsed, err := Parse(formatted)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed != digest {
		t.Fatalf("Parse(Format(d)) = %x, want %x", parsed, digest)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not hex", strings.Repeat("zz", Size)},
		{"too short", strings.Repeat("ab", Size-1)},
		{"too long", strings.Repeat("ab", Size+1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.input); err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tc.input)
			}
		})
	}
}
