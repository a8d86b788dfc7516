// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import "testing"

func TestParseAccountID(t *testing.T) {
	valid := []string{"acme", "acme.bounty", "bob_42.bounty", "A.B.C"}
	for _, s := range valid {
		if _, err := ParseAccountID(s); err != nil {
			t.Errorf("ParseAccountID(%q) = %v, want nil", s, err)
		}
	}

	invalid := []string{"", ".", "acme.", ".bounty", "ac me", "acme-corp", "acmé"}
	for _, s := range invalid {
		if _, err := ParseAccountID(s); err == nil {
			t.Errorf("ParseAccountID(%q) succeeded, want error", s)
		}
	}
}

func TestAccountIDName(t *testing.T) {
	if got := AccountID("acme.bounty").Name(); got != "acme" {
		t.Errorf("Name() = %q, want %q", got, "acme")
	}
	if got := AccountID("acme").Name(); got != "acme" {
		t.Errorf("Name() = %q, want %q", got, "acme")
	}
}

func TestParseTaskID(t *testing.T) {
	id, err := ParseTaskID("acme.bounty.landing_page")
	if err != nil {
		t.Fatalf("ParseTaskID: %v", err)
	}
	if got := id.Company(); got != "acme.bounty" {
		t.Errorf("Company() = %q, want %q", got, "acme.bounty")
	}
	if got := id.TaskName(); got != "landing_page" {
		t.Errorf("TaskName() = %q, want %q", got, "landing_page")
	}
}

func TestParseTaskIDRequiresCompanyQualifier(t *testing.T) {
	if _, err := ParseTaskID("landing_page"); err == nil {
		t.Fatal("ParseTaskID without company qualifier succeeded, want error")
	}
	if _, err := ParseTaskID(""); err == nil {
		t.Fatal("ParseTaskID(\"\") succeeded, want error")
	}
}
