// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"testing"
	"time"

	"github.com/bountyboard-foundation/bountyboard/lib/refhash"
)

// --- Test helpers ---

func refDigest(s string) []byte {
	digest := refhash.Sum([]byte(s))
	return digest[:]
}

func openDetails() TaskDetails {
	return TaskDetails{
		Title:          "Design a landing page",
		RequiredSkills: "UI Designing",
		Kind:           KindForEveryone,
		Reference:      "ipfs://brief",
		ReferenceHash:  refDigest("brief"),
	}
}

func inviteDetails(validTill time.Time, invited ...AccountID) TaskDetails {
	details := openDetails()
	details.Kind = KindInviteOnly
	details.Invite = &InviteSpec{InvitedAccounts: invited, ValidTill: validTill}
	return details
}

// --- TaskDetails.Validate ---

func TestDetailsValidate(t *testing.T) {
	details := openDetails()
	if err := details.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestDetailsValidateRejectsBadHash(t *testing.T) {
	details := openDetails()
	details.ReferenceHash = []byte("short")
	err := details.Validate()
	if !errors.Is(err, ErrInvalidHash) {
		t.Fatalf("Validate() = %v, want ErrInvalidHash", err)
	}
}

func TestDetailsValidateVariantPairing(t *testing.T) {
	validTill := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	inviteOnlyNoPayload := openDetails()
	inviteOnlyNoPayload.Kind = KindInviteOnly
	if err := inviteOnlyNoPayload.Validate(); err == nil {
		t.Error("invite-only without payload validated, want error")
	}

	openWithPayload := inviteDetails(validTill, "bob.bounty")
	openWithPayload.Kind = KindForEveryone
	if err := openWithPayload.Validate(); err == nil {
		t.Error("open task with invite payload validated, want error")
	}

	unknownKind := openDetails()
	unknownKind.Kind = "auction"
	if err := unknownKind.Validate(); err == nil {
		t.Error("unknown kind validated, want error")
	}
}

func TestInviteSpecValidate(t *testing.T) {
	validTill := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	empty := InviteSpec{ValidTill: validTill}
	if err := empty.Validate(); err == nil {
		t.Error("empty invitation set validated, want error")
	}

	duplicate := InviteSpec{
		InvitedAccounts: []AccountID{"bob.bounty", "bob.bounty"},
		ValidTill:       validTill,
	}
	if err := duplicate.Validate(); err == nil {
		t.Error("duplicate invitee validated, want error")
	}

	noValidity := InviteSpec{InvitedAccounts: []AccountID{"bob.bounty"}}
	if err := noValidity.Validate(); err == nil {
		t.Error("missing valid_till validated, want error")
	}
}

// --- NewTask ---

func TestNewTaskInitialState(t *testing.T) {
	deadline := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	validTill := deadline.Add(-24 * time.Hour)

	open, err := NewTask(openDetails(), "acme.bounty", deadline, "near", 100)
	if err != nil {
		t.Fatalf("NewTask(open): %v", err)
	}
	if open.State != StatePending {
		t.Errorf("open task initial state = %q, want %q", open.State, StatePending)
	}

	invite, err := NewTask(inviteDetails(validTill, "bob.bounty"), "acme.bounty", deadline, "near", 100)
	if err != nil {
		t.Fatalf("NewTask(invite): %v", err)
	}
	if invite.State != StateOpen {
		t.Errorf("invite-only task initial state = %q, want %q", invite.State, StateOpen)
	}
	if !invite.InviteOnly() {
		t.Error("InviteOnly() = false for invite-only task")
	}
}

func TestNewTaskValidatesDetails(t *testing.T) {
	bad := openDetails()
	bad.ReferenceHash = nil
	_, err := NewTask(bad, "acme.bounty", time.Now(), "near", 100)
	if !errors.Is(err, ErrInvalidHash) {
		t.Fatalf("NewTask with bad hash = %v, want ErrInvalidHash", err)
	}
}

// --- Time predicates ---

func TestPastValidity(t *testing.T) {
	validTill := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	deadline := validTill.Add(24 * time.Hour)

	task, err := NewTask(inviteDetails(validTill, "bob.bounty"), "acme.bounty", deadline, "near", 100)
	if err != nil {
		t.Fatalf("NewTask: %v", err)
	}

	if task.PastValidity(validTill.Add(-time.Second)) {
		t.Error("PastValidity true before valid_till")
	}
	// Boundary is inclusive: at exactly valid_till the invitation is gone.
	if !task.PastValidity(validTill) {
		t.Error("PastValidity false at valid_till")
	}

	open, _ := NewTask(openDetails(), "acme.bounty", deadline, "near", 100)
	if open.PastValidity(deadline.Add(time.Hour)) {
		t.Error("PastValidity true for open-to-all task")
	}
}

func TestPastDeadline(t *testing.T) {
	deadline := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	task, _ := NewTask(openDetails(), "acme.bounty", deadline, "near", 100)

	if task.PastDeadline(deadline.Add(-time.Second)) {
		t.Error("PastDeadline true before deadline")
	}
	if !task.PastDeadline(deadline) {
		t.Error("PastDeadline false at deadline")
	}
}

// --- Submission ---

func TestSubmissionValidate(t *testing.T) {
	good := Submission{Reference: "ipfs://work", ReferenceHash: refDigest("work")}
	if err := good.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	badHash := Submission{Reference: "ipfs://work", ReferenceHash: []byte{1, 2, 3}}
	if !errors.Is(badHash.Validate(), ErrInvalidHash) {
		t.Error("short hash did not yield ErrInvalidHash")
	}

	noRef := Submission{ReferenceHash: refDigest("work")}
	if noRef.Validate() == nil {
		t.Error("missing reference validated, want error")
	}
}
