// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"fmt"
	"time"

	"github.com/bountyboard-foundation/bountyboard/lib/refhash"
)

// ErrInvalidHash is returned when a content reference's integrity hash
// is not exactly refhash.Size bytes. Use errors.Is to detect it under
// wrapping.
var ErrInvalidHash = errors.New("malformed reference hash")

// Amount is a value quantity in the smallest unit of a payment token.
type Amount uint64

// TaskState is the lifecycle state of a task. Exactly one state holds
// at any time; transitions happen only through the engine.
type TaskState string

const (
	// StateOpen is an invite-only task whose invitation has not been
	// accepted yet.
	StateOpen TaskState = "open"

	// StatePending is an accepted invite-only task, or an open-to-all
	// task, that has not been completed yet.
	StatePending TaskState = "pending"

	// StateCompleted is a task with at least one submission. Open-to-all
	// tasks stay here until the company picks a winner; the payment
	// itself is outside the automatic lifecycle.
	StateCompleted TaskState = "completed"

	// StateExpired is an invite-only task whose invitation was never
	// accepted before its validity deadline.
	StateExpired TaskState = "expired"

	// StateOverdue is a task that was not completed before its deadline.
	StateOverdue TaskState = "overdue"

	// StatePayed is a task whose reward transfer has been issued.
	StatePayed TaskState = "payed"
)

// Valid reports whether s is a recognized task state.
func (s TaskState) Valid() bool {
	switch s {
	case StateOpen, StatePending, StateCompleted, StateExpired, StateOverdue, StatePayed:
		return true
	}
	return false
}

// TaskKind discriminates the two task variants.
type TaskKind string

const (
	// KindInviteOnly tasks carry a bounded invitation set; only an
	// invited account can accept and work the task.
	KindInviteOnly TaskKind = "invite_only"

	// KindForEveryone tasks accept a submission from anyone.
	KindForEveryone TaskKind = "for_everyone"
)

// InviteSpec is the invite-only variant's payload: who may accept, and
// until when the invitation stands. Immutable once the task is created.
type InviteSpec struct {
	// InvitedAccounts is the bounded set of accounts allowed to accept.
	// Intended to be small; the engine enforces a hard cap.
	InvitedAccounts []AccountID `cbor:"invited_accounts" json:"invited_accounts"`

	// ValidTill is the absolute instant after which, if nobody has
	// accepted, the task expires and the company may reclaim it.
	ValidTill time.Time `cbor:"valid_till" json:"valid_till"`
}

// Invited reports whether the account is in the invitation set.
func (s *InviteSpec) Invited(account AccountID) bool {
	for _, invited := range s.InvitedAccounts {
		if invited == account {
			return true
		}
	}
	return false
}

// Validate checks the invitation set for presence and well-formed
// members. The size cap is the engine's concern, not the schema's.
func (s *InviteSpec) Validate() error {
	if len(s.InvitedAccounts) == 0 {
		return errors.New("invite: at least one invited account is required")
	}
	seen := make(map[AccountID]struct{}, len(s.InvitedAccounts))
	for i, account := range s.InvitedAccounts {
		if err := account.Validate(); err != nil {
			return fmt.Errorf("invite: invited_accounts[%d]: %w", i, err)
		}
		if _, dup := seen[account]; dup {
			return fmt.Errorf("invite: invited_accounts[%d]: duplicate account %q", i, account)
		}
		seen[account] = struct{}{}
	}
	if s.ValidTill.IsZero() {
		return errors.New("invite: valid_till is required")
	}
	return nil
}

// TaskDetails is the caller-supplied description of a task. Immutable
// once the task is created.
type TaskDetails struct {
	// Title is a short summary of the work.
	Title string `cbor:"title" json:"title"`

	// Description provides additional context.
	Description string `cbor:"description,omitempty" json:"description,omitempty"`

	// RequiredSkills tags the skill the task calls for, comma
	// separated ("UI Designing, UX Designing").
	RequiredSkills string `cbor:"required_skills,omitempty" json:"required_skills,omitempty"`

	// Kind selects the task variant.
	Kind TaskKind `cbor:"kind" json:"kind"`

	// Invite carries the invite-only payload. Must be set when Kind is
	// KindInviteOnly and nil otherwise.
	Invite *InviteSpec `cbor:"invite,omitempty" json:"invite,omitempty"`

	// Reference points at the full task brief, stored off-engine
	// (preferably encrypted on decentralized storage).
	Reference string `cbor:"reference" json:"reference"`

	// ReferenceHash is the 32-byte digest of the referenced content.
	ReferenceHash []byte `cbor:"reference_hash" json:"reference_hash"`
}

// Validate checks that all required fields are present and well-formed,
// including the variant/payload pairing and the integrity hash length.
func (d *TaskDetails) Validate() error {
	if d.Title == "" {
		return errors.New("task details: title is required")
	}
	switch d.Kind {
	case KindInviteOnly:
		if d.Invite == nil {
			return errors.New("task details: invite payload is required for invite-only tasks")
		}
		if err := d.Invite.Validate(); err != nil {
			return fmt.Errorf("task details: %w", err)
		}
	case KindForEveryone:
		if d.Invite != nil {
			return errors.New("task details: invite payload must be nil for open tasks")
		}
	case "":
		return errors.New("task details: kind is required")
	default:
		return fmt.Errorf("task details: unknown kind %q", d.Kind)
	}
	if d.Reference == "" {
		return errors.New("task details: reference is required")
	}
	if len(d.ReferenceHash) != refhash.Size {
		return fmt.Errorf("task details: reference hash is %d bytes, want %d: %w",
			len(d.ReferenceHash), refhash.Size, ErrInvalidHash)
	}
	return nil
}

// Task is the authoritative task record.
type Task struct {
	// Details is the immutable caller-supplied description.
	Details TaskDetails `cbor:"details" json:"details"`

	// CompanyID is the account of the posting company.
	CompanyID AccountID `cbor:"company_id" json:"company_id"`

	// Deadline is the completion deadline. If the task is not completed
	// by this instant it becomes overdue on the next touch.
	Deadline time.Time `cbor:"deadline" json:"deadline"`

	// Assignee is the account that accepted the invitation. Zero when
	// nobody is assigned (always zero for open-to-all tasks).
	Assignee AccountID `cbor:"assignee,omitempty" json:"assignee,omitempty"`

	// State is the current lifecycle state.
	State TaskState `cbor:"state" json:"state"`

	// PayToken identifies the fungible token the reward is paid in.
	PayToken AccountID `cbor:"pay_token" json:"pay_token"`

	// Reward is the escrowed reward amount, fixed at creation.
	Reward Amount `cbor:"reward" json:"reward"`
}

// NewTask builds a task record from its parts, validating the details.
// The initial state follows the variant: invite-only tasks open with an
// outstanding invitation, open-to-all tasks are immediately pending.
func NewTask(details TaskDetails, companyID AccountID, deadline time.Time, payToken AccountID, reward Amount) (Task, error) {
	if err := details.Validate(); err != nil {
		return Task{}, err
	}
	state := StatePending
	if details.Kind == KindInviteOnly {
		state = StateOpen
	}
	return Task{
		Details:   details,
		CompanyID: companyID,
		Deadline:  deadline,
		State:     state,
		PayToken:  payToken,
		Reward:    reward,
	}, nil
}

// InviteOnly reports whether the task is the invite-only variant.
func (t *Task) InviteOnly() bool {
	return t.Details.Kind == KindInviteOnly
}

// PastValidity reports whether an invite-only task's invitation window
// has closed. Always false for open-to-all tasks.
func (t *Task) PastValidity(now time.Time) bool {
	if t.Details.Kind != KindInviteOnly || t.Details.Invite == nil {
		return false
	}
	return !now.Before(t.Details.Invite.ValidTill)
}

// PastDeadline reports whether the completion deadline has passed.
func (t *Task) PastDeadline(now time.Time) bool {
	return !now.Before(t.Deadline)
}

// Submission is one submitter's completed work for a task, keyed by
// (task, submitter) in the ledger.
type Submission struct {
	// Reference points at the submitted documents, stored off-engine.
	Reference string `cbor:"reference" json:"reference"`

	// ReferenceHash is the 32-byte digest of the referenced content.
	ReferenceHash []byte `cbor:"reference_hash" json:"reference_hash"`
}

// Validate checks the submission's reference and integrity hash.
func (s *Submission) Validate() error {
	if s.Reference == "" {
		return errors.New("submission: reference is required")
	}
	if len(s.ReferenceHash) != refhash.Size {
		return fmt.Errorf("submission: reference hash is %d bytes, want %d: %w",
			len(s.ReferenceHash), refhash.Size, ErrInvalidHash)
	}
	return nil
}
