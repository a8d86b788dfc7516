// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"errors"
	"fmt"
)

// Sentinel errors for lifecycle and authorization failures. Callers
// detect them with errors.Is; messages carry the offending identifier.
// The storage-level sentinels (store.ErrAlreadyExists,
// store.ErrKeyNotFound), the schema's ErrInvalidHash, and the escrow's
// ErrInsufficientDeposit propagate through engine calls wrapped, so
// the full taxonomy is detectable at the engine surface.
var (
	// ErrInvalidState is returned when an action is not legal in the
	// task's current state.
	ErrInvalidState = errors.New("action not permitted in current task state")

	// ErrNotInvited is returned when an account outside the invitation
	// set tries to accept an invite-only task.
	ErrNotInvited = errors.New("account is not invited")

	// ErrNotAssignee is returned when an account other than the
	// assignee submits work for an assigned task.
	ErrNotAssignee = errors.New("account is not the assignee")

	// ErrDuplicateSubmission is returned when a submitter already has a
	// submission recorded for the task.
	ErrDuplicateSubmission = errors.New("duplicate submission")

	// ErrNotWhitelisted is returned when the posting company has not
	// been vetted.
	ErrNotWhitelisted = errors.New("company is not whitelisted")

	// ErrNotOwner is returned when an account acts on a task it does
	// not own.
	ErrNotOwner = errors.New("account does not own the task")

	// ErrTooManyInvitees is returned when an invitation set exceeds
	// Params.MaxInvitees.
	ErrTooManyInvitees = errors.New("invitation set exceeds the invitee cap")
)

// ErrSubmissionNotAllowed is returned when the task's current state
// accepts no submission at all. It wraps ErrInvalidState, so callers
// checking the broader condition still match.
var ErrSubmissionNotAllowed = fmt.Errorf("submission not allowed: %w", ErrInvalidState)
