// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"github.com/bountyboard-foundation/bountyboard/lib/schema"
)

// The engine decides amounts and recipients but never moves value or
// touches accounts itself. These interfaces are its view of those
// capabilities. All of them are fire-and-forget: the engine commits
// its own state first, issues the outbound action, and does not await
// confirmation. A delivery failure is not rolled back into the state
// machine.

// Payer issues a value transfer to a recipient.
type Payer interface {
	// Pay transfers amount of the given token to the recipient.
	Pay(recipient schema.AccountID, amount schema.Amount, token schema.AccountID)
}

// CompanyDirectory answers whether a company has been vetted. The
// engine consults it before accepting a task creation.
type CompanyDirectory interface {
	IsWhitelisted(company schema.AccountID) bool
}

// ProfileDirectory records a participant's completed work. Invoked
// once per task when it reaches the payed state.
type ProfileDirectory interface {
	RecordCompletedTask(user schema.AccountID, task schema.TaskID)
}

// Provisioner creates a controllable account for a new participant.
type Provisioner interface {
	Provision(account schema.AccountID, credential string)
}
