// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package escrow prices the storage a call consumes and settles it
// against the caller's attached deposit.
//
// An Accountant is bound to a byte meter and a price per byte. Each
// mutating call opens a Bill, which samples the meter, and settles it
// after the mutations: the cost is the byte growth times the price,
// plus whatever fixed reserve the call carries (a task's reward, the
// per-invitee surcharge). A deposit short of the cost fails the bill
// with ErrInsufficientDeposit; otherwise the exact surplus comes back
// as a refund. Calls that free storage cost only their reserve.
package escrow
