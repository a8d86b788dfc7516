// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package market implements the task lifecycle engine: the state
// machine that carries a task from posting to payout, the derived
// indices that answer ownership and invitation queries without full
// scans, the submission ledger, and the per-call escrow settlement.
//
// The engine runs strictly single threaded. One call completes in
// full, including every index update and the escrow settlement,
// before the next is admitted; there is no locking and no background
// scheduler. Time-based transitions (an unaccepted invitation
// expiring, a deadline passing) are materialized lazily: every entry
// point that touches a task first pings it, applying any transition
// that should already have happened. Read-only queries never ping, so
// they can lag one transition behind until the next mutating touch.
//
// Every mutating call is atomic. Mutations run inside a store journal
// and roll back as a unit on any error, including an insufficient
// deposit discovered at settlement. The only side effects outside the
// journal are the outbound fire-and-forget actions (reward transfer,
// profile update, account provisioning), which are issued after the
// call's own state is committed and are never rolled back.
package market
