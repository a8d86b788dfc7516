// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package schema defines the marketplace's record types (tasks,
// submissions, and the identifiers that key them) together with their
// validation rules.
//
// The types here are pure data: no storage, no clock, no side effects.
// The engine (lib/market) owns lifecycle transitions and mutates these
// records; the store (lib/store) persists them as CBOR. Validation
// follows a first-invalid-field convention: Validate returns an error
// describing the first problem found, or nil.
//
// # Identifiers
//
// Accounts are dotted names ("acme.bounty", "bob.bounty") whose leading
// segment is restricted to [A-Za-z0-9_]. Task identifiers are company
// scoped: "acme.landing_page" is the task named "landing_page" posted
// by the company whose account leads with "acme". The composite form
// makes task IDs globally unique without a central counter.
package schema
