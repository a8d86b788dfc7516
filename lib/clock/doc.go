// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts time for testability. Production code injects
// Real(); tests inject Fake() with deterministic time control.
//
// The marketplace engine has no background scheduler: time-based task
// transitions (Open→Expired, Pending→Overdue) materialize lazily when a
// task is next touched by a call. The only time operation the engine
// performs is reading the current instant, so Clock carries Now() and
// nothing else. Tests drive expiry by advancing a fake clock between
// calls, never by sleeping.
package clock
