// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"errors"
	"fmt"
	"strings"
)

// AccountID is a marketplace account: a dotted name like "acme.bounty"
// (a company) or "bob.bounty" (a user). Labels are separated by "."
// and restricted to [A-Za-z0-9_]. The zero value is no account.
type AccountID string

// TaskID is a company-scoped task identifier: the posting company's
// account followed by a task name, "acme.bounty.landing_page". The
// composite form makes task IDs globally unique without a counter, and
// parsing is unambiguous because the task name is always the last
// label.
type TaskID string

// ParseAccountID validates s and returns it as an AccountID.
func ParseAccountID(s string) (AccountID, error) {
	if err := validateLabels(s); err != nil {
		return "", fmt.Errorf("account ID %q: %w", s, err)
	}
	return AccountID(s), nil
}

// IsZero reports whether the account ID is empty.
func (a AccountID) IsZero() bool { return a == "" }

// Validate checks the account ID's label syntax.
func (a AccountID) Validate() error {
	if err := validateLabels(string(a)); err != nil {
		return fmt.Errorf("account ID %q: %w", string(a), err)
	}
	return nil
}

// Name returns the leading label, the account's short name
// ("acme.bounty" → "acme").
func (a AccountID) Name() string {
	s := string(a)
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		return s[:dot]
	}
	return s
}

// ParseTaskID validates s and returns it as a TaskID. A task ID needs
// at least two labels: the owning company's account and the task name.
func ParseTaskID(s string) (TaskID, error) {
	if err := validateLabels(s); err != nil {
		return "", fmt.Errorf("task ID %q: %w", s, err)
	}
	if !strings.Contains(s, ".") {
		return "", fmt.Errorf("task ID %q: missing company qualifier", s)
	}
	return TaskID(s), nil
}

// IsZero reports whether the task ID is empty.
func (t TaskID) IsZero() bool { return t == "" }

// Validate checks the task ID's syntax, including the company
// qualifier.
func (t TaskID) Validate() error {
	_, err := ParseTaskID(string(t))
	return err
}

// Company returns the owning company's account: every label except the
// last ("acme.bounty.landing_page" → "acme.bounty").
func (t TaskID) Company() AccountID {
	s := string(t)
	if dot := strings.LastIndexByte(s, '.'); dot >= 0 {
		return AccountID(s[:dot])
	}
	return ""
}

// TaskName returns the trailing label, the human-readable task name.
func (t TaskID) TaskName() string {
	s := string(t)
	if dot := strings.LastIndexByte(s, '.'); dot >= 0 {
		return s[dot+1:]
	}
	return s
}

// validateLabels checks a dotted identifier: non-empty, no empty
// labels, and every byte in [A-Za-z0-9_].
func validateLabels(s string) error {
	if s == "" {
		return errors.New("empty")
	}
	for _, label := range strings.Split(s, ".") {
		if label == "" {
			return errors.New("empty label")
		}
		for i := 0; i < len(label); i++ {
			c := label[i]
			switch {
			case c >= 'a' && c <= 'z':
			case c >= 'A' && c <= 'Z':
			case c >= '0' && c <= '9':
			case c == '_':
			default:
				return fmt.Errorf("invalid character %q in label %q", c, label)
			}
		}
	}
	return nil
}
