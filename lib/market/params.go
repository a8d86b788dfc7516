// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

package market

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bountyboard-foundation/bountyboard/lib/schema"
)

// Params is the engine's pricing and limit configuration. Loadable
// from a YAML file; the file is the single source of truth, with
// DefaultParams filling anything it leaves unset.
type Params struct {
	// PricePerByte is what one byte of retained storage costs the
	// caller that created it.
	PricePerByte schema.Amount `yaml:"price_per_byte"`

	// InviteeSurcharge is a fixed per-invitee amount added to the
	// creation cost of an invite-only task. It prefunds the storage an
	// invitation can grow into later (the assignee field on
	// acceptance), which keeps accept calls deposit-free.
	InviteeSurcharge schema.Amount `yaml:"invitee_surcharge"`

	// MaxInvitees caps the invitation set of a single task. Larger
	// sets are rejected at creation rather than admitted and priced.
	MaxInvitees int `yaml:"max_invitees"`

	// DefaultPageLimit is the page size used when a listing call
	// passes a limit of zero or less.
	DefaultPageLimit int `yaml:"default_page_limit"`
}

// DefaultParams returns the engine defaults.
func DefaultParams() Params {
	return Params{
		PricePerByte:     1,
		InviteeSurcharge: 64,
		MaxInvitees:      16,
		DefaultPageLimit: 50,
	}
}

// Validate checks the parameters for internal consistency.
func (p *Params) Validate() error {
	if p.MaxInvitees < 1 {
		return errors.New("params: max_invitees must be at least 1")
	}
	if p.DefaultPageLimit < 1 {
		return errors.New("params: default_page_limit must be at least 1")
	}
	return nil
}

// LoadParams reads parameters from a YAML file, merged over the
// defaults.
func LoadParams(path string) (Params, error) {
	params := DefaultParams()
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("load params: %w", err)
	}
	if err := yaml.Unmarshal(data, &params); err != nil {
		return Params{}, fmt.Errorf("load params %s: %w", path, err)
	}
	if err := params.Validate(); err != nil {
		return Params{}, fmt.Errorf("load params %s: %w", path, err)
	}
	return params, nil
}
