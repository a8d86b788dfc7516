// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

package escrow

import (
	"errors"
	"testing"

	"github.com/bountyboard-foundation/bountyboard/lib/schema"
)

type fakeMeter struct {
	used uint64
}

func (m *fakeMeter) BytesUsed() uint64 { return m.used }

func TestSettleChargesGrowth(t *testing.T) {
	meter := &fakeMeter{used: 100}
	acct := NewAccountant(meter, 3)

	bill := acct.Begin()
	meter.used = 140 // the call retained 40 bytes

	refund, err := bill.Settle(500, 0)
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if want := schema.Amount(500 - 40*3); refund != want {
		t.Fatalf("refund = %d, want %d", refund, want)
	}
}

func TestSettleAddsReserve(t *testing.T) {
	meter := &fakeMeter{used: 100}
	acct := NewAccountant(meter, 2)

	bill := acct.Begin()
	meter.used = 110

	refund, err := bill.Settle(1000, 750)
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if want := schema.Amount(1000 - 10*2 - 750); refund != want {
		t.Fatalf("refund = %d, want %d", refund, want)
	}
}

func TestSettleExactDepositRefundsZero(t *testing.T) {
	meter := &fakeMeter{used: 0}
	acct := NewAccountant(meter, 5)

	bill := acct.Begin()
	meter.used = 8

	refund, err := bill.Settle(40, 0)
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if refund != 0 {
		t.Fatalf("refund = %d, want 0", refund)
	}
}

func TestSettleShortDeposit(t *testing.T) {
	meter := &fakeMeter{used: 0}
	acct := NewAccountant(meter, 5)

	bill := acct.Begin()
	meter.used = 8

	if _, err := bill.Settle(39, 0); !errors.Is(err, ErrInsufficientDeposit) {
		t.Fatalf("Settle = %v, want ErrInsufficientDeposit", err)
	}
}

func TestShrinkageClampsToZero(t *testing.T) {
	meter := &fakeMeter{used: 200}
	acct := NewAccountant(meter, 7)

	bill := acct.Begin()
	meter.used = 50 // the call freed storage

	refund, err := bill.Settle(10, 0)
	if err != nil {
		t.Fatalf("Settle: %v", err)
	}
	if refund != 10 {
		t.Fatalf("refund = %d, want full deposit back", refund)
	}
}

func TestShrinkageStillOwesReserve(t *testing.T) {
	meter := &fakeMeter{used: 200}
	acct := NewAccountant(meter, 7)

	bill := acct.Begin()
	meter.used = 50

	if _, err := bill.Settle(10, 11); !errors.Is(err, ErrInsufficientDeposit) {
		t.Fatalf("Settle = %v, want ErrInsufficientDeposit", err)
	}
}

func TestCostIsResampledPerCall(t *testing.T) {
	meter := &fakeMeter{used: 0}
	acct := NewAccountant(meter, 1)

	bill := acct.Begin()
	meter.used = 5
	if got := bill.Cost(0); got != 5 {
		t.Fatalf("Cost = %d, want 5", got)
	}
	meter.used = 9
	if got := bill.Cost(0); got != 9 {
		t.Fatalf("Cost after further growth = %d, want 9", got)
	}
}
