// Copyright 2026 The Bountyboard Authors
// SPDX-License-Identifier: Apache-2.0

package escrow

import (
	"errors"
	"fmt"

	"github.com/bountyboard-foundation/bountyboard/lib/schema"
)

// ErrInsufficientDeposit is returned by Bill.Settle when the attached
// deposit does not cover the call's cost. Callers detect it with
// errors.Is; the message carries the cost and the deposit.
var ErrInsufficientDeposit = errors.New("insufficient deposit")

// Meter reports the bytes currently retained by the backing store.
// *store.Store satisfies it.
type Meter interface {
	BytesUsed() uint64
}

// Accountant prices storage growth against a meter.
type Accountant struct {
	meter        Meter
	pricePerByte schema.Amount
}

// NewAccountant binds an accountant to a meter and a price per byte.
func NewAccountant(meter Meter, pricePerByte schema.Amount) *Accountant {
	return &Accountant{meter: meter, pricePerByte: pricePerByte}
}

// PricePerByte returns the configured price.
func (a *Accountant) PricePerByte() schema.Amount {
	return a.pricePerByte
}

// Begin opens a bill for one call, sampling the meter.
func (a *Accountant) Begin() *Bill {
	return &Bill{acct: a, before: a.meter.BytesUsed()}
}

// Bill is one call's open account: the meter reading at Begin, waiting
// to be settled against the reading at Settle.
type Bill struct {
	acct   *Accountant
	before uint64
}

// Cost samples the meter and returns what the call would cost to
// settle now: byte growth times the price per byte, plus the reserve.
// Byte shrinkage never produces a credit; the delta clamps to zero.
func (b *Bill) Cost(reserve schema.Amount) schema.Amount {
	after := b.acct.meter.BytesUsed()
	var delta uint64
	if after > b.before {
		delta = after - b.before
	}
	return schema.Amount(delta)*b.acct.pricePerByte + reserve
}

// Settle closes the bill against a deposit. It returns the surplus to
// refund, or ErrInsufficientDeposit when the deposit is short; the
// caller is then expected to roll the whole call back.
func (b *Bill) Settle(deposit, reserve schema.Amount) (schema.Amount, error) {
	cost := b.Cost(reserve)
	if deposit < cost {
		return 0, fmt.Errorf("call costs %d, deposit is %d: %w", cost, deposit, ErrInsufficientDeposit)
	}
	return deposit - cost, nil
}
