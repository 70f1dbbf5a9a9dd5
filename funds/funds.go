// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package funds - currency accounting
//
// stand-in for the platform currency: per-address balances held in
// the Balances pool.  Moving money is done through a Movement which
// accumulates debits and credits and stages the final balances into
// the caller's storage batch, so a settlement commits atomically with
// the ledger changes it pays for.
//
// an address may register a receive guard; a guard refusing a credit
// makes that credit fail, which the auction settlement deliberately
// swallows (see auction.Bid)
package funds

import (
	"math/big"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/fault"
	"github.com/bitmark-inc/auctiond/storage"
)

// ReceiveGuard - veto incoming credits for one address
//
// from is the paying address, or the null address for a deposit
// entering from outside the system
type ReceiveGuard func(from account.Address) error

var globalData struct {
	sync.Mutex
	log    *logger.L
	guards map[account.Address]ReceiveGuard

	// set once during initialise
	initialised bool
}

// Initialise - set up the currency accounts
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("funds")
	globalData.log.Info("starting…")

	globalData.guards = make(map[account.Address]ReceiveGuard)

	globalData.initialised = true
	return nil
}

// Finalise - shut down the currency accounts
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false
	return nil
}

// SetGuard - register a receive guard for an address
func SetGuard(address account.Address, guard ReceiveGuard) {
	globalData.Lock()
	globalData.guards[address] = guard
	globalData.Unlock()
}

// Balance - current balance of an address, zero if never credited
func Balance(address account.Address) *big.Int {
	buffer := storage.Pool.Balances.Get(address.Bytes())
	if nil == buffer {
		return new(big.Int)
	}
	return new(big.Int).SetBytes(buffer)
}

// Deposit - currency entering the system from outside
func Deposit(to account.Address, amount *big.Int) error {
	storage.Lock()
	defer storage.Unlock()

	m := NewMovement()
	if err := m.Credit(account.Null, to, amount); nil != err {
		return err
	}
	batch := storage.NewBatch()
	m.Stage(batch)
	batch.Commit()
	return nil
}

// Transfer - self-contained movement between two addresses
func Transfer(from account.Address, to account.Address, amount *big.Int) error {
	storage.Lock()
	defer storage.Unlock()

	m := NewMovement()
	if err := m.Debit(from, amount); nil != err {
		return err
	}
	if err := m.Credit(from, to, amount); nil != err {
		return err
	}
	batch := storage.NewBatch()
	m.Stage(batch)
	batch.Commit()
	return nil
}

// Movement - an accumulation of debits and credits
//
// validation happens as entries are added; Stage writes the resulting
// balances, so a movement abandoned half-built has no effect.  both
// the entries and Stage read committed balances, so the caller must
// hold the storage operation lock from the first entry until its
// batch commits
type Movement struct {
	deltas map[account.Address]*big.Int
}

// NewMovement - an empty movement
func NewMovement() *Movement {
	return &Movement{
		deltas: make(map[account.Address]*big.Int),
	}
}

// current balance as modified by entries already accumulated
func (m *Movement) pendingBalance(address account.Address) *big.Int {
	balance := Balance(address)
	if delta, ok := m.deltas[address]; ok {
		balance.Add(balance, delta)
	}
	return balance
}

func (m *Movement) add(address account.Address, amount *big.Int) {
	delta, ok := m.deltas[address]
	if !ok {
		delta = new(big.Int)
		m.deltas[address] = delta
	}
	delta.Add(delta, amount)
}

// Debit - take amount from an address
func (m *Movement) Debit(address account.Address, amount *big.Int) error {
	if err := validAmount(amount); nil != err {
		return err
	}
	if m.pendingBalance(address).Cmp(amount) < 0 {
		return fault.ErrInsufficientFunds
	}
	m.add(address, new(big.Int).Neg(amount))
	return nil
}

// Credit - give amount to an address, subject to its receive guard
func (m *Movement) Credit(from account.Address, to account.Address, amount *big.Int) error {
	if err := validAmount(amount); nil != err {
		return err
	}

	globalData.Lock()
	guard := globalData.guards[to]
	globalData.Unlock()

	if nil != guard {
		if err := guard(from); nil != err {
			return err
		}
	}

	m.add(to, amount)
	return nil
}

// Stage - write the accumulated balances into a batch
func (m *Movement) Stage(batch *storage.Batch) {
	for address, delta := range m.deltas {
		balance := Balance(address)
		balance.Add(balance, delta)
		if balance.Sign() < 0 {
			// Debit validated every entry, so this is corruption
			logger.Panicf("funds: negative balance for: %s", address)
		}
		batch.Put(storage.Pool.Balances, address.Bytes(), balance.Bytes())
	}
}

// amounts are non-negative and fit 128 bits
func validAmount(amount *big.Int) error {
	if nil == amount || amount.Sign() < 0 || amount.BitLen() > 128 {
		return fault.ErrPriceOutOfRange
	}
	return nil
}
