// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"math/big"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/funds"
)

// Funds - platform currency stand-in surface for the RPC
type Funds struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

const (
	rateLimitFunds = 200
	rateBurstFunds = 100
)

// NewFunds - create the funds service
func NewFunds(log *logger.L) *Funds {
	return &Funds{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitFunds, rateBurstFunds),
	}
}

// Deposit
// -------

// DepositArguments - arguments for RPC
type DepositArguments struct {
	Signed
	To     account.Address `json:"to"` // base58, null for the caller
	Amount *big.Int        `json:"amount"`
}

// Deposit - credit an account balance
func (f *Funds) Deposit(arguments *DepositArguments, reply *DoneReply) error {
	if err := rateLimit(f.Limiter); nil != err {
		return err
	}

	f.Log.Infof("Funds.Deposit: %+v", arguments)

	packed := NewMessage("Funds.Deposit", arguments.Caller).
		Address(arguments.To).
		Big(arguments.Amount).
		Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	to := arguments.To
	if to.IsNull() {
		to = arguments.Caller
	}

	if err := funds.Deposit(to, arguments.Amount); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// Balance
// -------

// FundsBalanceArguments - arguments for RPC
type FundsBalanceArguments struct {
	Owner account.Address `json:"owner"` // base58
}

// FundsBalanceReply - the current account balance
type FundsBalanceReply struct {
	Balance *big.Int `json:"balance"`
}

// Balance - current balance of an account
func (f *Funds) Balance(arguments *FundsBalanceArguments, reply *FundsBalanceReply) error {
	if err := rateLimit(f.Limiter); nil != err {
		return err
	}
	reply.Balance = funds.Balance(arguments.Owner)
	return nil
}
