// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/auctiond/rpc"
)

func runDeposit(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	id, err := currentIdentity(c)
	if nil != err {
		return err
	}
	amount, err := requiredAmount(c, "amount")
	if nil != err {
		return err
	}

	// blank means credit the caller
	to, err := optionalAddress(c, "to")
	if nil != err {
		return err
	}

	arguments := rpc.DepositArguments{
		To:     to,
		Amount: amount,
	}
	arguments.Signed = id.sign(rpc.NewMessage("Funds.Deposit", id.address).
		Address(to).
		Big(amount).
		Pack())

	var reply rpc.DoneReply
	if err := client.call("Funds.Deposit", &arguments, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runFundsBalance(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	owner, err := requiredAddress(c, "owner")
	if nil != err {
		return err
	}

	var reply rpc.FundsBalanceReply
	if err := client.call("Funds.Balance", &rpc.FundsBalanceArguments{Owner: owner}, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}
