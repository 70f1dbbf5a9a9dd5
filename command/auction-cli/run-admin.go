// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/auctiond/rpc"
)

// a signed call carrying no extra arguments
func runBareAdmin(c *cli.Context, method string) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	id, err := currentIdentity(c)
	if nil != err {
		return err
	}

	arguments := rpc.PauseArguments{}
	arguments.Signed = id.sign(rpc.NewMessage(method, id.address).Pack())

	var reply rpc.DoneReply
	if err := client.call(method, &arguments, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runPause(c *cli.Context) error {
	return runBareAdmin(c, "Admin.Pause")
}

func runUnpause(c *cli.Context) error {
	return runBareAdmin(c, "Admin.Unpause")
}

func runSetGeneOracle(c *cli.Context) error {
	return runBareAdmin(c, "Admin.SetGeneOracle")
}

// a signed role appointment call
func runAppoint(c *cli.Context, method string) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	id, err := currentIdentity(c)
	if nil != err {
		return err
	}
	holder, err := requiredAddress(c, "holder")
	if nil != err {
		return err
	}

	arguments := rpc.AppointArguments{
		Holder: holder,
	}
	arguments.Signed = id.sign(rpc.NewMessage(method, id.address).
		Address(holder).
		Pack())

	var reply rpc.DoneReply
	if err := client.call(method, &arguments, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runSetFinance(c *cli.Context) error {
	return runAppoint(c, "Admin.SetFinanceController")
}

func runSetOperations(c *cli.Context) error {
	return runAppoint(c, "Admin.SetOperationsController")
}

// a signed collaborator registration call
func runSetEngine(c *cli.Context, method string) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	id, err := currentIdentity(c)
	if nil != err {
		return err
	}
	engine, err := requiredAddress(c, "engine")
	if nil != err {
		return err
	}

	arguments := rpc.EngineArguments{
		Engine: engine,
	}
	arguments.Signed = id.sign(rpc.NewMessage(method, id.address).
		Address(engine).
		Pack())

	var reply rpc.DoneReply
	if err := client.call(method, &arguments, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runSetSaleEngine(c *cli.Context) error {
	return runSetEngine(c, "Admin.SetSaleEngine")
}

func runSetSiringEngine(c *cli.Context) error {
	return runSetEngine(c, "Admin.SetSiringEngine")
}

func runSetNewAddress(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	id, err := currentIdentity(c)
	if nil != err {
		return err
	}
	newAddress, err := requiredAddress(c, "address")
	if nil != err {
		return err
	}

	arguments := rpc.SetNewAddressArguments{
		NewAddress: newAddress,
	}
	arguments.Signed = id.sign(rpc.NewMessage("Admin.SetNewAddress", id.address).
		Address(newAddress).
		Pack())

	var reply rpc.DoneReply
	if err := client.call("Admin.SetNewAddress", &arguments, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runSweep(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	id, err := currentIdentity(c)
	if nil != err {
		return err
	}

	arguments := rpc.SweepArguments{}
	arguments.Signed = id.sign(rpc.NewMessage("Admin.SweepBalance", id.address).Pack())

	var reply rpc.DoneReply
	if err := client.call("Admin.SweepBalance", &arguments, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}
