// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/auctiond/rpc"
)

func runBalanceOf(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	owner, err := requiredAddress(c, "owner")
	if nil != err {
		return err
	}

	var reply rpc.BalanceOfReply
	if err := client.call("Owner.BalanceOf", &rpc.BalanceOfArguments{Owner: owner}, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runOwnerOf(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	var reply rpc.OwnerOfReply
	if err := client.call("Owner.OwnerOf", &rpc.OwnerOfArguments{AssetId: c.Uint64("asset")}, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runSupply(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	var reply rpc.TotalSupplyReply
	if err := client.call("Owner.TotalSupply", &rpc.TotalSupplyArguments{}, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runTokens(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	owner, err := requiredAddress(c, "owner")
	if nil != err {
		return err
	}

	var reply rpc.TokensOfOwnerReply
	if err := client.call("Owner.TokensOfOwner", &rpc.TokensOfOwnerArguments{Owner: owner}, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runAsset(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	var reply rpc.GetAssetReply
	if err := client.call("Owner.Get", &rpc.GetAssetArguments{AssetId: c.Uint64("asset")}, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runMetadata(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	var reply rpc.MetadataReply
	if err := client.call("Owner.Metadata", &rpc.MetadataArguments{AssetId: c.Uint64("asset")}, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runTransfer(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	id, err := currentIdentity(c)
	if nil != err {
		return err
	}
	to, err := requiredAddress(c, "to")
	if nil != err {
		return err
	}
	assetId := c.Uint64("asset")

	arguments := rpc.TransferArguments{
		To:      to,
		AssetId: assetId,
	}
	arguments.Signed = id.sign(rpc.NewMessage("Owner.Transfer", id.address).
		Address(to).
		Uint64(assetId).
		Pack())

	var reply rpc.DoneReply
	if err := client.call("Owner.Transfer", &arguments, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runApprove(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	id, err := currentIdentity(c)
	if nil != err {
		return err
	}
	to, err := requiredAddress(c, "to")
	if nil != err {
		return err
	}
	assetId := c.Uint64("asset")

	arguments := rpc.ApproveArguments{
		To:      to,
		AssetId: assetId,
	}
	arguments.Signed = id.sign(rpc.NewMessage("Owner.Approve", id.address).
		Address(to).
		Uint64(assetId).
		Pack())

	var reply rpc.DoneReply
	if err := client.call("Owner.Approve", &arguments, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runApproveSiring(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	id, err := currentIdentity(c)
	if nil != err {
		return err
	}
	to, err := requiredAddress(c, "to")
	if nil != err {
		return err
	}
	assetId := c.Uint64("asset")

	arguments := rpc.ApproveSiringArguments{
		To:      to,
		AssetId: assetId,
	}
	arguments.Signed = id.sign(rpc.NewMessage("Owner.ApproveSiring", id.address).
		Address(to).
		Uint64(assetId).
		Pack())

	var reply rpc.DoneReply
	if err := client.call("Owner.ApproveSiring", &arguments, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runTransferFrom(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	id, err := currentIdentity(c)
	if nil != err {
		return err
	}
	from, err := requiredAddress(c, "from")
	if nil != err {
		return err
	}
	to, err := requiredAddress(c, "to")
	if nil != err {
		return err
	}
	assetId := c.Uint64("asset")

	arguments := rpc.TransferFromArguments{
		From:    from,
		To:      to,
		AssetId: assetId,
	}
	arguments.Signed = id.sign(rpc.NewMessage("Owner.TransferFrom", id.address).
		Address(from).
		Address(to).
		Uint64(assetId).
		Pack())

	var reply rpc.DoneReply
	if err := client.call("Owner.TransferFrom", &arguments, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}
