// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/auctiond/rpc"
)

func runMintPromo(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	id, err := currentIdentity(c)
	if nil != err {
		return err
	}
	genes, err := requiredGenes(c, "genes")
	if nil != err {
		return err
	}

	// blank means the administrator keeps the asset
	owner, err := optionalAddress(c, "owner")
	if nil != err {
		return err
	}

	arguments := rpc.CreatePromoAssetArguments{
		Genes: genes,
		Owner: owner,
	}
	arguments.Signed = id.sign(rpc.NewMessage("Mint.CreatePromoAsset", id.address).
		Big(genes).
		Address(owner).
		Pack())

	var reply rpc.CreateAssetReply
	if err := client.call("Mint.CreatePromoAsset", &arguments, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runMintGen0(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	id, err := currentIdentity(c)
	if nil != err {
		return err
	}
	genes, err := requiredGenes(c, "genes")
	if nil != err {
		return err
	}

	arguments := rpc.CreateGen0AuctionArguments{
		Genes: genes,
	}
	arguments.Signed = id.sign(rpc.NewMessage("Mint.CreateGen0Auction", id.address).
		Big(genes).
		Pack())

	var reply rpc.CreateAssetReply
	if err := client.call("Mint.CreateGen0Auction", &arguments, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runNextPrice(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	var reply rpc.NextGen0PriceReply
	if err := client.call("Mint.NextGen0Price", &rpc.NextGen0PriceArguments{}, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}
