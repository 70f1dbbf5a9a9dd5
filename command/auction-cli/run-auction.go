// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/auctiond/rpc"
)

func runAuctionCreate(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	id, err := currentIdentity(c)
	if nil != err {
		return err
	}
	assetId := c.Uint64("asset")
	startPrice, err := requiredAmount(c, "start-price")
	if nil != err {
		return err
	}
	endPrice, err := requiredAmount(c, "end-price")
	if nil != err {
		return err
	}
	duration := c.Uint64("duration")

	arguments := rpc.CreateAuctionArguments{
		AssetId:    assetId,
		StartPrice: startPrice,
		EndPrice:   endPrice,
		Duration:   duration,
	}
	arguments.Signed = id.sign(rpc.NewMessage("Auction.Create", id.address).
		Uint64(assetId).
		Big(startPrice).
		Big(endPrice).
		Uint64(duration).
		Pack())

	var reply rpc.DoneReply
	if err := client.call("Auction.Create", &arguments, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runBid(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	id, err := currentIdentity(c)
	if nil != err {
		return err
	}
	assetId := c.Uint64("asset")
	amount, err := requiredAmount(c, "amount")
	if nil != err {
		return err
	}

	arguments := rpc.BidArguments{
		AssetId: assetId,
		Amount:  amount,
	}
	arguments.Signed = id.sign(rpc.NewMessage("Auction.Bid", id.address).
		Uint64(assetId).
		Big(amount).
		Pack())

	var reply rpc.DoneReply
	if err := client.call("Auction.Bid", &arguments, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runAuctionCancel(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	id, err := currentIdentity(c)
	if nil != err {
		return err
	}
	assetId := c.Uint64("asset")

	method := "Auction.Cancel"
	if c.Bool("paused") {
		method = "Auction.CancelWhenPaused"
	}

	arguments := rpc.CancelArguments{
		AssetId: assetId,
	}
	arguments.Signed = id.sign(rpc.NewMessage(method, id.address).
		Uint64(assetId).
		Pack())

	var reply rpc.DoneReply
	if err := client.call(method, &arguments, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runAuctionGet(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	var reply rpc.GetAuctionReply
	if err := client.call("Auction.Get", &rpc.GetAuctionArguments{AssetId: c.Uint64("asset")}, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runPrice(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	var reply rpc.CurrentPriceReply
	if err := client.call("Auction.CurrentPrice", &rpc.CurrentPriceArguments{AssetId: c.Uint64("asset")}, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runAveragePrice(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	var reply rpc.AveragePriceReply
	if err := client.call("Auction.AverageGen0SalePrice", &rpc.AveragePriceArguments{}, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runWithdraw(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	id, err := currentIdentity(c)
	if nil != err {
		return err
	}

	arguments := rpc.WithdrawBalanceArguments{}
	arguments.Signed = id.sign(rpc.NewMessage("Auction.WithdrawBalance", id.address).Pack())

	var reply rpc.DoneReply
	if err := client.call("Auction.WithdrawBalance", &arguments, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}
