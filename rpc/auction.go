// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"math/big"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/auction"
)

// Auction - sale engine surface for the RPC
type Auction struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

const (
	rateLimitAuction = 200
	rateBurstAuction = 100
)

// NewAuction - create the sale engine service
func NewAuction(log *logger.L) *Auction {
	return &Auction{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitAuction, rateBurstAuction),
	}
}

// Create
// ------

// CreateAuctionArguments - arguments for RPC
type CreateAuctionArguments struct {
	Signed
	AssetId    uint64   `json:"assetId"`
	StartPrice *big.Int `json:"startPrice"`
	EndPrice   *big.Int `json:"endPrice"`
	Duration   uint64   `json:"duration"` // seconds
}

// Create - escrow an owned asset and open its price curve
func (a *Auction) Create(arguments *CreateAuctionArguments, reply *DoneReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}

	a.Log.Infof("Auction.Create: %+v", arguments)

	packed := NewMessage("Auction.Create", arguments.Caller).
		Uint64(arguments.AssetId).
		Big(arguments.StartPrice).
		Big(arguments.EndPrice).
		Uint64(arguments.Duration).
		Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	err := auction.Create(arguments.Caller, arguments.AssetId, arguments.StartPrice, arguments.EndPrice, arguments.Duration)
	if nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// Bid
// ---

// BidArguments - arguments for RPC
type BidArguments struct {
	Signed
	AssetId uint64   `json:"assetId"`
	Amount  *big.Int `json:"amount"`
}

// Bid - settle an active auction at the current curve price
func (a *Auction) Bid(arguments *BidArguments, reply *DoneReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}

	a.Log.Infof("Auction.Bid: %+v", arguments)

	packed := NewMessage("Auction.Bid", arguments.Caller).
		Uint64(arguments.AssetId).
		Big(arguments.Amount).
		Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	if err := auction.Bid(arguments.Caller, arguments.AssetId, arguments.Amount); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// Cancel
// ------

// CancelArguments - arguments for RPC
type CancelArguments struct {
	Signed
	AssetId uint64 `json:"assetId"`
}

// Cancel - seller takes an unsold asset back out of escrow
func (a *Auction) Cancel(arguments *CancelArguments, reply *DoneReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}

	a.Log.Infof("Auction.Cancel: %+v", arguments)

	packed := NewMessage("Auction.Cancel", arguments.Caller).
		Uint64(arguments.AssetId).
		Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	if err := auction.Cancel(arguments.Caller, arguments.AssetId); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// CancelWhenPaused - administrator cancels an auction while paused
func (a *Auction) CancelWhenPaused(arguments *CancelArguments, reply *DoneReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}

	a.Log.Infof("Auction.CancelWhenPaused: %+v", arguments)

	packed := NewMessage("Auction.CancelWhenPaused", arguments.Caller).
		Uint64(arguments.AssetId).
		Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	if err := auction.CancelWhenPaused(arguments.Caller, arguments.AssetId); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// Get
// ---

// GetAuctionArguments - arguments for RPC
type GetAuctionArguments struct {
	AssetId uint64 `json:"assetId"`
}

// GetAuctionReply - the listing and its current curve price
type GetAuctionReply struct {
	Auction      auction.Auction `json:"auction"`
	CurrentPrice *big.Int        `json:"currentPrice"`
}

// Get - the active listing for an asset
func (a *Auction) Get(arguments *GetAuctionArguments, reply *GetAuctionReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}

	listing, err := auction.Get(arguments.AssetId)
	if nil != err {
		return err
	}
	price, err := auction.CurrentPrice(arguments.AssetId)
	if nil != err {
		return err
	}
	reply.Auction = listing
	reply.CurrentPrice = price
	return nil
}

// CurrentPrice
// ------------

// CurrentPriceArguments - arguments for RPC
type CurrentPriceArguments struct {
	AssetId uint64 `json:"assetId"`
}

// CurrentPriceReply - the instantaneous curve price
type CurrentPriceReply struct {
	Price *big.Int `json:"price"`
}

// CurrentPrice - instantaneous price of an active auction
func (a *Auction) CurrentPrice(arguments *CurrentPriceArguments, reply *CurrentPriceReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}

	price, err := auction.CurrentPrice(arguments.AssetId)
	if nil != err {
		return err
	}
	reply.Price = price
	return nil
}

// AverageGen0SalePrice
// --------------------

// AveragePriceArguments - empty arguments
type AveragePriceArguments struct{}

// AveragePriceReply - the recent engine sale average
type AveragePriceReply struct {
	Price *big.Int `json:"price"`
}

// AverageGen0SalePrice - average of the recent engine originated sales
func (a *Auction) AverageGen0SalePrice(_ *AveragePriceArguments, reply *AveragePriceReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}
	reply.Price = auction.AverageGen0SalePrice()
	return nil
}

// WithdrawBalance
// ---------------

// WithdrawBalanceArguments - arguments for RPC
type WithdrawBalanceArguments struct {
	Signed
}

// WithdrawBalance - move the accumulated engine cut to the beneficiary
func (a *Auction) WithdrawBalance(arguments *WithdrawBalanceArguments, reply *DoneReply) error {
	if err := rateLimit(a.Limiter); nil != err {
		return err
	}

	a.Log.Infof("Auction.WithdrawBalance: %+v", arguments)

	packed := NewMessage("Auction.WithdrawBalance", arguments.Caller).Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	if err := auction.WithdrawBalance(arguments.Caller); nil != err {
		return err
	}
	reply.OK = true
	return nil
}
