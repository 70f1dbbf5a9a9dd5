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
	"github.com/bitmark-inc/auctiond/mint"
)

// Mint - creation controller surface for the RPC
type Mint struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

const (
	rateLimitMint = 100
	rateBurstMint = 50
)

// NewMint - create the minting service
func NewMint(log *logger.L) *Mint {
	return &Mint{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitMint, rateBurstMint),
	}
}

// CreatePromoAsset
// ----------------

// CreatePromoAssetArguments - arguments for RPC
type CreatePromoAssetArguments struct {
	Signed
	Genes *big.Int        `json:"genes"`
	Owner account.Address `json:"owner"` // base58, null for administrator
}

// CreateAssetReply - the id of the created asset
type CreateAssetReply struct {
	AssetId uint64 `json:"assetId"`
}

// CreatePromoAsset - administrator creates a promotional asset
func (m *Mint) CreatePromoAsset(arguments *CreatePromoAssetArguments, reply *CreateAssetReply) error {
	if err := rateLimit(m.Limiter); nil != err {
		return err
	}

	m.Log.Infof("Mint.CreatePromoAsset: %+v", arguments)

	packed := NewMessage("Mint.CreatePromoAsset", arguments.Caller).
		Big(arguments.Genes).
		Address(arguments.Owner).
		Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	id, err := mint.CreatePromoAsset(arguments.Caller, arguments.Genes, arguments.Owner)
	if nil != err {
		return err
	}
	reply.AssetId = id
	return nil
}

// CreateGen0Auction
// -----------------

// CreateGen0AuctionArguments - arguments for RPC
type CreateGen0AuctionArguments struct {
	Signed
	Genes *big.Int `json:"genes"`
}

// CreateGen0Auction - administrator creates a gen0 asset and lists it
func (m *Mint) CreateGen0Auction(arguments *CreateGen0AuctionArguments, reply *CreateAssetReply) error {
	if err := rateLimit(m.Limiter); nil != err {
		return err
	}

	m.Log.Infof("Mint.CreateGen0Auction: %+v", arguments)

	packed := NewMessage("Mint.CreateGen0Auction", arguments.Caller).
		Big(arguments.Genes).
		Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	id, err := mint.CreateGen0Auction(arguments.Caller, arguments.Genes)
	if nil != err {
		return err
	}
	reply.AssetId = id
	return nil
}

// NextGen0Price
// -------------

// NextGen0PriceArguments - empty arguments
type NextGen0PriceArguments struct{}

// NextGen0PriceReply - the opening price of the next gen0 listing
type NextGen0PriceReply struct {
	Price      *big.Int `json:"price"`
	PromoCount uint64   `json:"promoCount"`
	Gen0Count  uint64   `json:"gen0Count"`
}

// NextGen0Price - opening price the next gen0 listing would use
func (m *Mint) NextGen0Price(_ *NextGen0PriceArguments, reply *NextGen0PriceReply) error {
	if err := rateLimit(m.Limiter); nil != err {
		return err
	}

	price, err := mint.NextGen0Price()
	if nil != err {
		return err
	}
	reply.Price = price
	reply.PromoCount = mint.PromoCreatedCount()
	reply.Gen0Count = mint.Gen0CreatedCount()
	return nil
}
