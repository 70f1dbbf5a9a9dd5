// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mint - controlled asset creation
//
// two administrator-only creation paths, each under its own lifetime
// cap: promotional assets are delivered directly to an owner, gen0
// assets are born into the auction engine's custody and immediately
// listed on a one day declining auction whose starting price is
// derived from the recent gen0 sale history
package mint

import (
	"math/big"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/access"
	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/auction"
	"github.com/bitmark-inc/auctiond/event"
	"github.com/bitmark-inc/auctiond/fault"
	"github.com/bitmark-inc/auctiond/ledger"
	"github.com/bitmark-inc/auctiond/mode"
	"github.com/bitmark-inc/auctiond/storage"
)

// lifetime creation caps, independent of each other
const (
	promoCreationCap = 5000
	gen0CreationCap  = 45000
)

// every gen0 auction declines to zero over one day
const gen0AuctionDuration = 86400

// Meta pool keys for the persisted cap counters
var (
	promoCountKey = []byte("mint-promo-count")
	gen0CountKey  = []byte("mint-gen0-count")
)

var globalData struct {
	sync.Mutex
	log *logger.L

	minimumGen0Price *big.Int

	// set once during initialise
	initialised bool
}

// Initialise - configure the controller
//
// the minimum is the gen0 starting price used until enough sale
// history accumulates to exceed it
func Initialise(minimumGen0Price *big.Int) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	if nil == minimumGen0Price || minimumGen0Price.Sign() < 0 || minimumGen0Price.BitLen() > 128 {
		return fault.ErrPriceOutOfRange
	}

	globalData.log = logger.New("mint")
	globalData.log.Info("starting…")

	globalData.minimumGen0Price = new(big.Int).Set(minimumGen0Price)

	globalData.initialised = true
	return nil
}

// Finalise - shut down the controller
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

// PromoCreatedCount - promotional assets created so far
func PromoCreatedCount() uint64 {
	n, _ := storage.Pool.Meta.GetN(promoCountKey)
	return n
}

// Gen0CreatedCount - gen0 assets created so far
func Gen0CreatedCount() uint64 {
	n, _ := storage.Pool.Meta.GetN(gen0CountKey)
	return n
}

// CreatePromoAsset - mint a promotional generation 0 asset
//
// administrator only; a null owner delivers to the administrator
// itself.  the asset and the cap counter commit in one batch, so a
// rejected create never consumes cap and a consumed cap always has
// its asset
func CreatePromoAsset(caller account.Address, genes *big.Int, owner account.Address) (uint64, error) {
	storage.Lock()
	defer storage.Unlock()

	globalData.Lock()
	defer globalData.Unlock()

	if err := access.RequireAdministrator(caller); nil != err {
		return 0, err
	}

	if PromoCreatedCount() >= promoCreationCap {
		return 0, fault.ErrPromoCapReached
	}

	if owner.IsNull() {
		owner = access.Administrator()
	}

	batch := storage.NewBatch()
	id, messages, err := ledger.StageCreate(batch, 0, 0, 0, genes, owner)
	if nil != err {
		return 0, err
	}
	batch.PutN(storage.Pool.Meta, promoCountKey, PromoCreatedCount()+1)
	batch.Commit()
	event.Dispatch(messages...)

	globalData.log.Infof("promo asset: id: %d  owner: %s", id, owner)
	return id, nil
}

// CreateGen0Auction - mint a gen0 asset and list it immediately
//
// administrator only; the asset is born into the auction engine's
// custody and listed at the algorithmic starting price, declining to
// zero over one day.  the asset record, the listing and the cap
// counter are one batch: the create and the listing cannot come
// apart, even across a crash
func CreateGen0Auction(caller account.Address, genes *big.Int) (uint64, error) {
	storage.Lock()
	defer storage.Unlock()

	globalData.Lock()
	defer globalData.Unlock()

	if err := access.RequireAdministrator(caller); nil != err {
		return 0, err
	}

	if Gen0CreatedCount() >= gen0CreationCap {
		return 0, fault.ErrGen0CapReached
	}

	if err := mode.RequireOperating(); nil != err {
		return 0, err
	}

	startPrice, err := NextGen0Price()
	if nil != err {
		return 0, err
	}
	if startPrice.BitLen() > 128 {
		return 0, fault.ErrPriceOutOfRange
	}

	custody := auction.Custody()

	batch := storage.NewBatch()
	id, messages, err := ledger.StageCreate(batch, 0, 0, 0, genes, custody)
	if nil != err {
		return 0, err
	}
	err = auction.StageListing(batch, id, startPrice, new(big.Int), gen0AuctionDuration)
	if nil != err {
		return 0, err
	}
	batch.PutN(storage.Pool.Meta, gen0CountKey, Gen0CreatedCount()+1)
	batch.Commit()
	event.Dispatch(messages...)

	globalData.log.Infof("gen0 auction: id: %d  start price: %s", id, startPrice)
	return id, nil
}

// NextGen0Price - starting price for the next gen0 auction
//
// one and a half times the recent gen0 sale average, floored at the
// configured minimum.  the range check on the average cannot trip
// while settlements validate their prices; it guards against a
// corrupted sample window
func NextGen0Price() (*big.Int, error) {
	average := auction.AverageGen0SalePrice()
	if average.BitLen() > 128 {
		return nil, fault.ErrAverageOutOfRange
	}

	next := new(big.Int).Quo(average, big.NewInt(2))
	next.Add(next, average)

	if next.Cmp(globalData.minimumGen0Price) < 0 {
		return new(big.Int).Set(globalData.minimumGen0Price), nil
	}
	return next, nil
}
