// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auction

import (
	"math"
	"math/big"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/access"
	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/event"
	"github.com/bitmark-inc/auctiond/fault"
	"github.com/bitmark-inc/auctiond/funds"
	"github.com/bitmark-inc/auctiond/ledger"
	"github.com/bitmark-inc/auctiond/mode"
	"github.com/bitmark-inc/auctiond/storage"
)

// the fee denominator: 10000 basis points = 100%
const basisPointDenominator = 10000

var globalData struct {
	sync.Mutex
	log *logger.L

	ownerCutBps uint64
	custody     account.Address
	beneficiary account.Address

	// set once during initialise
	initialised bool
}

// replaceable for the price curve tests
var clock = func() int64 { return time.Now().Unix() }

// Initialise - configure the engine
//
// the custody address holds escrowed assets and the engine's own
// currency balance; the beneficiary is the only withdrawal target
func Initialise(ownerCutBps uint64, custody account.Address, beneficiary account.Address) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	if ownerCutBps > basisPointDenominator {
		return fault.ErrInvalidOwnerCut
	}
	if custody.IsNull() || beneficiary.IsNull() {
		return fault.ErrNullAddress
	}

	globalData.log = logger.New("auction")
	globalData.log.Info("starting…")

	globalData.ownerCutBps = ownerCutBps
	globalData.custody = custody
	globalData.beneficiary = beneficiary

	globalData.initialised = true
	return nil
}

// Finalise - shut down the engine
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

// Custody - the engine's escrow address
func Custody() account.Address {
	globalData.Lock()
	defer globalData.Unlock()
	return globalData.custody
}

// Create - list an asset for sale
//
// the seller must own the asset; it is escrowed to the engine's
// custody address in the same batch that records the listing
func Create(seller account.Address, id uint64, startPrice *big.Int, endPrice *big.Int, duration uint64) error {
	storage.Lock()
	defer storage.Unlock()

	globalData.Lock()
	defer globalData.Unlock()

	if err := mode.RequireOperating(); nil != err {
		return err
	}

	if err := validListing(startPrice, endPrice, duration); nil != err {
		return err
	}

	entry := Auction{
		Seller:     seller,
		StartPrice: startPrice,
		EndPrice:   endPrice,
		Duration:   int64(duration),
		StartedAt:  clock(),
	}

	batch := storage.NewBatch()
	seq, err := ledger.StageEscrowTransfer(batch, seller, globalData.custody, id)
	if nil != err {
		return err
	}
	batch.Put(storage.Pool.Auctions, auctionKey(id), entry.pack())
	batch.Commit()

	event.Dispatch(event.Message{
		Seq:   seq,
		Event: event.Transferred{From: seller, To: globalData.custody, AssetId: id},
	})

	globalData.log.Infof("created auction: id: %d  seller: %s", id, seller)
	return nil
}

// StageListing - stage an engine-owned listing into the caller's batch
//
// used by the minting controller: a gen0 asset is staged into custody
// and listed by the same batch, so there is no escrow movement and the
// ownership precondition is the caller's to guarantee.  the caller
// holds the storage operation lock and commits the batch
func StageListing(batch *storage.Batch, id uint64, startPrice *big.Int, endPrice *big.Int, duration uint64) error {
	globalData.Lock()
	defer globalData.Unlock()

	if err := validListing(startPrice, endPrice, duration); nil != err {
		return err
	}

	entry := Auction{
		Seller:     globalData.custody,
		StartPrice: startPrice,
		EndPrice:   endPrice,
		Duration:   int64(duration),
		StartedAt:  clock(),
	}
	batch.Put(storage.Pool.Auctions, auctionKey(id), entry.pack())

	globalData.log.Infof("staged engine listing: id: %d  start price: %s", id, startPrice)
	return nil
}

// the shared listing validation
func validListing(startPrice *big.Int, endPrice *big.Int, duration uint64) error {
	if err := validPrice(startPrice); nil != err {
		return err
	}
	if err := validPrice(endPrice); nil != err {
		return err
	}
	if duration > math.MaxInt64 {
		return fault.ErrDurationOutOfRange
	}
	return nil
}

// Bid - buy a listed asset at its current curve price
//
// amount at least the current price wins immediately; only the price
// is taken from the bidder, the excess never moves.  the listing is
// removed before any payout so the settled auction cannot be bid on
// again, and a seller refusing payment forfeits the proceeds to the
// engine without blocking the sale
func Bid(bidder account.Address, id uint64, amount *big.Int) error {
	storage.Lock()
	defer storage.Unlock()

	globalData.Lock()
	defer globalData.Unlock()

	if err := mode.RequireOperating(); nil != err {
		return err
	}

	buffer := storage.Pool.Auctions.Get(auctionKey(id))
	if nil == buffer {
		return fault.ErrAuctionNotFound
	}
	entry := unpackAuction(buffer)

	price := priceAt(entry, clock())
	if nil == amount || amount.Cmp(price) < 0 {
		return fault.ErrBidTooLow
	}

	cut := new(big.Int).SetUint64(globalData.ownerCutBps)
	cut.Mul(cut, price)
	cut.Quo(cut, big.NewInt(basisPointDenominator))
	proceeds := new(big.Int).Sub(price, cut)

	movement := funds.NewMovement()
	if err := movement.Debit(bidder, price); nil != err {
		return err
	}
	if err := movement.Credit(bidder, globalData.custody, cut); nil != err {
		return err
	}
	if err := movement.Credit(globalData.custody, entry.Seller, proceeds); nil != err {
		// an unpayable seller must not block the sale: the proceeds
		// stay with the engine, recoverable through the withdrawal
		// sweep
		globalData.log.Warnf("bid: seller refused payment: id: %d  seller: %s  proceeds: %s: %s",
			id, entry.Seller, proceeds, err)
		if err := movement.Credit(bidder, globalData.custody, proceeds); nil != err {
			return err
		}
	}

	batch := storage.NewBatch()
	batch.Delete(storage.Pool.Auctions, auctionKey(id))
	movement.Stage(batch)

	// sales listed by the engine itself price the next gen0 mint
	if entry.Seller == globalData.custody {
		stageSample(batch, price)
	}

	transferSeq, err := ledger.StageEscrowTransfer(batch, globalData.custody, bidder, id)
	if nil != err {
		return err
	}
	settledSeq := event.Append(batch, event.AuctionSettled{
		AssetId: id,
		Price:   price,
		Winner:  bidder,
	})
	batch.Commit()

	event.Dispatch(
		event.Message{Seq: transferSeq, Event: event.Transferred{From: globalData.custody, To: bidder, AssetId: id}},
		event.Message{Seq: settledSeq, Event: event.AuctionSettled{AssetId: id, Price: price, Winner: bidder}},
	)

	globalData.log.Infof("settled auction: id: %d  price: %s  winner: %s", id, price, bidder)
	return nil
}

// Cancel - withdraw a listing and recover the asset
func Cancel(caller account.Address, id uint64) error {
	storage.Lock()
	defer storage.Unlock()

	globalData.Lock()
	defer globalData.Unlock()

	if err := mode.RequireOperating(); nil != err {
		return err
	}

	buffer := storage.Pool.Auctions.Get(auctionKey(id))
	if nil == buffer {
		return fault.ErrAuctionNotFound
	}
	entry := unpackAuction(buffer)

	if caller != entry.Seller {
		return fault.ErrNotAuctionSeller
	}

	return cancel(entry, id)
}

// CancelWhenPaused - emergency recovery of an escrowed asset
//
// administrator only and only while the system is halted; the seller
// restriction does not apply
func CancelWhenPaused(caller account.Address, id uint64) error {
	storage.Lock()
	defer storage.Unlock()

	globalData.Lock()
	defer globalData.Unlock()

	if mode.IsOperating() {
		return fault.ErrNotPaused
	}
	if err := access.RequireAdministrator(caller); nil != err {
		return err
	}

	buffer := storage.Pool.Auctions.Get(auctionKey(id))
	if nil == buffer {
		return fault.ErrAuctionNotFound
	}

	return cancel(unpackAuction(buffer), id)
}

// remove the listing and return the asset, one batch.  must hold the
// lock
func cancel(entry Auction, id uint64) error {
	batch := storage.NewBatch()
	batch.Delete(storage.Pool.Auctions, auctionKey(id))
	seq, err := ledger.StageEscrowTransfer(batch, globalData.custody, entry.Seller, id)
	if nil != err {
		return err
	}
	batch.Commit()

	event.Dispatch(event.Message{
		Seq:   seq,
		Event: event.Transferred{From: globalData.custody, To: entry.Seller, AssetId: id},
	})

	globalData.log.Infof("cancelled auction: id: %d  seller: %s", id, entry.Seller)
	return nil
}

// Get - the active listing for an asset id
func Get(id uint64) (Auction, error) {
	buffer := storage.Pool.Auctions.Get(auctionKey(id))
	if nil == buffer {
		return Auction{}, fault.ErrAuctionNotFound
	}
	return unpackAuction(buffer), nil
}

// CurrentPrice - the curve price of an active listing right now
func CurrentPrice(id uint64) (*big.Int, error) {
	buffer := storage.Pool.Auctions.Get(auctionKey(id))
	if nil == buffer {
		return nil, fault.ErrAuctionNotFound
	}
	return priceAt(unpackAuction(buffer), clock()), nil
}

// WithdrawBalance - move the engine's accumulated currency to the
// beneficiary
//
// callable by the beneficiary itself or by the administrator
func WithdrawBalance(caller account.Address) error {
	storage.Lock()
	defer storage.Unlock()

	globalData.Lock()
	defer globalData.Unlock()

	if caller != globalData.beneficiary {
		if err := access.RequireAdministrator(caller); nil != err {
			return fault.ErrNotBeneficiary
		}
	}

	balance := funds.Balance(globalData.custody)
	if 0 == balance.Sign() {
		return nil
	}

	movement := funds.NewMovement()
	if err := movement.Debit(globalData.custody, balance); nil != err {
		return err
	}
	if err := movement.Credit(globalData.custody, globalData.beneficiary, balance); nil != err {
		return err
	}
	batch := storage.NewBatch()
	movement.Stage(batch)
	batch.Commit()

	globalData.log.Infof("withdrew balance: %s to: %s", balance, globalData.beneficiary)
	return nil
}

// the price curve: linear from start price to end price over the
// duration, flat at end price afterwards
//
// the interpolation is computed signed so a rising ramp works too;
// multiply before divide keeps the precision
func priceAt(entry Auction, now int64) *big.Int {
	elapsed := now - entry.StartedAt
	if elapsed < 0 {
		elapsed = 0
	}
	if 0 == entry.Duration || elapsed >= entry.Duration {
		return new(big.Int).Set(entry.EndPrice)
	}

	span := new(big.Int).Sub(entry.EndPrice, entry.StartPrice)
	span.Mul(span, big.NewInt(elapsed))
	span.Quo(span, big.NewInt(entry.Duration))
	return span.Add(span, entry.StartPrice)
}

// prices are non-negative and fit 128 bits
func validPrice(price *big.Int) error {
	if nil == price || price.Sign() < 0 || price.BitLen() > 128 {
		return fault.ErrPriceOutOfRange
	}
	return nil
}
