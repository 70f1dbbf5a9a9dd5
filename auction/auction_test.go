// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auction_test

import (
	"math/big"
	"os"
	"sync"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/auctiond/access"
	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/auction"
	"github.com/bitmark-inc/auctiond/event"
	"github.com/bitmark-inc/auctiond/fault"
	"github.com/bitmark-inc/auctiond/funds"
	"github.com/bitmark-inc/auctiond/ledger"
	"github.com/bitmark-inc/auctiond/mode"
	"github.com/bitmark-inc/auctiond/storage"
)

const (
	ownerCutBps = 375 // 3.75%
	genesisTime = int64(1000000)
)

var (
	admin       = testAddress(1)
	seller      = testAddress(2)
	bidder      = testAddress(3)
	outsider    = testAddress(4)
	custody     = testAddress(0xc0)
	beneficiary = testAddress(0xc9)
	siring      = testAddress(0xc2)
)

func TestMain(m *testing.M) {
	curPath := os.Getenv("PWD")
	testDir := curPath + "/testing"
	_ = os.MkdirAll(testDir, 0700)
	logging := logger.Configuration{
		Directory: testDir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		panic("logger setup failed: " + err.Error())
	}
	rc := m.Run()
	logger.Finalise()
	_ = os.RemoveAll(testDir)
	os.Exit(rc)
}

func testAddress(fill byte) account.Address {
	var a account.Address
	for i := 0; i < len(a); i += 1 {
		a[i] = fill
	}
	return a
}

// a controllable time source for the price curve
type testClock struct {
	now int64
}

func setup(t *testing.T) *testClock {
	err := storage.InitialiseMemory()
	assert.Nil(t, err, "storage initialise failed")
	err = mode.Initialise()
	assert.Nil(t, err, "mode initialise failed")
	err = event.Initialise()
	assert.Nil(t, err, "event initialise failed")
	err = funds.Initialise()
	assert.Nil(t, err, "funds initialise failed")
	err = ledger.Initialise()
	assert.Nil(t, err, "ledger initialise failed")
	err = access.Initialise(admin)
	assert.Nil(t, err, "access initialise failed")
	err = auction.Initialise(ownerCutBps, custody, beneficiary)
	assert.Nil(t, err, "auction initialise failed")

	ledger.SetRestrictedAddresses(custody, custody, siring)
	mode.Set(mode.Normal)

	clk := &testClock{now: genesisTime}
	restore := auction.SetClock(func() int64 { return clk.now })
	t.Cleanup(restore)
	return clk
}

func teardown() {
	_ = auction.Finalise()
	_ = access.Finalise()
	_ = ledger.Finalise()
	_ = funds.Finalise()
	_ = event.Finalise()
	_ = mode.Finalise()
	storage.Finalise()
}

func mustCreateAsset(t *testing.T, owner account.Address) uint64 {
	id, err := ledger.Create(0, 0, 0, big.NewInt(0x1234), owner)
	assert.Nil(t, err, "asset create failed")
	return id
}

func mustDeposit(t *testing.T, to account.Address, amount int64) {
	err := funds.Deposit(to, big.NewInt(amount))
	assert.Nil(t, err, "deposit failed")
}

func TestInitialiseValidation(t *testing.T) {
	err := auction.Initialise(10001, custody, beneficiary)
	assert.Equal(t, fault.ErrInvalidOwnerCut, err, "oversized cut accepted")

	err = auction.Initialise(ownerCutBps, account.Null, beneficiary)
	assert.Equal(t, fault.ErrNullAddress, err, "null custody accepted")
}

func TestCreateValidation(t *testing.T) {
	setup(t)
	defer teardown()

	id := mustCreateAsset(t, seller)

	// prices must fit 128 bits
	wide := new(big.Int).Lsh(big.NewInt(1), 129)
	err := auction.Create(seller, id, wide, big.NewInt(0), 86400)
	assert.Equal(t, fault.ErrPriceOutOfRange, err, "oversized start price accepted")
	err = auction.Create(seller, id, big.NewInt(0), wide, 86400)
	assert.Equal(t, fault.ErrPriceOutOfRange, err, "oversized end price accepted")
	err = auction.Create(seller, id, big.NewInt(-1), big.NewInt(0), 86400)
	assert.Equal(t, fault.ErrPriceOutOfRange, err, "negative price accepted")

	// duration must fit a signed 64 bit time delta
	err = auction.Create(seller, id, big.NewInt(1), big.NewInt(0), uint64(1)<<63)
	assert.Equal(t, fault.ErrDurationOutOfRange, err, "oversized duration accepted")

	// only the current owner can list
	err = auction.Create(outsider, id, big.NewInt(1), big.NewInt(0), 86400)
	assert.Equal(t, fault.ErrNotAssetOwner, err, "non-owner listing accepted")

	// the pause flag gates listing
	mode.Set(mode.Paused)
	err = auction.Create(seller, id, big.NewInt(1), big.NewInt(0), 86400)
	assert.Equal(t, fault.ErrPaused, err, "paused listing accepted")

	// nothing was escrowed
	owner, _ := ledger.OwnerOf(id)
	assert.Equal(t, seller, owner, "failed listing moved the asset")
}

func TestCreateEscrows(t *testing.T) {
	setup(t)
	defer teardown()

	id := mustCreateAsset(t, seller)

	err := auction.Create(seller, id, big.NewInt(1000), big.NewInt(0), 86400)
	assert.Nil(t, err, "create failed")

	owner, _ := ledger.OwnerOf(id)
	assert.Equal(t, custody, owner, "asset not escrowed")

	entry, err := auction.Get(id)
	assert.Nil(t, err, "get failed")
	assert.Equal(t, seller, entry.Seller, "wrong seller")
	assert.Equal(t, int64(86400), entry.Duration, "wrong duration")
	assert.Equal(t, genesisTime, entry.StartedAt, "wrong start time")
}

func TestPriceCurve(t *testing.T) {
	clk := setup(t)
	defer teardown()

	id := mustCreateAsset(t, seller)
	err := auction.Create(seller, id, big.NewInt(1000000), big.NewInt(0), 86400)
	assert.Nil(t, err, "create failed")

	testData := []struct {
		offset int64
		price  int64
	}{
		{0, 1000000},
		{21600, 750000},
		{43200, 500000},
		{86399, 12}, // 1000000*1/86400 truncated
		{86400, 0},
		{1000000, 0},
	}

	for i, item := range testData {
		clk.now = genesisTime + item.offset
		price, err := auction.CurrentPrice(id)
		assert.Nil(t, err, "%d: current price failed", i)
		assert.Equal(t, big.NewInt(item.price), price, "%d: wrong price at +%d", i, item.offset)
	}

	// reads never disturb the listing
	entry, err := auction.Get(id)
	assert.Nil(t, err, "listing vanished")
	assert.Equal(t, genesisTime, entry.StartedAt, "listing mutated by reads")
}

func TestPriceCurveEdges(t *testing.T) {
	clk := setup(t)
	defer teardown()

	// zero duration is immediately flat at the end price
	id := mustCreateAsset(t, seller)
	err := auction.Create(seller, id, big.NewInt(999), big.NewInt(77), 0)
	assert.Nil(t, err, "create failed")
	price, err := auction.CurrentPrice(id)
	assert.Nil(t, err, "current price failed")
	assert.Equal(t, big.NewInt(77), price, "wrong flat price")

	// a rising ramp works too
	id2 := mustCreateAsset(t, seller)
	err = auction.Create(seller, id2, big.NewInt(0), big.NewInt(1000), 100)
	assert.Nil(t, err, "create failed")
	clk.now = genesisTime + 50
	price, err = auction.CurrentPrice(id2)
	assert.Nil(t, err, "current price failed")
	assert.Equal(t, big.NewInt(500), price, "wrong rising price")
}

func TestBidSettlement(t *testing.T) {
	clk := setup(t)
	defer teardown()

	id := mustCreateAsset(t, seller)
	err := auction.Create(seller, id, big.NewInt(1000000), big.NewInt(0), 86400)
	assert.Nil(t, err, "create failed")

	mustDeposit(t, bidder, 2000000)

	// halfway down the curve
	clk.now = genesisTime + 43200

	// one unit below the price leaves the auction active
	err = auction.Bid(bidder, id, big.NewInt(499999))
	assert.Equal(t, fault.ErrBidTooLow, err, "low bid accepted")
	_, err = auction.Get(id)
	assert.Nil(t, err, "failed bid removed the listing")

	// an unlisted id cannot be bid on
	err = auction.Bid(bidder, id+1, big.NewInt(500000))
	assert.Equal(t, fault.ErrAuctionNotFound, err, "bid on unlisted id accepted")

	// over-bidding settles at the curve price, not the offer
	err = auction.Bid(bidder, id, big.NewInt(600000))
	assert.Nil(t, err, "bid failed")

	owner, _ := ledger.OwnerOf(id)
	assert.Equal(t, bidder, owner, "asset not delivered")

	_, err = auction.Get(id)
	assert.Equal(t, fault.ErrAuctionNotFound, err, "settled listing survived")

	// only the curve price was taken
	assert.Equal(t, big.NewInt(1500000), funds.Balance(bidder), "wrong bidder balance")

	// 3.75% of 500000 = 18750 retained, remainder to the seller
	assert.Equal(t, big.NewInt(18750), funds.Balance(custody), "wrong engine cut")
	assert.Equal(t, big.NewInt(481250), funds.Balance(seller), "wrong seller proceeds")

	// the settlement notification carries the realised price
	messages, err := event.Fetch(1, 100)
	assert.Nil(t, err, "fetch failed")
	settled, ok := messages[len(messages)-1].Event.(event.AuctionSettled)
	assert.True(t, ok, "last event is not a settlement")
	assert.Equal(t, id, settled.AssetId, "wrong settled id")
	assert.Equal(t, big.NewInt(500000), settled.Price, "wrong settled price")
	assert.Equal(t, bidder, settled.Winner, "wrong winner")
}

func TestBidBoundary(t *testing.T) {
	clk := setup(t)
	defer teardown()

	id := mustCreateAsset(t, seller)
	err := auction.Create(seller, id, big.NewInt(1000000), big.NewInt(0), 86400)
	assert.Nil(t, err, "create failed")

	mustDeposit(t, bidder, 500000)
	clk.now = genesisTime + 43200

	// an exact bid succeeds with zero refund
	err = auction.Bid(bidder, id, big.NewInt(500000))
	assert.Nil(t, err, "exact bid failed")
	assert.Zero(t, funds.Balance(bidder).Sign(), "wrong bidder balance")
}

func TestBidInsufficientFunds(t *testing.T) {
	setup(t)
	defer teardown()

	id := mustCreateAsset(t, seller)
	err := auction.Create(seller, id, big.NewInt(1000000), big.NewInt(1000000), 0)
	assert.Nil(t, err, "create failed")

	mustDeposit(t, bidder, 1000)

	err = auction.Bid(bidder, id, big.NewInt(1000000))
	assert.Equal(t, fault.ErrInsufficientFunds, err, "unfunded bid accepted")

	// the listing and the escrow are untouched
	_, err = auction.Get(id)
	assert.Nil(t, err, "failed bid removed the listing")
	owner, _ := ledger.OwnerOf(id)
	assert.Equal(t, custody, owner, "failed bid moved the asset")
}

func TestBidSellerRefusesPayment(t *testing.T) {
	setup(t)
	defer teardown()

	id := mustCreateAsset(t, seller)
	err := auction.Create(seller, id, big.NewInt(1000000), big.NewInt(1000000), 0)
	assert.Nil(t, err, "create failed")

	// the seller vetoes every incoming credit
	funds.SetGuard(seller, func(from account.Address) error {
		return fault.ErrStrayDeposit
	})

	mustDeposit(t, bidder, 1000000)

	// the sale still completes
	err = auction.Bid(bidder, id, big.NewInt(1000000))
	assert.Nil(t, err, "bid failed")

	owner, _ := ledger.OwnerOf(id)
	assert.Equal(t, bidder, owner, "asset not delivered")

	// the forfeited proceeds joined the engine's cut
	assert.Zero(t, funds.Balance(seller).Sign(), "refusing seller was paid")
	assert.Equal(t, big.NewInt(1000000), funds.Balance(custody), "forfeited proceeds lost")
}

func TestCancelRoundTrip(t *testing.T) {
	setup(t)
	defer teardown()

	id := mustCreateAsset(t, seller)
	err := auction.Create(seller, id, big.NewInt(1000), big.NewInt(0), 86400)
	assert.Nil(t, err, "create failed")

	// only the seller cancels
	err = auction.Cancel(outsider, id)
	assert.Equal(t, fault.ErrNotAuctionSeller, err, "non-seller cancel accepted")

	err = auction.Cancel(seller, id)
	assert.Nil(t, err, "cancel failed")

	// ownership restored, listing gone
	owner, _ := ledger.OwnerOf(id)
	assert.Equal(t, seller, owner, "asset not returned")
	_, err = auction.Get(id)
	assert.Equal(t, fault.ErrAuctionNotFound, err, "cancelled listing survived")

	err = auction.Cancel(seller, id)
	assert.Equal(t, fault.ErrAuctionNotFound, err, "double cancel accepted")
}

func TestCancelWhenPaused(t *testing.T) {
	setup(t)
	defer teardown()

	id := mustCreateAsset(t, seller)
	err := auction.Create(seller, id, big.NewInt(1000), big.NewInt(0), 86400)
	assert.Nil(t, err, "create failed")

	// the emergency path requires the halt
	err = auction.CancelWhenPaused(admin, id)
	assert.Equal(t, fault.ErrNotPaused, err, "emergency cancel while operating accepted")

	mode.Set(mode.Paused)

	// the ordinary path is gated while paused
	err = auction.Cancel(seller, id)
	assert.Equal(t, fault.ErrPaused, err, "paused cancel accepted")

	// and the emergency path is administrator only
	err = auction.CancelWhenPaused(seller, id)
	assert.Equal(t, fault.ErrNotAdministrator, err, "non-administrator emergency cancel accepted")

	err = auction.CancelWhenPaused(admin, id)
	assert.Nil(t, err, "emergency cancel failed")

	owner, _ := ledger.OwnerOf(id)
	assert.Equal(t, seller, owner, "asset not returned")
}

func TestSampleWindow(t *testing.T) {
	setup(t)
	defer teardown()

	assert.Zero(t, auction.AverageGen0SalePrice().Sign(), "empty window not zero")

	quadrillion := big.NewInt(1000000000000000)
	salePrice := func(n int64) *big.Int {
		return new(big.Int).Mul(big.NewInt(n), quadrillion)
	}

	deposit := new(big.Int).Mul(big.NewInt(1000), quadrillion)
	err := funds.Deposit(bidder, deposit)
	assert.Nil(t, err, "deposit failed")

	// engine-originated sales: the custody address is the seller
	for _, n := range []int64{10, 20, 30, 40, 50} {
		id := mustCreateAsset(t, custody)
		err := auction.Create(custody, id, salePrice(n), salePrice(n), 0)
		assert.Nil(t, err, "create failed")
		err = auction.Bid(bidder, id, salePrice(n))
		assert.Nil(t, err, "bid failed")
	}

	assert.Equal(t, salePrice(30), auction.AverageGen0SalePrice(), "wrong window average")

	// a sixth sale evicts the oldest sample
	id := mustCreateAsset(t, custody)
	err = auction.Create(custody, id, salePrice(60), salePrice(60), 0)
	assert.Nil(t, err, "create failed")
	err = auction.Bid(bidder, id, salePrice(60))
	assert.Nil(t, err, "bid failed")

	assert.Equal(t, salePrice(40), auction.AverageGen0SalePrice(), "wrong average after wrap")

	// an ordinary sale never enters the window
	id = mustCreateAsset(t, seller)
	err = auction.Create(seller, id, salePrice(500), salePrice(500), 0)
	assert.Nil(t, err, "create failed")
	err = auction.Bid(bidder, id, salePrice(500))
	assert.Nil(t, err, "bid failed")

	assert.Equal(t, salePrice(40), auction.AverageGen0SalePrice(), "ordinary sale polluted the window")
}

func TestWithdrawBalance(t *testing.T) {
	clk := setup(t)
	defer teardown()

	// an empty withdrawal is a no-op
	err := auction.WithdrawBalance(beneficiary)
	assert.Nil(t, err, "empty withdrawal failed")

	id := mustCreateAsset(t, seller)
	err = auction.Create(seller, id, big.NewInt(1000000), big.NewInt(0), 86400)
	assert.Nil(t, err, "create failed")
	mustDeposit(t, bidder, 1000000)
	clk.now = genesisTime + 43200
	err = auction.Bid(bidder, id, big.NewInt(500000))
	assert.Nil(t, err, "bid failed")

	// 3.75% of 500000
	assert.Equal(t, big.NewInt(18750), funds.Balance(custody), "wrong engine balance")

	err = auction.WithdrawBalance(outsider)
	assert.Equal(t, fault.ErrNotBeneficiary, err, "outsider withdrawal accepted")

	err = auction.WithdrawBalance(beneficiary)
	assert.Nil(t, err, "withdrawal failed")
	assert.Zero(t, funds.Balance(custody).Sign(), "engine balance not swept")
	assert.Equal(t, big.NewInt(18750), funds.Balance(beneficiary), "beneficiary not paid")

	// the administrator can trigger the sweep too
	mustDeposit(t, custody, 55)
	err = auction.WithdrawBalance(admin)
	assert.Nil(t, err, "administrator withdrawal failed")
	assert.Equal(t, big.NewInt(18805), funds.Balance(beneficiary), "wrong beneficiary balance")
}

// a listing racing an ordinary transfer of the same asset must leave
// exactly one accounted owner: either the escrow won and the transfer
// was refused, or the other way round, never both
func TestConcurrentListingAndTransfer(t *testing.T) {
	setup(t)
	defer teardown()

	id := mustCreateAsset(t, seller)
	buyer := outsider

	const rounds = 200

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i += 1 {
			if err := auction.Create(seller, id, big.NewInt(1000), big.NewInt(0), 86400); nil == err {
				err = auction.Cancel(seller, id)
				assert.Nil(t, err, "cancel failed")
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i += 1 {
			if err := ledger.Transfer(seller, buyer, id); nil == err {
				err = ledger.Transfer(buyer, seller, id)
				assert.Nil(t, err, "return transfer failed")
			}
		}
	}()
	wg.Wait()

	// every round restored the asset, so the seller holds it and the
	// owner counts agree with the ownership scan
	owner, err := ledger.OwnerOf(id)
	assert.Nil(t, err, "asset lost")
	assert.Equal(t, seller, owner, "wrong final owner")
	assert.Equal(t, uint64(1), ledger.BalanceOf(seller), "wrong seller count")
	assert.Zero(t, ledger.BalanceOf(buyer), "buyer count out of step")
	assert.Zero(t, ledger.BalanceOf(custody), "custody count out of step")
	assert.Equal(t, []uint64{id}, ledger.TokensOfOwner(seller), "ownership scan out of step")

	_, err = auction.Get(id)
	assert.Equal(t, fault.ErrAuctionNotFound, err, "stale listing survived")
}
