// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/coordinator"
	"github.com/bitmark-inc/auctiond/fault"
	"github.com/bitmark-inc/auctiond/ledger"
	"github.com/bitmark-inc/auctiond/metadata"
	"github.com/bitmark-inc/auctiond/mode"
	"github.com/bitmark-inc/auctiond/storage"
)

var (
	core        = testAddress(0xcc)
	custody     = testAddress(0xc0)
	beneficiary = testAddress(0xc9)
	siring      = testAddress(0xc2)
)

// an account with its signing key
type signer struct {
	address account.Address
	key     ed25519.PrivateKey
}

func newSigner(t *testing.T) signer {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	assert.Nil(t, err, "key generation failed")
	address, err := account.AddressFromBytes(publicKey)
	assert.Nil(t, err, "address derivation failed")
	return signer{address: address, key: privateKey}
}

func (s signer) sign(packed []byte) Signed {
	return Signed{
		Caller:    s.address,
		Signature: account.Signature(ed25519.Sign(s.key, packed)),
	}
}

// a stand-in genetics collaborator
type testOracle struct{}

func (testOracle) IsOracle() bool { return true }
func (testOracle) Mix(matron *big.Int, sire *big.Int, seed uint64) (*big.Int, error) {
	return new(big.Int).Xor(matron, sire), nil
}

// a stand-in metadata service
type testResolver struct{}

func (testResolver) Resolve(id uint64) (string, error) {
	return fmt.Sprintf("https://example.com/asset/%d", id), nil
}

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

// bring up the whole core with a key holding administrator and leave
// the system operating
func setup(t *testing.T, admin signer) {
	err := storage.InitialiseMemory()
	assert.Nil(t, err, "storage initialise failed")
	err = mode.Initialise()
	assert.Nil(t, err, "mode initialise failed")
	err = coordinator.Initialise(coordinator.Settings{
		Administrator:    admin.address,
		Address:          core,
		AuctionCustody:   custody,
		Beneficiary:      beneficiary,
		SiringEngine:     siring,
		OwnerCutBps:      375,
		MinimumGen0Price: big.NewInt(10000),
		ObligationFee:    big.NewInt(10),
		ReserveMargin:    big.NewInt(5),
	})
	assert.Nil(t, err, "coordinator initialise failed")
	err = metadata.Initialise(testResolver{})
	assert.Nil(t, err, "metadata initialise failed")

	err = coordinator.SetGeneOracle(admin.address, testOracle{})
	assert.Nil(t, err, "oracle wiring failed")
	err = coordinator.Unpause(admin.address)
	assert.Nil(t, err, "unpause failed")
}

func teardown() {
	_ = metadata.Finalise()
	_ = coordinator.Finalise()
	_ = mode.Finalise()
	storage.Finalise()
}

func TestOwnerService(t *testing.T) {
	admin := newSigner(t)
	setup(t, admin)
	defer teardown()

	alice := newSigner(t)
	bob := newSigner(t)

	id, err := ledger.Create(0, 0, 0, big.NewInt(99), alice.address)
	assert.Nil(t, err, "create failed")

	service := NewOwner(logger.New("test-owner"))

	// a correctly signed transfer
	packed := NewMessage("Owner.Transfer", alice.address).
		Address(bob.address).
		Uint64(id).
		Pack()
	var done DoneReply
	err = service.Transfer(&TransferArguments{
		Signed:  alice.sign(packed),
		To:      bob.address,
		AssetId: id,
	}, &done)
	assert.Nil(t, err, "transfer failed")
	assert.True(t, done.OK, "transfer not confirmed")

	holder, err := ledger.OwnerOf(id)
	assert.Nil(t, err, "owner query failed")
	assert.Equal(t, bob.address, holder, "wrong owner after transfer")

	// a signature for one method must not authorise another
	packed = NewMessage("Owner.Transfer", bob.address).
		Address(alice.address).
		Uint64(id).
		Pack()
	err = service.Approve(&ApproveArguments{
		Signed:  bob.sign(packed),
		To:      alice.address,
		AssetId: id,
	}, &done)
	assert.Equal(t, fault.ErrInvalidSignature, err, "replayed signature accepted")

	// tampered arguments fail verification
	packed = NewMessage("Owner.Transfer", bob.address).
		Address(alice.address).
		Uint64(id).
		Pack()
	signed := bob.sign(packed)
	err = service.Transfer(&TransferArguments{
		Signed:  signed,
		To:      custody, // not what was signed
		AssetId: id,
	}, &done)
	assert.Equal(t, fault.ErrInvalidSignature, err, "tampered arguments accepted")

	// a null caller is never acceptable
	err = service.Transfer(&TransferArguments{
		To:      alice.address,
		AssetId: id,
	}, &done)
	assert.Equal(t, fault.ErrNullAddress, err, "null caller accepted")
}

func TestOwnerReads(t *testing.T) {
	admin := newSigner(t)
	setup(t, admin)
	defer teardown()

	alice := newSigner(t)
	first, err := ledger.Create(0, 0, 0, big.NewInt(1), alice.address)
	assert.Nil(t, err, "create failed")
	second, err := ledger.Create(0, 0, 0, big.NewInt(2), alice.address)
	assert.Nil(t, err, "create failed")

	service := NewOwner(logger.New("test-owner-reads"))

	var balance BalanceOfReply
	err = service.BalanceOf(&BalanceOfArguments{Owner: alice.address}, &balance)
	assert.Nil(t, err, "balance query failed")
	assert.Equal(t, uint64(2), balance.Balance, "wrong balance")

	var holder OwnerOfReply
	err = service.OwnerOf(&OwnerOfArguments{AssetId: first}, &holder)
	assert.Nil(t, err, "owner query failed")
	assert.Equal(t, alice.address, holder.Owner, "wrong owner")

	var supply TotalSupplyReply
	err = service.TotalSupply(&TotalSupplyArguments{}, &supply)
	assert.Nil(t, err, "supply query failed")
	assert.Equal(t, uint64(2), supply.Supply, "wrong supply")

	var tokens TokensOfOwnerReply
	err = service.TokensOfOwner(&TokensOfOwnerArguments{Owner: alice.address}, &tokens)
	assert.Nil(t, err, "token list failed")
	assert.Equal(t, []uint64{first, second}, tokens.AssetIds, "wrong token list")

	var asset GetAssetReply
	err = service.Get(&GetAssetArguments{AssetId: second}, &asset)
	assert.Nil(t, err, "asset query failed")
	assert.Equal(t, alice.address, asset.Owner, "wrong asset owner")
	assert.Equal(t, 0, asset.Asset.Genes.Cmp(big.NewInt(2)), "wrong genes")

	var meta MetadataReply
	err = service.Metadata(&MetadataArguments{AssetId: first}, &meta)
	assert.Nil(t, err, "metadata query failed")
	assert.Equal(t, fmt.Sprintf("https://example.com/asset/%d", first), meta.URI, "wrong metadata uri")

	// the reserved record is never visible
	err = service.OwnerOf(&OwnerOfArguments{AssetId: 0}, &holder)
	assert.Equal(t, fault.ErrAssetNotFound, err, "sentinel visible")
	err = service.Metadata(&MetadataArguments{AssetId: 7777}, &meta)
	assert.Equal(t, fault.ErrAssetNotFound, err, "missing asset resolved")
}

func TestAuctionService(t *testing.T) {
	admin := newSigner(t)
	setup(t, admin)
	defer teardown()

	seller := newSigner(t)
	id, err := ledger.Create(0, 0, 0, big.NewInt(3), seller.address)
	assert.Nil(t, err, "create failed")

	service := NewAuction(logger.New("test-auction"))

	// a flat curve keeps the price time independent
	price := big.NewInt(5000)
	packed := NewMessage("Auction.Create", seller.address).
		Uint64(id).
		Big(price).
		Big(price).
		Uint64(600).
		Pack()
	var done DoneReply
	err = service.Create(&CreateAuctionArguments{
		Signed:     seller.sign(packed),
		AssetId:    id,
		StartPrice: price,
		EndPrice:   price,
		Duration:   600,
	}, &done)
	assert.Nil(t, err, "auction create failed")

	var listing GetAuctionReply
	err = service.Get(&GetAuctionArguments{AssetId: id}, &listing)
	assert.Nil(t, err, "auction query failed")
	assert.Equal(t, seller.address, listing.Auction.Seller, "wrong seller")
	assert.Equal(t, 0, listing.CurrentPrice.Cmp(price), "wrong current price")

	var current CurrentPriceReply
	err = service.CurrentPrice(&CurrentPriceArguments{AssetId: id}, &current)
	assert.Nil(t, err, "price query failed")
	assert.Equal(t, 0, current.Price.Cmp(price), "wrong price")

	var average AveragePriceReply
	err = service.AverageGen0SalePrice(&AveragePriceArguments{}, &average)
	assert.Nil(t, err, "average query failed")
	assert.Zero(t, average.Price.Sign(), "average without sales")

	// only the seller's signature cancels
	packed = NewMessage("Auction.Cancel", seller.address).
		Uint64(id).
		Pack()
	err = service.Cancel(&CancelArguments{
		Signed:  seller.sign(packed),
		AssetId: id,
	}, &done)
	assert.Nil(t, err, "cancel failed")

	holder, err := ledger.OwnerOf(id)
	assert.Nil(t, err, "owner query failed")
	assert.Equal(t, seller.address, holder, "asset not returned")
}

func TestMintService(t *testing.T) {
	admin := newSigner(t)
	setup(t, admin)
	defer teardown()

	service := NewMint(logger.New("test-mint"))

	packed := NewMessage("Mint.CreatePromoAsset", admin.address).
		Big(big.NewInt(12345)).
		Address(account.Null).
		Pack()
	var created CreateAssetReply
	err := service.CreatePromoAsset(&CreatePromoAssetArguments{
		Signed: admin.sign(packed),
		Genes:  big.NewInt(12345),
		Owner:  account.Null,
	}, &created)
	assert.Nil(t, err, "promo create failed")

	holder, err := ledger.OwnerOf(created.AssetId)
	assert.Nil(t, err, "owner query failed")
	assert.Equal(t, admin.address, holder, "promo not owned by administrator")

	// an outsider with a valid signature still fails authorisation
	outsider := newSigner(t)
	packed = NewMessage("Mint.CreatePromoAsset", outsider.address).
		Big(big.NewInt(7)).
		Address(account.Null).
		Pack()
	err = service.CreatePromoAsset(&CreatePromoAssetArguments{
		Signed: outsider.sign(packed),
		Genes:  big.NewInt(7),
		Owner:  account.Null,
	}, &created)
	assert.Equal(t, fault.ErrNotAdministrator, err, "outsider minted")

	var next NextGen0PriceReply
	err = service.NextGen0Price(&NextGen0PriceArguments{}, &next)
	assert.Nil(t, err, "price query failed")
	assert.Equal(t, 0, next.Price.Cmp(big.NewInt(10000)), "wrong floor price")
	assert.Equal(t, uint64(1), next.PromoCount, "wrong promo count")
}

func TestAdminService(t *testing.T) {
	admin := newSigner(t)
	setup(t, admin)
	defer teardown()

	service := NewAdmin(logger.New("test-admin"), testOracle{})

	// pause then resume through the service
	packed := NewMessage("Admin.Pause", admin.address).Pack()
	var done DoneReply
	err := service.Pause(&PauseArguments{Signed: admin.sign(packed)}, &done)
	assert.Nil(t, err, "pause failed")
	assert.True(t, mode.Is(mode.Paused), "not paused")

	packed = NewMessage("Admin.Unpause", admin.address).Pack()
	err = service.Unpause(&PauseArguments{Signed: admin.sign(packed)}, &done)
	assert.Nil(t, err, "unpause failed")
	assert.True(t, mode.Is(mode.Normal), "not operating")

	// appoint the finance controller
	finance := newSigner(t)
	packed = NewMessage("Admin.SetFinanceController", admin.address).
		Address(finance.address).
		Pack()
	err = service.SetFinanceController(&AppointArguments{
		Signed: admin.sign(packed),
		Holder: finance.address,
	}, &done)
	assert.Nil(t, err, "appointment failed")
}

func TestFundsService(t *testing.T) {
	admin := newSigner(t)
	setup(t, admin)
	defer teardown()

	alice := newSigner(t)
	service := NewFunds(logger.New("test-funds"))

	// a null target deposits to the caller
	packed := NewMessage("Funds.Deposit", alice.address).
		Address(account.Null).
		Big(big.NewInt(777)).
		Pack()
	var done DoneReply
	err := service.Deposit(&DepositArguments{
		Signed: alice.sign(packed),
		To:     account.Null,
		Amount: big.NewInt(777),
	}, &done)
	assert.Nil(t, err, "deposit failed")

	var balance FundsBalanceReply
	err = service.Balance(&FundsBalanceArguments{Owner: alice.address}, &balance)
	assert.Nil(t, err, "balance query failed")
	assert.Equal(t, 0, balance.Balance.Cmp(big.NewInt(777)), "wrong balance")

	// the coordinator account only accepts engine credits
	packed = NewMessage("Funds.Deposit", alice.address).
		Address(core).
		Big(big.NewInt(1)).
		Pack()
	err = service.Deposit(&DepositArguments{
		Signed: alice.sign(packed),
		To:     core,
		Amount: big.NewInt(1),
	}, &done)
	assert.Equal(t, fault.ErrStrayDeposit, err, "stray deposit accepted")
}

func TestNodeService(t *testing.T) {
	admin := newSigner(t)
	setup(t, admin)
	defer teardown()

	alice := newSigner(t)
	bob := newSigner(t)
	id, err := ledger.Create(0, 0, 0, big.NewInt(5), alice.address)
	assert.Nil(t, err, "create failed")
	err = ledger.Transfer(alice.address, bob.address, id)
	assert.Nil(t, err, "transfer failed")

	service := NewNode(logger.New("test-node"), time.Now(), "7.7.7", &connectionCountRPC)

	var info InfoReply
	err = service.Info(&InfoArguments{}, &info)
	assert.Nil(t, err, "info failed")
	assert.Equal(t, mode.Normal.String(), info.Mode, "wrong mode")
	assert.Equal(t, uint64(1), info.Supply, "wrong supply")
	assert.Equal(t, "7.7.7", info.Version, "wrong version")

	var events EventsReply
	err = service.Events(&EventsArguments{Start: 1, Count: 10}, &events)
	assert.Nil(t, err, "events failed")
	assert.NotEmpty(t, events.Events, "no events")
	last := events.Events[len(events.Events)-1]
	assert.Equal(t, "transferred", last.Record, "wrong last record")
	assert.Equal(t, last.Seq+1, events.NextStart, "wrong next start")

	// an oversize count is refused
	err = service.Events(&EventsArguments{Start: 1, Count: 1000}, &events)
	assert.Equal(t, fault.ErrInvalidCount, err, "oversize count accepted")
}
