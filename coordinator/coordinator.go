// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package coordinator - composition root
//
// wires the ledger, auction engine, minting controller and role
// registry together, owns the global pause gate and the one-way
// migration marker, and polices the currency entering its own
// account.  storage and mode must be initialised before this package
package coordinator

import (
	"math/big"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/access"
	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/auction"
	"github.com/bitmark-inc/auctiond/counter"
	"github.com/bitmark-inc/auctiond/event"
	"github.com/bitmark-inc/auctiond/fault"
	"github.com/bitmark-inc/auctiond/funds"
	"github.com/bitmark-inc/auctiond/genes"
	"github.com/bitmark-inc/auctiond/ledger"
	"github.com/bitmark-inc/auctiond/mint"
	"github.com/bitmark-inc/auctiond/mode"
	"github.com/bitmark-inc/auctiond/storage"
)

// Settings - wiring parameters for the whole core
type Settings struct {
	Administrator    account.Address
	Address          account.Address // the coordinator's own account
	AuctionCustody   account.Address // the sale engine's escrow account
	Beneficiary      account.Address // withdrawal target for the engine cut
	SiringEngine     account.Address // external collaborator, may start null
	OwnerCutBps      uint64
	MinimumGen0Price *big.Int
	ObligationFee    *big.Int // reserved per pending obligation
	ReserveMargin    *big.Int // fixed reserve on top
}

// Meta pool keys for the persisted coordinator state
var (
	newAddressKey         = []byte("coordinator-new-address")
	pendingObligationsKey = []byte("coordinator-pending-obligations")
)

var globalData struct {
	sync.Mutex
	log *logger.L

	address       account.Address
	saleEngine    account.Address
	siringEngine  account.Address
	oracle        genes.Oracle
	obligationFee *big.Int
	reserveMargin *big.Int

	pendingObligations counter.Counter

	// set once during initialise
	initialised bool
}

// Initialise - wire the core together
//
// brings up every component in dependency order, registers the stray
// deposit guard and restores the migration marker; the system is left
// paused, an explicit Unpause is always required
func Initialise(settings Settings) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	if settings.Address.IsNull() {
		return fault.ErrNullAddress
	}
	if nil == settings.ObligationFee || nil == settings.ReserveMargin {
		return fault.ErrPriceOutOfRange
	}

	globalData.log = logger.New("coordinator")
	globalData.log.Info("starting…")

	if err := event.Initialise(); nil != err {
		return err
	}
	if err := funds.Initialise(); nil != err {
		return err
	}
	if err := ledger.Initialise(); nil != err {
		return err
	}
	if err := access.Initialise(settings.Administrator); nil != err {
		return err
	}
	if err := auction.Initialise(settings.OwnerCutBps, settings.AuctionCustody, settings.Beneficiary); nil != err {
		return err
	}
	if err := mint.Initialise(settings.MinimumGen0Price); nil != err {
		return err
	}

	globalData.address = settings.Address
	globalData.saleEngine = settings.AuctionCustody
	globalData.siringEngine = settings.SiringEngine
	globalData.obligationFee = new(big.Int).Set(settings.ObligationFee)
	globalData.reserveMargin = new(big.Int).Set(settings.ReserveMargin)

	n, _ := storage.Pool.Meta.GetN(pendingObligationsKey)
	globalData.pendingObligations.Set(n)

	restrictTransferTargets()
	funds.SetGuard(settings.Address, receiveGuard)

	// a marked migration outlives restarts
	if storage.Pool.Meta.Has(newAddressKey) {
		globalData.log.Warn("migration marker present: superseded")
		mode.Set(mode.Superseded)
	}

	globalData.initialised = true
	return nil
}

// Finalise - shut the core down in reverse order
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")

	_ = mint.Finalise()
	_ = auction.Finalise()
	_ = access.Finalise()
	_ = ledger.Finalise()
	_ = funds.Finalise()
	_ = event.Finalise()

	globalData.log.Flush()
	globalData.initialised = false
	return nil
}

// push the current custodial addresses down to the ledger.  must hold
// the lock
func restrictTransferTargets() {
	ledger.SetRestrictedAddresses(globalData.address, globalData.saleEngine, globalData.siringEngine)
}

// the coordinator account accepts currency only from its registered
// engines; anything else is a stray deposit
func receiveGuard(from account.Address) error {
	globalData.Lock()
	defer globalData.Unlock()

	if !from.IsNull() && (from == globalData.saleEngine || from == globalData.siringEngine) {
		return nil
	}
	return fault.ErrStrayDeposit
}

// Pause - halt the public mutating surface
//
// any privileged identity may pull the brake, but only while the
// system is operating
func Pause(caller account.Address) error {
	if err := access.RequirePrivileged(caller); nil != err {
		return err
	}
	if err := mode.RequireOperating(); nil != err {
		return err
	}

	mode.Set(mode.Paused)
	globalData.log.Warnf("paused by: %s", caller)
	return nil
}

// Unpause - resume operating
//
// administrator only, and only from the paused state with every
// collaborator configured; a marked migration makes this permanently
// impossible
func Unpause(caller account.Address) error {
	globalData.Lock()
	defer globalData.Unlock()

	if err := access.RequireAdministrator(caller); nil != err {
		return err
	}
	if mode.Is(mode.Superseded) || storage.Pool.Meta.Has(newAddressKey) {
		return fault.ErrSuperseded
	}
	if mode.IsNot(mode.Paused) {
		return fault.ErrNotPaused
	}
	if globalData.saleEngine.IsNull() || globalData.siringEngine.IsNull() || nil == globalData.oracle {
		return fault.ErrCollaboratorNotConfigured
	}

	mode.Set(mode.Normal)
	globalData.log.Infof("unpaused by: %s", caller)
	return nil
}

// SetSaleEngine - register the sale auction engine collaborator
func SetSaleEngine(caller account.Address, engine account.Address) error {
	if err := access.RequireAdministrator(caller); nil != err {
		return err
	}
	if engine.IsNull() {
		return fault.ErrNullAddress
	}

	globalData.Lock()
	globalData.saleEngine = engine
	restrictTransferTargets()
	globalData.log.Infof("sale engine: %s", engine)
	globalData.Unlock()
	return nil
}

// SetSiringEngine - register the siring auction engine collaborator
func SetSiringEngine(caller account.Address, engine account.Address) error {
	if err := access.RequireAdministrator(caller); nil != err {
		return err
	}
	if engine.IsNull() {
		return fault.ErrNullAddress
	}

	globalData.Lock()
	globalData.siringEngine = engine
	restrictTransferTargets()
	globalData.log.Infof("siring engine: %s", engine)
	globalData.Unlock()
	return nil
}

// SetGeneOracle - register the genetics collaborator
//
// the wiring-time marker check catches a wrong handle before the
// system can be unpaused with it
func SetGeneOracle(caller account.Address, oracle genes.Oracle) error {
	if err := access.RequireAdministrator(caller); nil != err {
		return err
	}
	if nil == oracle || !oracle.IsOracle() {
		return fault.ErrCollaboratorNotConfigured
	}

	globalData.Lock()
	globalData.oracle = oracle
	globalData.log.Info("gene oracle configured")
	globalData.Unlock()
	return nil
}

// SetNewAddress - mark this deployment as superseded
//
// administrator only and only while paused.  the marker is permanent:
// it is persisted, announced on the public log, and from this point
// the system can never be unpaused again
func SetNewAddress(caller account.Address, newAddress account.Address) error {
	storage.Lock()
	defer storage.Unlock()

	globalData.Lock()
	defer globalData.Unlock()

	if err := access.RequireAdministrator(caller); nil != err {
		return err
	}
	if newAddress.IsNull() {
		return fault.ErrNullAddress
	}
	if mode.Is(mode.Superseded) || storage.Pool.Meta.Has(newAddressKey) {
		return fault.ErrSuperseded
	}
	if mode.IsNot(mode.Paused) {
		return fault.ErrNotPaused
	}

	batch := storage.NewBatch()
	batch.Put(storage.Pool.Meta, newAddressKey, newAddress.Bytes())
	seq := event.Append(batch, event.MigrationMarked{NewAddress: newAddress})
	batch.Commit()

	mode.Set(mode.Superseded)
	event.Dispatch(event.Message{Seq: seq, Event: event.MigrationMarked{NewAddress: newAddress}})

	globalData.log.Warnf("superseded by: %s", newAddress)
	return nil
}

// NewAddress - the migration target, if marked
func NewAddress() (account.Address, bool) {
	var a account.Address
	buffer := storage.Pool.Meta.Get(newAddressKey)
	if nil == buffer {
		return a, false
	}
	copy(a[:], buffer)
	return a, true
}

// AddPendingObligation - reserve fee cover for one in-flight asset
//
// called when a fee-bearing operation starts; the sweep keeps enough
// balance back to honour every outstanding obligation
func AddPendingObligation() {
	storage.Lock()
	defer storage.Unlock()

	n := globalData.pendingObligations.Increment()
	storage.Pool.Meta.PutN(pendingObligationsKey, n)
}

// SettlePendingObligation - release one reserved fee cover
func SettlePendingObligation() {
	storage.Lock()
	defer storage.Unlock()

	if globalData.pendingObligations.IsZero() {
		globalData.log.Error("settle: no pending obligation")
		return
	}
	n := globalData.pendingObligations.Decrement()
	storage.Pool.Meta.PutN(pendingObligationsKey, n)
}

// PendingObligations - current in-flight count
func PendingObligations() uint64 {
	return globalData.pendingObligations.Uint64()
}

// SweepBalance - withdraw the coordinator's spare currency
//
// finance controller only; the sweep leaves behind one obligation fee
// per in-flight asset plus the fixed margin
func SweepBalance(caller account.Address) error {
	storage.Lock()
	defer storage.Unlock()

	globalData.Lock()
	defer globalData.Unlock()

	if err := access.RequireFinance(caller); nil != err {
		return err
	}

	reserve := new(big.Int).SetUint64(globalData.pendingObligations.Uint64())
	reserve.Mul(reserve, globalData.obligationFee)
	reserve.Add(reserve, globalData.reserveMargin)

	balance := funds.Balance(globalData.address)
	if balance.Cmp(reserve) <= 0 {
		return fault.ErrInsufficientFunds
	}

	amount := balance.Sub(balance, reserve)

	movement := funds.NewMovement()
	if err := movement.Debit(globalData.address, amount); nil != err {
		return err
	}
	if err := movement.Credit(globalData.address, caller, amount); nil != err {
		return err
	}
	batch := storage.NewBatch()
	movement.Stage(batch)
	batch.Commit()

	globalData.log.Infof("swept: %s to: %s  reserve kept: %s", amount, caller, reserve)
	return nil
}
