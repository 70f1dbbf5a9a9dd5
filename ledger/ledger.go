// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/event"
	"github.com/bitmark-inc/auctiond/fault"
	"github.com/bitmark-inc/auctiond/storage"
)

var globalData struct {
	sync.Mutex
	log *logger.L

	// addresses that must never become a final transfer target;
	// assets sent there by the public operations would be stranded
	custody      account.Address
	saleEngine   account.Address
	siringEngine account.Address

	// set once during initialise
	initialised bool
}

// Initialise - open the arena and seed the reserved sentinel
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("ledger")
	globalData.log.Info("starting…")

	globalData.initialised = true

	// an empty arena gets the degenerate id 0 record: no parents, no
	// genes, owned by the null address and never queryable
	if _, found := storage.Pool.Assets.LastElement(); !found {
		globalData.log.Info("seeding sentinel record")
		batch := storage.NewBatch()
		_, messages, err := stageCreate(batch, 0, 0, 0, nil, account.Null)
		if nil != err {
			globalData.initialised = false
			return err
		}
		batch.Commit()
		event.Dispatch(messages...)
	}

	return nil
}

// Finalise - shut down the ledger
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

// SetRestrictedAddresses - record the custodial addresses that the
// public transfer operations must refuse as targets
//
// called by the coordinator during wiring and whenever a collaborator
// address is reconfigured
func SetRestrictedAddresses(custody, saleEngine, siringEngine account.Address) {
	globalData.Lock()
	globalData.custody = custody
	globalData.saleEngine = saleEngine
	globalData.siringEngine = siringEngine
	globalData.Unlock()
}

// TotalSupply - the number of minted assets, excluding the sentinel
func TotalSupply() uint64 {
	last, found := storage.Pool.Assets.LastElement()
	if !found {
		return 0
	}
	return binary.BigEndian.Uint64(last.Key)
}

// BalanceOf - number of assets held by an owner, always succeeds
func BalanceOf(owner account.Address) uint64 {
	n, _ := storage.Pool.OwnerCounts.GetN(owner.Bytes())
	return n
}

// OwnerOf - current owner of an asset
//
// fails for id 0, unminted ids and the sentinel's null owner
func OwnerOf(id uint64) (account.Address, error) {
	owner := ownerOf(id)
	if owner.IsNull() {
		return account.Null, fault.ErrAssetNotFound
	}
	return owner, nil
}

// read the owner slot, null when absent
func ownerOf(id uint64) account.Address {
	var owner account.Address
	buffer := storage.Pool.Owners.Get(assetKey(id))
	if nil != buffer {
		copy(owner[:], buffer)
	}
	return owner
}

// Get - the asset record for an id
func Get(id uint64) (Asset, error) {
	if 0 == id {
		return Asset{}, fault.ErrAssetNotFound
	}
	buffer := storage.Pool.Assets.Get(assetKey(id))
	if nil == buffer {
		return Asset{}, fault.ErrAssetNotFound
	}
	return unpackAsset(buffer), nil
}

// ApprovedTransferee - current transfer approval slot, null when clear
func ApprovedTransferee(id uint64) account.Address {
	var approved account.Address
	buffer := storage.Pool.TransferApprovals.Get(assetKey(id))
	if nil != buffer {
		copy(approved[:], buffer)
	}
	return approved
}

// TokensOfOwner - every asset id held by an owner
//
// this is a full linear scan over all minted ids and is expensive; it
// exists for off-path inspection (the RPC read surface) and must not
// be called from any chained internal operation, because its result
// size is unbounded
func TokensOfOwner(owner account.Address) []uint64 {
	supply := TotalSupply()

	count := BalanceOf(owner)
	result := make([]uint64, 0, count)
	if 0 == count {
		return result
	}

	for id := uint64(1); id <= supply; id += 1 {
		if owner == ownerOf(id) {
			result = append(result, id)
		}
	}
	return result
}
