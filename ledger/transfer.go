// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/event"
	"github.com/bitmark-inc/auctiond/fault"
	"github.com/bitmark-inc/auctiond/mode"
	"github.com/bitmark-inc/auctiond/storage"
)

// Approve - set the transfer approval slot for an asset
//
// only the owner may approve; the slot is overwritten, a null target
// clears it.  approvals are intentionally silent: escrow setup grants
// them constantly and a public notification for each would be noise
func Approve(caller account.Address, id uint64, to account.Address) error {
	storage.Lock()
	defer storage.Unlock()

	globalData.Lock()
	defer globalData.Unlock()

	if err := mode.RequireOperating(); nil != err {
		return err
	}

	if caller != ownerOf(id) || caller.IsNull() {
		return fault.ErrNotAssetOwner
	}

	if to.IsNull() {
		storage.Pool.TransferApprovals.Delete(assetKey(id))
	} else {
		storage.Pool.TransferApprovals.Put(assetKey(id), to.Bytes())
	}
	return nil
}

// ApproveSiring - set the siring approval slot for an asset
//
// the reproduction life-cycle consuming this slot is handled by an
// external collaborator; the ledger only maintains the slot and
// clears it on transfer
func ApproveSiring(caller account.Address, id uint64, to account.Address) error {
	storage.Lock()
	defer storage.Unlock()

	globalData.Lock()
	defer globalData.Unlock()

	if err := mode.RequireOperating(); nil != err {
		return err
	}

	if caller != ownerOf(id) || caller.IsNull() {
		return fault.ErrNotAssetOwner
	}

	if to.IsNull() {
		storage.Pool.SiringApprovals.Delete(assetKey(id))
	} else {
		storage.Pool.SiringApprovals.Put(assetKey(id), to.Bytes())
	}
	return nil
}

// Transfer - move an asset owned by the caller
func Transfer(caller account.Address, to account.Address, id uint64) error {
	storage.Lock()
	defer storage.Unlock()

	globalData.Lock()
	defer globalData.Unlock()

	if err := mode.RequireOperating(); nil != err {
		return err
	}

	if err := checkTarget(to); nil != err {
		return err
	}

	owner := ownerOf(id)
	if caller != owner || caller.IsNull() {
		return fault.ErrNotAssetOwner
	}
	if to == owner {
		return fault.ErrSelfTransfer
	}

	commitTransfer(owner, to, id)
	return nil
}

// TransferFrom - move an asset on behalf of an approved transferee
func TransferFrom(caller account.Address, from account.Address, to account.Address, id uint64) error {
	storage.Lock()
	defer storage.Unlock()

	globalData.Lock()
	defer globalData.Unlock()

	if err := mode.RequireOperating(); nil != err {
		return err
	}

	if err := checkTarget(to); nil != err {
		return err
	}

	if caller != ApprovedTransferee(id) || caller.IsNull() {
		return fault.ErrNotApprovedTransferee
	}
	if from != ownerOf(id) || from.IsNull() {
		return fault.ErrNotAssetOwner
	}

	commitTransfer(from, to, id)
	return nil
}

// StageEscrowTransfer - privileged transfer used by the auction engine
//
// bypasses the approval gate since the engine itself becomes (or
// releases) custody; the target restrictions do not apply because the
// custodial addresses are exactly where escrowed assets live.  the
// transfer is staged into the caller's batch so an escrow and its
// settlement commit together; the caller must Dispatch the returned
// notification after its batch commits
func StageEscrowTransfer(batch *storage.Batch, from account.Address, to account.Address, id uint64) (uint64, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if from != ownerOf(id) || from.IsNull() {
		return 0, fault.ErrNotAssetOwner
	}

	return transfer(batch, from, to, id), nil
}

// public transfer targets that would strand an asset
func checkTarget(to account.Address) error {
	if to.IsNull() {
		return fault.ErrNullAddress
	}
	if to == globalData.custody || to == globalData.saleEngine || to == globalData.siringEngine {
		return fault.ErrReservedAddress
	}
	return nil
}

// build, commit and announce a single transfer
//
// must hold the lock
func commitTransfer(from account.Address, to account.Address, id uint64) {
	batch := storage.NewBatch()
	seq := transfer(batch, from, to, id)
	batch.Commit()
	event.Dispatch(event.Message{Seq: seq, Event: event.Transferred{From: from, To: to, AssetId: id}})
}

// the internal transfer primitive
//
// stages: increment count[to]; set owner; for a non-null source
// decrement its count and clear both approval slots; the notification
// is staged last, after all mapping updates.  must hold the lock
func transfer(batch *storage.Batch, from account.Address, to account.Address, id uint64) uint64 {
	key := assetKey(id)

	// counts cancel out when custody re-escrows to itself
	if from != to {
		toCount, _ := storage.Pool.OwnerCounts.GetN(to.Bytes())
		batch.PutN(storage.Pool.OwnerCounts, to.Bytes(), toCount+1)

		if !from.IsNull() {
			fromCount, ok := storage.Pool.OwnerCounts.GetN(from.Bytes())
			if !ok || 0 == fromCount {
				// the from owner was validated, so this is corruption
				globalData.log.Criticalf("transfer: count underflow for: %s", from)
				panic("ledger: OwnerCounts database corrupt")
			}
			batch.PutN(storage.Pool.OwnerCounts, from.Bytes(), fromCount-1)
		}
	}

	batch.Put(storage.Pool.Owners, key, to.Bytes())

	if !from.IsNull() {
		batch.Delete(storage.Pool.TransferApprovals, key)
		batch.Delete(storage.Pool.SiringApprovals, key)
	}

	return event.Append(batch, event.Transferred{From: from, To: to, AssetId: id})
}
