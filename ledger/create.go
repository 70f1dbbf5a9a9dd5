// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"math"
	"math/big"
	"time"

	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/event"
	"github.com/bitmark-inc/auctiond/fault"
	"github.com/bitmark-inc/auctiond/storage"
)

// cooldown index is capped by the lookup table size
const maximumCooldownIndex = 13

// Create - append a new asset to the arena
//
// parent ids must fit 32 bits and the generation 16 bits; the checks
// are explicit because external callers rely on the rejection.  the
// new record is announced first, then handed to the internal transfer
// primitive for delivery to its first owner, all in one batch
func Create(matronId uint64, sireId uint64, generation uint64, genes *big.Int, owner account.Address) (uint64, error) {
	storage.Lock()
	defer storage.Unlock()

	globalData.Lock()
	defer globalData.Unlock()

	batch := storage.NewBatch()
	id, messages, err := stageCreate(batch, matronId, sireId, generation, genes, owner)
	if nil != err {
		return 0, err
	}
	batch.Commit()
	event.Dispatch(messages...)
	return id, nil
}

// StageCreate - stage a new asset into the caller's batch
//
// used by the minting controller so an asset, its listing and the cap
// counter commit as one.  the caller holds the storage operation lock,
// commits the batch and dispatches the returned messages afterwards
func StageCreate(batch *storage.Batch, matronId uint64, sireId uint64, generation uint64, genes *big.Int, owner account.Address) (uint64, []event.Message, error) {
	globalData.Lock()
	defer globalData.Unlock()

	return stageCreate(batch, matronId, sireId, generation, genes, owner)
}

// must hold the lock; also seeds the id 0 sentinel at genesis with
// the degenerate null-to-null delivery
func stageCreate(batch *storage.Batch, matronId uint64, sireId uint64, generation uint64, genes *big.Int, owner account.Address) (uint64, []event.Message, error) {

	if matronId > math.MaxUint32 || sireId > math.MaxUint32 {
		return 0, nil, fault.ErrParentOutOfRange
	}
	if generation > math.MaxUint16 {
		return 0, nil, fault.ErrGenerationOutOfRange
	}
	if nil != genes && (genes.Sign() < 0 || genes.BitLen() > 256) {
		return 0, nil, fault.ErrGenesOutOfRange
	}

	id := uint64(0)
	if last, found := storage.Pool.Assets.LastElement(); found {
		id = binary.BigEndian.Uint64(last.Key) + 1
	}

	// new ids must stay inside the parent id width or the asset could
	// never be referenced as a parent
	if id > math.MaxUint32 {
		return 0, nil, fault.ProcessError("ledger: arena exhausted")
	}

	cooldownIndex := uint16(generation / 2)
	if cooldownIndex > maximumCooldownIndex {
		cooldownIndex = maximumCooldownIndex
	}

	asset := Asset{
		Genes:         genes,
		BirthTime:     time.Now().Unix(),
		CooldownEnd:   0,
		MatronId:      matronId,
		SireId:        sireId,
		SiringWithId:  0,
		CooldownIndex: cooldownIndex,
		Generation:    uint16(generation),
	}

	batch.Put(storage.Pool.Assets, assetKey(id), asset.pack())

	created := event.AssetCreated{
		Owner:    owner,
		AssetId:  id,
		MatronId: matronId,
		SireId:   sireId,
		Genes:    genes,
	}
	createdSeq := event.Append(batch, created)
	transferSeq := transfer(batch, account.Null, owner, id)

	messages := []event.Message{
		{Seq: createdSeq, Event: created},
		{Seq: transferSeq, Event: event.Transferred{From: account.Null, To: owner, AssetId: id}},
	}
	return id, messages, nil
}
