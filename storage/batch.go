// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/logger"
)

// Batch - a set of pool updates committed as one atomic write
//
// a mutating operation validates all of its preconditions first, then
// stages every update into a single batch; an abandoned batch leaves
// the database untouched
type Batch struct {
	batch leveldb.Batch
}

// NewBatch - create an empty batch
func NewBatch() *Batch {
	return &Batch{}
}

// Put - stage a key/value pair for a pool
func (b *Batch) Put(p *PoolHandle, key []byte, value []byte) {
	b.batch.Put(p.prefixKey(key), value)
}

// PutN - stage a uint64 as an 8 byte big endian record
func (b *Batch) PutN(p *PoolHandle, key []byte, n uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	b.Put(p, key, buffer)
}

// Delete - stage a key removal for a pool
func (b *Batch) Delete(p *PoolHandle, key []byte) {
	b.batch.Delete(p.prefixKey(key))
}

// Commit - apply the staged updates in one atomic write
//
// a commit failure indicates a broken database and is fatal, matching
// the single-writer panic policy of the pool handles
func (b *Batch) Commit() {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == poolData.db {
		logger.Panic("batch.Commit nil database")
		return
	}
	err := poolData.db.Write(&b.batch, nil)
	logger.PanicIfError("batch.Commit", err)
}
