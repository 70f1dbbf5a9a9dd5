// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auction

import (
	"math/big"

	"github.com/bitmark-inc/auctiond/storage"
)

// the sample window holds the last few engine-originated sale prices
const sampleWindowSize = 5

// Meta pool key for the monotonic sample cursor
var sampleCursorKey = []byte("auction-sample-cursor")

// stage one realised price into the circular window
//
// the cursor only ever increases; the slot it selects wraps, so the
// oldest sample is the one overwritten.  staged into the settlement
// batch so a failed settlement records nothing
func stageSample(batch *storage.Batch, price *big.Int) {
	cursor, _ := storage.Pool.Meta.GetN(sampleCursorKey)

	slot := []byte{byte(cursor % sampleWindowSize)}
	sample := make([]byte, priceBytes)
	price.FillBytes(sample)

	batch.Put(storage.Pool.Samples, slot, sample)
	batch.PutN(storage.Pool.Meta, sampleCursorKey, cursor+1)
}

// AverageGen0SalePrice - arithmetic mean of the samples present
//
// zero when no engine-originated sale has completed yet; callers must
// handle that
func AverageGen0SalePrice() *big.Int {
	sum := new(big.Int)
	count := int64(0)

	for slot := 0; slot < sampleWindowSize; slot += 1 {
		buffer := storage.Pool.Samples.Get([]byte{byte(slot)})
		if nil == buffer {
			continue
		}
		sum.Add(sum, new(big.Int).SetBytes(buffer))
		count += 1
	}

	if 0 == count {
		return sum
	}
	return sum.Quo(sum, big.NewInt(count))
}
