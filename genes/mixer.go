// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package genes

import (
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/auctiond/fault"
)

// width of a genetic code
const genesBits = 256

// Mixer - a deterministic local genetics oracle
//
// hashes both parent codes together with the seed; a production
// deployment would register an external service instead
type Mixer struct{}

// IsOracle - wiring sanity marker
func (Mixer) IsOracle() bool { return true }

// Mix - combine two parent genetic codes into a child code
func (Mixer) Mix(matron *big.Int, sire *big.Int, seed uint64) (*big.Int, error) {

	if nil == matron || nil == sire {
		return nil, fault.ErrGenesOutOfRange
	}
	if matron.Sign() < 0 || matron.BitLen() > genesBits {
		return nil, fault.ErrGenesOutOfRange
	}
	if sire.Sign() < 0 || sire.BitLen() > genesBits {
		return nil, fault.ErrGenesOutOfRange
	}

	buffer := make([]byte, 2*genesBits/8+8)
	matron.FillBytes(buffer[:genesBits/8])
	sire.FillBytes(buffer[genesBits/8 : 2*genesBits/8])
	binary.BigEndian.PutUint64(buffer[2*genesBits/8:], seed)

	digest := sha3.Sum256(buffer)
	return new(big.Int).SetBytes(digest[:]), nil
}
