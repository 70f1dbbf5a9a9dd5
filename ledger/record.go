// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"encoding/binary"
	"math/big"

	"github.com/bitmark-inc/logger"
)

// Asset - one record of the append-only arena
//
// the genetic code is opaque to this ledger; the cooldown fields are
// maintained for the reproduction life-cycle which is handled by an
// external collaborator
type Asset struct {
	Genes         *big.Int `json:"genes"`         // opaque 256 bit genetic code
	BirthTime     int64    `json:"birthTime"`     // unix seconds
	CooldownEnd   int64    `json:"cooldownEnd"`   // unix seconds, 0 = ready
	MatronId      uint64   `json:"matronId"`      // 0 = none
	SireId        uint64   `json:"sireId"`        // 0 = none
	SiringWithId  uint64   `json:"siringWithId"`  // 0 = not paired
	CooldownIndex uint16   `json:"cooldownIndex"` // 0..13
	Generation    uint16   `json:"generation"`    // 0 for root-minted assets
}

// field widths of the packed record
const (
	genesBytes       = 32
	packedAssetBytes = genesBytes + 8 + 8 + 4 + 4 + 4 + 2 + 2
)

// pack - the storage form, all fields big endian
func (asset Asset) pack() []byte {
	buffer := make([]byte, packedAssetBytes)

	genes := asset.Genes
	if nil == genes {
		genes = new(big.Int)
	}
	genes.FillBytes(buffer[:genesBytes])

	n := genesBytes
	binary.BigEndian.PutUint64(buffer[n:], uint64(asset.BirthTime))
	n += 8
	binary.BigEndian.PutUint64(buffer[n:], uint64(asset.CooldownEnd))
	n += 8
	binary.BigEndian.PutUint32(buffer[n:], uint32(asset.MatronId))
	n += 4
	binary.BigEndian.PutUint32(buffer[n:], uint32(asset.SireId))
	n += 4
	binary.BigEndian.PutUint32(buffer[n:], uint32(asset.SiringWithId))
	n += 4
	binary.BigEndian.PutUint16(buffer[n:], asset.CooldownIndex)
	n += 2
	binary.BigEndian.PutUint16(buffer[n:], asset.Generation)

	return buffer
}

// unpack - reverse of pack, panics on a corrupt arena
func unpackAsset(buffer []byte) Asset {
	if packedAssetBytes != len(buffer) {
		logger.Panicf("ledger: corrupt asset record: %x", buffer)
	}

	asset := Asset{
		Genes: new(big.Int).SetBytes(buffer[:genesBytes]),
	}

	n := genesBytes
	asset.BirthTime = int64(binary.BigEndian.Uint64(buffer[n:]))
	n += 8
	asset.CooldownEnd = int64(binary.BigEndian.Uint64(buffer[n:]))
	n += 8
	asset.MatronId = uint64(binary.BigEndian.Uint32(buffer[n:]))
	n += 4
	asset.SireId = uint64(binary.BigEndian.Uint32(buffer[n:]))
	n += 4
	asset.SiringWithId = uint64(binary.BigEndian.Uint32(buffer[n:]))
	n += 4
	asset.CooldownIndex = binary.BigEndian.Uint16(buffer[n:])
	n += 2
	asset.Generation = binary.BigEndian.Uint16(buffer[n:])

	return asset
}

// assetKey - arena key for an id
func assetKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}
