// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auction

import (
	"encoding/binary"
	"math/big"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/account"
)

// Auction - one live listing
type Auction struct {
	Seller     account.Address `json:"seller"`
	StartPrice *big.Int        `json:"startPrice"` // 128 bit
	EndPrice   *big.Int        `json:"endPrice"`   // 128 bit
	Duration   int64           `json:"duration"`   // seconds
	StartedAt  int64           `json:"startedAt"`  // unix seconds
}

// field widths of the packed record
const (
	priceBytes         = 16
	packedAuctionBytes = account.AddressSize + 2*priceBytes + 8 + 8
)

// pack - the storage form, prices and times big endian
func (auction Auction) pack() []byte {
	buffer := make([]byte, packedAuctionBytes)

	copy(buffer, auction.Seller.Bytes())

	n := account.AddressSize
	auction.StartPrice.FillBytes(buffer[n : n+priceBytes])
	n += priceBytes
	auction.EndPrice.FillBytes(buffer[n : n+priceBytes])
	n += priceBytes
	binary.BigEndian.PutUint64(buffer[n:], uint64(auction.Duration))
	n += 8
	binary.BigEndian.PutUint64(buffer[n:], uint64(auction.StartedAt))

	return buffer
}

// unpack - reverse of pack, panics on a corrupt record
func unpackAuction(buffer []byte) Auction {
	if packedAuctionBytes != len(buffer) {
		logger.Panicf("auction: corrupt auction record: %x", buffer)
	}

	auction := Auction{}
	copy(auction.Seller[:], buffer[:account.AddressSize])

	n := account.AddressSize
	auction.StartPrice = new(big.Int).SetBytes(buffer[n : n+priceBytes])
	n += priceBytes
	auction.EndPrice = new(big.Int).SetBytes(buffer[n : n+priceBytes])
	n += priceBytes
	auction.Duration = int64(binary.BigEndian.Uint64(buffer[n:]))
	n += 8
	auction.StartedAt = int64(binary.BigEndian.Uint64(buffer[n:]))

	return auction
}

// auctionKey - listing key for an asset id
func auctionKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	return key
}
