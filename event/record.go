// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package event

import (
	"encoding/binary"
	"math/big"

	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/fault"
)

// fixed field widths
const (
	genesBytes = 32 // 256 bit genetic code
	priceBytes = 16 // 128 bit price
)

// Pack - asset created record
func (e AssetCreated) Pack() []byte {
	buffer := make([]byte, 0, 1+account.AddressSize+8+8+8+genesBytes)
	buffer = append(buffer, assetCreatedKind)
	buffer = append(buffer, e.Owner.Bytes()...)
	buffer = appendUint64(buffer, e.AssetId)
	buffer = appendUint64(buffer, e.MatronId)
	buffer = appendUint64(buffer, e.SireId)
	genes := make([]byte, genesBytes)
	if nil != e.Genes {
		e.Genes.FillBytes(genes)
	}
	return append(buffer, genes...)
}

// Pack - ownership transferred record
func (e Transferred) Pack() []byte {
	buffer := make([]byte, 0, 1+2*account.AddressSize+8)
	buffer = append(buffer, transferredKind)
	buffer = append(buffer, e.From.Bytes()...)
	buffer = append(buffer, e.To.Bytes()...)
	return appendUint64(buffer, e.AssetId)
}

// Pack - auction settled record
func (e AuctionSettled) Pack() []byte {
	buffer := make([]byte, 0, 1+8+priceBytes+account.AddressSize)
	buffer = append(buffer, auctionSettledKind)
	buffer = appendUint64(buffer, e.AssetId)
	price := make([]byte, priceBytes)
	if nil != e.Price {
		e.Price.FillBytes(price)
	}
	buffer = append(buffer, price...)
	return append(buffer, e.Winner.Bytes()...)
}

// Pack - migration marked record
func (e MigrationMarked) Pack() []byte {
	buffer := make([]byte, 0, 1+account.AddressSize)
	buffer = append(buffer, migrationMarkedKind)
	return append(buffer, e.NewAddress.Bytes()...)
}

func appendUint64(buffer []byte, n uint64) []byte {
	scratch := make([]byte, 8)
	binary.BigEndian.PutUint64(scratch, n)
	return append(buffer, scratch...)
}

// reverse of Pack
func unpack(buffer []byte) (Event, error) {
	if 0 == len(buffer) {
		return nil, fault.ProcessError("event: empty record")
	}

	payload := buffer[1:]
	switch buffer[0] {

	case assetCreatedKind:
		if account.AddressSize+8+8+8+genesBytes != len(payload) {
			break
		}
		var e AssetCreated
		copy(e.Owner[:], payload[:account.AddressSize])
		payload = payload[account.AddressSize:]
		e.AssetId = binary.BigEndian.Uint64(payload[0:8])
		e.MatronId = binary.BigEndian.Uint64(payload[8:16])
		e.SireId = binary.BigEndian.Uint64(payload[16:24])
		e.Genes = new(big.Int).SetBytes(payload[24:])
		return e, nil

	case transferredKind:
		if 2*account.AddressSize+8 != len(payload) {
			break
		}
		var e Transferred
		copy(e.From[:], payload[:account.AddressSize])
		copy(e.To[:], payload[account.AddressSize:2*account.AddressSize])
		e.AssetId = binary.BigEndian.Uint64(payload[2*account.AddressSize:])
		return e, nil

	case auctionSettledKind:
		if 8+priceBytes+account.AddressSize != len(payload) {
			break
		}
		var e AuctionSettled
		e.AssetId = binary.BigEndian.Uint64(payload[0:8])
		e.Price = new(big.Int).SetBytes(payload[8 : 8+priceBytes])
		copy(e.Winner[:], payload[8+priceBytes:])
		return e, nil

	case migrationMarkedKind:
		if account.AddressSize != len(payload) {
			break
		}
		var e MigrationMarked
		copy(e.NewAddress[:], payload)
		return e, nil
	}

	return nil, fault.ProcessError("event: corrupt record")
}
