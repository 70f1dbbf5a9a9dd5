// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package auction - declining price auction engine
//
// a listed asset is escrowed to the engine's custody address and its
// auction entry records the price curve: a straight line from start
// price to end price over the duration, then flat at the end price
// forever.  the first sufficient bid wins at the current curve price,
// the excess never leaves the bidder.
//
// the realised price is split by the configured owner cut (basis
// points): the cut accrues to the engine's balance for later
// withdrawal, the remainder is paid to the seller immediately.  a
// seller refusing the payment forfeits it to the engine balance; the
// asset still changes hands.  this ordering means a hostile seller
// cannot wedge a settlement.
//
// sales listed by the custody address itself are the minting
// controller's gen0 auctions; their realised prices feed a five sample
// window used to derive the next gen0 starting price
package auction
