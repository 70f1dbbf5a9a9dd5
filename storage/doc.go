// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintains a single LevelDB database with a series of prefixed
// key spaces ("pools"):
//
//	asset arena:
//	  Assets            A<id>      - packed asset record, append only, id 0 reserved
//	ownership:
//	  Owners            O<id>      - owner address
//	  OwnerCounts       N<address> - count of assets held
//	  TransferApprovals T<id>      - approved transferee
//	  SiringApprovals   S<id>      - approved siring partner
//	auction engine:
//	  Auctions          U<id>      - packed active auction record
//	  Samples           P<index>   - recent engine-originated sale prices
//	currency:
//	  Balances          F<address> - currency balance
//	notifications:
//	  Events            E<seq>     - packed notification record, append only
//	miscellaneous:
//	  Meta              M<name>    - counters, role addresses, collaborator slots
//
// every mutating operation of the ledger, the auction engine and the
// coordinator assembles exactly one batch and commits it atomically;
// a failed precondition abandons the batch leaving the database
// untouched
package storage
