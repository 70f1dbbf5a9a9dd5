// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the asset ownership ledger
//
// assets are held in an append-only arena indexed by a sequential id;
// id 0 is permanently reserved as the "no asset" sentinel and is
// seeded as a degenerate record owned by the null address.  records
// are never deleted, ids never reused and the genetic code never
// changes after creation.
//
// every mutating operation re-validates ownership against the pools at
// the start of its own execution, stages all of its updates into one
// storage batch and commits it atomically; the transfer notification
// is always the final entry of the batch
package ledger
