// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package genes - the genetics oracle contract
//
// the genetic combination algorithm lives outside this system; the
// coordinator only holds a handle to it and refuses to leave the
// paused state until one is configured.  the ledger stores genetic
// codes as opaque 256 bit values and never interprets them
package genes

import (
	"math/big"
)

// Oracle - the external genetics collaborator
type Oracle interface {
	// IsOracle - sanity marker so a misconfigured collaborator is
	// caught at wiring time rather than first use
	IsOracle() bool

	// Mix - combine two parent genetic codes into a child code; the
	// seed lets the oracle fold in entropy from outside the codes
	Mix(matron *big.Int, sire *big.Int, seed uint64) (*big.Int, error)
}
