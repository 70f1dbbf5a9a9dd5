// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"
)

// the database has exactly one writer at a time: pool reads feeding a
// batch are only valid if nothing commits between the read and the
// write, so every mutating operation holds this lock from its first
// precondition read to its batch commit.  operations therefore execute
// one at a time in a single global order
var serialData struct {
	sync.Mutex
}

// Lock - begin a mutating operation
func Lock() {
	serialData.Lock()
}

// Unlock - end a mutating operation
func Unlock() {
	serialData.Unlock()
}
