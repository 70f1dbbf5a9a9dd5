// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package auction

// SetClock - substitute the engine's time source for the price curve
// tests; returns a restore function
func SetClock(now func() int64) func() {
	saved := clock
	clock = now
	return func() { clock = saved }
}
