// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mode - global operating mode
//
// the system starts Paused and stays that way until the coordinator
// verifies its collaborators and unpauses it; Superseded is terminal
// and marks a migration to a replacement deployment
package mode

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/fault"
)

// Mode - type to hold the mode
type Mode int

// all possible modes
const (
	Paused Mode = iota
	Normal
	Superseded
	maximum
)

var globalData struct {
	sync.RWMutex
	log  *logger.L
	mode Mode

	// set once during initialise
	initialised bool
}

// Initialise - set up the mode system
//
// the system always starts paused
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("mode")
	globalData.log.Info("starting…")

	globalData.mode = Paused

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - shutdown mode handling
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	// finally...
	globalData.initialised = false

	return nil
}

// Set - change mode
//
// Superseded is terminal: once set no further transition is accepted
func Set(mode Mode) {

	globalData.Lock()
	defer globalData.Unlock()

	if mode < Paused || mode >= maximum {
		globalData.log.Errorf("ignore invalid set: %d", mode)
		return
	}

	if Superseded == globalData.mode {
		globalData.log.Errorf("ignore set: %s after supersession", mode)
		return
	}

	globalData.mode = mode
	globalData.log.Infof("set: %s", mode)
}

// Is - detect mode
func Is(mode Mode) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return mode == globalData.mode
}

// IsNot - detect mode
func IsNot(mode Mode) bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return mode != globalData.mode
}

// IsOperating - true only in Normal mode
//
// Paused and Superseded both gate the mutating operations
func IsOperating() bool {
	globalData.RLock()
	defer globalData.RUnlock()
	return Normal == globalData.mode
}

// RequireOperating - guard for operations gated by the pause flag
//
// nil only in Normal mode; the error names which halted state blocked
// the call
func RequireOperating() error {
	globalData.RLock()
	defer globalData.RUnlock()
	switch globalData.mode {
	case Normal:
		return nil
	case Superseded:
		return fault.ErrSuperseded
	default:
		return fault.ErrPaused
	}
}

// String - current mode represented as a string
func String() string {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.mode.String()
}

// String - a mode represented as a string
func (m Mode) String() string {
	switch m {
	case Paused:
		return "Paused"
	case Normal:
		return "Normal"
	case Superseded:
		return "Superseded"
	default:
		return "*Unknown*"
	}
}
