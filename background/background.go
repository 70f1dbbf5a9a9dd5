// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package background - run a set of background processes with a
// single combined shutdown
package background

import (
	"sync"
)

// Process - type signature for a background process
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start
type Processes []Process

// T - handle for the stop operation
type T struct {
	sync.WaitGroup
	finish chan struct{}
}

// Start - start up a set of background processes
//
// all processes share the args value and the shutdown channel
func Start(processes Processes, args interface{}) *T {

	register := &T{
		finish: make(chan struct{}),
	}

	for _, p := range processes {
		register.Add(1)
		go func(p Process) {
			defer register.Done()
			p.Run(args, register.finish)
		}(p)
	}

	return register
}

// Stop - stop the background processes and wait until all are
// finished
func (t *T) Stop() {
	if nil == t {
		return
	}
	close(t.finish)
	t.Wait()
}
