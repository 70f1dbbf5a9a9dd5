// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package metadata - descriptive asset metadata
//
// the descriptive documents for assets live on an external service
// reached through a Resolver; this package only memoises the answers
// so the RPC read surface does not hammer the service.  entries
// expire, the resolver is always the source of truth
package metadata

import (
	"strconv"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/fault"
)

// Resolver - fetch the metadata URI for an asset id
type Resolver interface {
	Resolve(id uint64) (string, error)
}

const (
	defaultExpiration = 10 * time.Minute
	cleanupInterval   = 15 * time.Minute
)

var globalData struct {
	sync.Mutex
	log      *logger.L
	resolver Resolver
	cache    *cache.Cache

	// set once during initialise
	initialised bool
}

// Initialise - attach the external resolver
func Initialise(resolver Resolver) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("metadata")
	globalData.log.Info("starting…")

	globalData.resolver = resolver
	globalData.cache = cache.New(defaultExpiration, cleanupInterval)

	globalData.initialised = true
	return nil
}

// Finalise - detach the resolver
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.cache.Flush()
	globalData.initialised = false
	return nil
}

// Get - metadata URI for an asset id, memoised
//
// only successful answers are cached; a failing resolver is retried
// on the next call
func Get(id uint64) (string, error) {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised || nil == globalData.resolver {
		return "", fault.ErrNotInitialised
	}

	key := strconv.FormatUint(id, 10)
	if uri, found := globalData.cache.Get(key); found {
		return uri.(string), nil
	}

	uri, err := globalData.resolver.Resolve(id)
	if nil != err {
		return "", err
	}

	globalData.cache.Set(key, uri, cache.DefaultExpiration)
	return uri, nil
}
