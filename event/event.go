// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package event - the append-only public notification log
//
// notifications are staged into the same storage batch as the state
// change that causes them, so the log and the state can never
// disagree; committed notifications are also pushed onto a buffered
// channel for live broadcasting
package event

import (
	"encoding/binary"
	"math/big"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/fault"
	"github.com/bitmark-inc/auctiond/storage"
)

// internal constants
const (
	queueSize = 1000
)

// record kinds
const (
	assetCreatedKind byte = iota + 1
	transferredKind
	auctionSettledKind
	migrationMarkedKind
)

// Event - one notification record
type Event interface {
	// Pack - the storage form: kind byte followed by fixed width fields
	Pack() []byte
}

// AssetCreated - a new asset entered the arena
type AssetCreated struct {
	Owner    account.Address `json:"owner"`
	AssetId  uint64          `json:"assetId"`
	MatronId uint64          `json:"matronId"`
	SireId   uint64          `json:"sireId"`
	Genes    *big.Int        `json:"genes"`
}

// Transferred - ownership of an asset moved
type Transferred struct {
	From    account.Address `json:"from"`
	To      account.Address `json:"to"`
	AssetId uint64          `json:"assetId"`
}

// AuctionSettled - an auction completed at the realised price
type AuctionSettled struct {
	AssetId uint64          `json:"assetId"`
	Price   *big.Int        `json:"price"`
	Winner  account.Address `json:"winner"`
}

// MigrationMarked - the one-way deprecation marker was set
type MigrationMarked struct {
	NewAddress account.Address `json:"newAddress"`
}

// Message - a committed notification with its sequence number
type Message struct {
	Seq   uint64
	Event Event
}

var globalData struct {
	sync.Mutex
	log     *logger.L
	queue   chan Message
	nextSeq uint64

	// set once during initialise
	initialised bool
}

// Initialise - recover the next sequence number from the log
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("event")
	globalData.log.Info("starting…")

	globalData.queue = make(chan Message, queueSize)

	globalData.nextSeq = 1
	if last, found := storage.Pool.Events.LastElement(); found {
		globalData.nextSeq = binary.BigEndian.Uint64(last.Key) + 1
	}

	globalData.initialised = true
	return nil
}

// Finalise - shut down the log
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false
	return nil
}

// Append - stage a notification into a storage batch
//
// the sequence number is consumed even if the batch is later
// abandoned; sequence numbers are strictly increasing, not dense
func Append(batch *storage.Batch, e Event) uint64 {
	globalData.Lock()
	seq := globalData.nextSeq
	globalData.nextSeq += 1
	globalData.Unlock()

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	batch.Put(storage.Pool.Events, key, e.Pack())
	return seq
}

// Dispatch - push committed notifications to the live channel
//
// call only after the batch holding the records has committed; a full
// queue drops the live copy, the durable log is unaffected
func Dispatch(messages ...Message) {
	for _, m := range messages {
		select {
		case globalData.queue <- m:
		default:
			globalData.log.Warnf("queue full: dropped live copy of event %d", m.Seq)
		}
	}
}

// Chan - channel of committed notifications for broadcasting
func Chan() <-chan Message {
	return globalData.queue
}

// Fetch - read back committed notifications starting at a sequence number
func Fetch(start uint64, count int) ([]Message, error) {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, start)

	elements, err := storage.Pool.Events.Fetch(key, count)
	if nil != err {
		return nil, err
	}

	messages := make([]Message, 0, len(elements))
	for _, element := range elements {
		e, err := unpack(element.Value)
		if nil != err {
			return nil, err
		}
		messages = append(messages, Message{
			Seq:   binary.BigEndian.Uint64(element.Key),
			Event: e,
		})
	}
	return messages, nil
}
