// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/coordinator"
	"github.com/bitmark-inc/auctiond/counter"
	"github.com/bitmark-inc/auctiond/event"
	"github.com/bitmark-inc/auctiond/ledger"
	"github.com/bitmark-inc/auctiond/mint"
	"github.com/bitmark-inc/auctiond/mode"
)

// Node - diagnostic surface for the RPC
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	counter *counter.Counter
}

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// limit for event fetch count
const maximumEventCount = 100

// NewNode - create the diagnostic service
func NewNode(log *logger.L, start time.Time, version string, connectionCount *counter.Counter) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		counter: connectionCount,
	}
}

// Info
// ----

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Mode               string `json:"mode"`
	Supply             uint64 `json:"supply"`
	PromoCreated       uint64 `json:"promoCreated"`
	Gen0Created        uint64 `json:"gen0Created"`
	PendingObligations uint64 `json:"pendingObligations"`
	RPCs               uint64 `json:"rpcs"`
	Version            string `json:"version"`
	Uptime             string `json:"uptime"`
}

// Info - return some information about this node
// only enough for clients to determine node state
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := rateLimit(node.Limiter); nil != err {
		return err
	}

	reply.Mode = mode.String()
	reply.Supply = ledger.TotalSupply()
	reply.PromoCreated = mint.PromoCreatedCount()
	reply.Gen0Created = mint.Gen0CreatedCount()
	reply.PendingObligations = coordinator.PendingObligations()
	reply.RPCs = node.counter.Uint64()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}

// Events
// ------

// EventsArguments - arguments for RPC
type EventsArguments struct {
	Start uint64 `json:"start,string"` // first sequence number
	Count int    `json:"count"`        // number of records
}

// EventRecord - one committed notification
type EventRecord struct {
	Seq    uint64      `json:"seq,string"`
	Record string      `json:"record"`
	Data   event.Event `json:"data"`
}

// EventsReply - result of the polling read
type EventsReply struct {
	Events    []EventRecord `json:"events"`
	NextStart uint64        `json:"nextStart,string"`
}

// Events - polling read of the committed notification log
func (node *Node) Events(arguments *EventsArguments, reply *EventsReply) error {

	if err := rateLimitN(node.Limiter, arguments.Count, maximumEventCount); nil != err {
		return err
	}

	messages, err := event.Fetch(arguments.Start, arguments.Count)
	if nil != err {
		return err
	}

	records := make([]EventRecord, len(messages))
	next := uint64(0)
	for i, m := range messages {
		records[i] = EventRecord{
			Seq:    m.Seq,
			Record: recordName(m.Event),
			Data:   m.Event,
		}
		next = m.Seq + 1
	}

	reply.Events = records
	reply.NextStart = next
	return nil
}

// client facing name of a notification record
func recordName(e event.Event) string {
	switch e.(type) {
	case event.AssetCreated:
		return "assetCreated"
	case event.Transferred:
		return "transferred"
	case event.AuctionSettled:
		return "auctionSettled"
	case event.MigrationMarked:
		return "migrationMarked"
	default:
		return "unknown"
	}
}
