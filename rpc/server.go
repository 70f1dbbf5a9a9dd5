// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/counter"
	"github.com/bitmark-inc/auctiond/genes"
)

// create the server and register all services
func createServer(log *logger.L, version string, rpcCount *counter.Counter, oracle genes.Oracle) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(NewOwner(log))
	_ = server.Register(NewAuction(log))
	_ = server.Register(NewMint(log))
	_ = server.Register(NewAdmin(log, oracle))
	_ = server.Register(NewFunds(log))
	_ = server.Register(NewNode(log, start, version, rpcCount))

	return server
}
