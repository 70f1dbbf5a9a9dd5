// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/auctiond/rpc"
)

func runInfo(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	var reply rpc.InfoReply
	if err := client.call("Node.Info", &rpc.InfoArguments{}, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}

func runEvents(c *cli.Context) error {
	client, err := dialRPC(c)
	if nil != err {
		return err
	}
	defer client.close()

	arguments := rpc.EventsArguments{
		Start: c.Uint64("start"),
		Count: c.Int("count"),
	}
	var reply rpc.EventsReply
	if err := client.call("Node.Events", &arguments, &reply); nil != err {
		return err
	}
	output(c, reply)
	return nil
}
