// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
)

// client - to hold the RPC connection stream
type client struct {
	conn    net.Conn
	client  *rpc.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// create a RPC connection to an auctiond
func newClient(connect string, verbose bool, handle io.Writer) (*client, error) {

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
	}

	conn, err := tls.Dial("tcp", connect, tlsConfig)
	if nil != err {
		return nil, err
	}

	c := &client{
		conn:    conn,
		client:  jsonrpc.NewClient(conn),
		verbose: verbose,
		handle:  handle,
	}
	return c, nil
}

// shutdown the auctiond connection
func (c *client) close() {
	c.client.Close()
	c.conn.Close()
}

// perform one call, tracing the request and reply when verbose
func (c *client) call(method string, arguments interface{}, reply interface{}) error {
	c.printJson(method+" request", arguments)
	if err := c.client.Call(method, arguments, reply); nil != err {
		return err
	}
	c.printJson(method+" reply", reply)
	return nil
}

// print a json block with a title
func (c *client) printJson(title string, message interface{}) {
	if !c.verbose {
		return
	}
	fmt.Fprintf(c.handle, "%s:\n%s\n", title, marshalIndent(message))
}

func marshalIndent(message interface{}) []byte {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return []byte(fmt.Sprintf("marshal error: %s", err))
	}
	return b
}
