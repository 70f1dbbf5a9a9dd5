// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math/big"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/auctiond/account"
)

// open the RPC connection from the global flags
func dialRPC(c *cli.Context) (*client, error) {
	connect := c.GlobalString("connect")
	if "" == connect {
		return nil, fmt.Errorf("connect is not set")
	}
	return newClient(connect, c.GlobalBool("verbose"), os.Stdout)
}

// load the signing identity from the global key flag
func currentIdentity(c *cli.Context) (*identity, error) {
	keyHex := c.GlobalString("key")
	if "" == keyHex {
		return nil, fmt.Errorf("key is not set")
	}
	return loadIdentity(keyHex)
}

// a required Base58 account address flag
func requiredAddress(c *cli.Context, name string) (account.Address, error) {
	addressBase58 := c.String(name)
	if "" == addressBase58 {
		return account.Null, fmt.Errorf("%s is not set", name)
	}
	address, err := account.AddressFromBase58(addressBase58)
	if nil != err {
		return account.Null, fmt.Errorf("%s: %q error: %s", name, addressBase58, err)
	}
	return address, nil
}

// an address flag that may be left blank
func optionalAddress(c *cli.Context, name string) (account.Address, error) {
	if "" == c.String(name) {
		return account.Null, nil
	}
	return requiredAddress(c, name)
}

// a non-negative decimal currency amount flag
func requiredAmount(c *cli.Context, name string) (*big.Int, error) {
	amount := c.String(name)
	if "" == amount {
		return nil, fmt.Errorf("%s is not set", name)
	}
	n, ok := new(big.Int).SetString(amount, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("%s: %q is not a valid amount", name, amount)
	}
	return n, nil
}

// a genome flag, decimal or 0x prefixed hex
func requiredGenes(c *cli.Context, name string) (*big.Int, error) {
	genes := c.String(name)
	if "" == genes {
		return nil, fmt.Errorf("%s is not set", name)
	}
	n, ok := new(big.Int).SetString(genes, 0)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("%s: %q is not a valid genome", name, genes)
	}
	return n, nil
}

// print the final reply as indented json
func output(c *cli.Context, reply interface{}) {
	fmt.Fprintf(c.App.Writer, "%s\n", marshalIndent(reply))
}
