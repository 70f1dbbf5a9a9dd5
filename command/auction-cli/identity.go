// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/rpc"
)

// identity - a signing account
type identity struct {
	address account.Address
	key     ed25519.PrivateKey
}

// decode a hex private key, either a 32 byte seed or a full 64 byte
// ed25519 private key
func loadIdentity(keyHex string) (*identity, error) {

	b, err := hex.DecodeString(strings.TrimSpace(keyHex))
	if nil != err {
		return nil, fmt.Errorf("key: %s", err)
	}

	var key ed25519.PrivateKey
	switch len(b) {
	case ed25519.SeedSize:
		key = ed25519.NewKeyFromSeed(b)
	case ed25519.PrivateKeySize:
		key = ed25519.PrivateKey(b)
	default:
		return nil, fmt.Errorf("key: invalid length: %d", len(b))
	}

	address, err := account.AddressFromBytes(key.Public().(ed25519.PublicKey))
	if nil != err {
		return nil, err
	}

	return &identity{
		address: address,
		key:     key,
	}, nil
}

// sign a canonical packed message
func (id *identity) sign(packed []byte) rpc.Signed {
	return rpc.Signed{
		Caller:    id.address,
		Signature: account.Signature(ed25519.Sign(id.key, packed)),
	}
}
