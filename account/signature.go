// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/hex"

	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/auctiond/fault"
)

// Signature - raw signature bytes
type Signature []byte

// CheckSignature - verify an ed25519 signature made by the private
// half of this address
func (address Address) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(ed25519.PublicKey(address[:]), message, []byte(signature)) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// MarshalText - hex encoding for the RPC layer
func (signature Signature) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(signature))
	buffer := make([]byte, size)
	hex.Encode(buffer, signature)
	return buffer, nil
}

// UnmarshalText - hex decoding for the RPC layer
func (signature *Signature) UnmarshalText(s []byte) error {
	sg := make([]byte, hex.DecodedLen(len(s)))
	_, err := hex.Decode(sg, s)
	if nil != err {
		return err
	}
	*signature = sg
	return nil
}
