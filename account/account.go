// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - actor identities
//
// An address is an ed25519 public key.  The text form is Base58 of a
// key-variant byte, the key bytes and a truncated SHA3-256 checksum.
// The zero value is the null address reserved for "no owner".
package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/auctiond/fault"
)

// AddressSize - length of the binary address (an ed25519 public key)
const AddressSize = 32

// miscellaneous constants
const (
	checksumLength = 4

	// key variant byte, LSB set marks a public key
	publicKeyCode = 0x01
)

// Address - the identity of an actor
//
// the zero value is the null address
type Address [AddressSize]byte

// Null - the reserved null address
var Null Address

// AddressFromBytes - create an address from raw public key bytes
func AddressFromBytes(publicKey []byte) (Address, error) {
	var address Address
	if AddressSize != len(publicKey) {
		return address, fault.ErrInvalidKeyLength
	}
	copy(address[:], publicKey)
	return address, nil
}

// AddressFromBase58 - this converts a Base58 encoded string and
// returns an address
func AddressFromBase58(addressBase58Encoded string) (Address, error) {
	var address Address

	addressDecoded, err := base58.Decode(addressBase58Encoded)
	if nil != err {
		return address, fault.ErrCannotDecodeAddress
	}

	if 1+AddressSize+checksumLength != len(addressDecoded) {
		return address, fault.ErrCannotDecodeAddress
	}

	if publicKeyCode != addressDecoded[0]&publicKeyCode {
		return address, fault.ErrCannotDecodeAddress
	}

	checksumStart := len(addressDecoded) - checksumLength
	checksum := sha3.Sum256(addressDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], addressDecoded[checksumStart:]) {
		return address, fault.ErrChecksumMismatch
	}

	copy(address[:], addressDecoded[1:checksumStart])
	return address, nil
}

// IsNull - check for the reserved null address
func (address Address) IsNull() bool {
	return Null == address
}

// Bytes - raw public key bytes
func (address Address) Bytes() []byte {
	return address[:]
}

// String - base58 encoded address with checksum
func (address Address) String() string {
	buffer := make([]byte, 0, 1+AddressSize+checksumLength)
	buffer = append(buffer, publicKeyCode)
	buffer = append(buffer, address[:]...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// MarshalText - for JSON in the RPC layer
func (address Address) MarshalText() ([]byte, error) {
	return []byte(address.String()), nil
}

// UnmarshalText - for JSON in the RPC layer
func (address *Address) UnmarshalText(s []byte) error {
	a, err := AddressFromBase58(string(s))
	if nil != err {
		return err
	}
	*address = a
	return nil
}
