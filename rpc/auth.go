// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/binary"
	"math/big"

	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/fault"
)

// Signed - common fields carried by every mutating call
//
// the signature covers the canonical packed arguments of the call, so
// a captured request cannot be replayed against a different method or
// with altered arguments
type Signed struct {
	Caller    account.Address   `json:"caller"`    // base58
	Signature account.Signature `json:"signature"` // hex
}

// verify the signature over the canonical packed arguments
func (s Signed) verify(packed []byte) error {
	if s.Caller.IsNull() {
		return fault.ErrNullAddress
	}
	return s.Caller.CheckSignature(packed, s.Signature)
}

// DoneReply - result of a mutating call that returns no data
type DoneReply struct {
	OK bool `json:"ok"`
}

// canonical argument packing
//
// the method name, the caller address, then each argument in
// declaration order: addresses as raw 32 bytes, integers as big
// endian 64 bit, big integers as a sign byte followed by a 16 bit
// length and the magnitude bytes
type Message struct {
	buffer []byte
}

func NewMessage(method string, caller account.Address) *Message {
	m := &Message{buffer: make([]byte, 0, 128)}
	m.buffer = append(m.buffer, method...)
	m.buffer = append(m.buffer, caller.Bytes()...)
	return m
}

func (m *Message) Address(a account.Address) *Message {
	m.buffer = append(m.buffer, a.Bytes()...)
	return m
}

func (m *Message) Uint64(n uint64) *Message {
	scratch := make([]byte, 8)
	binary.BigEndian.PutUint64(scratch, n)
	m.buffer = append(m.buffer, scratch...)
	return m
}

func (m *Message) Big(n *big.Int) *Message {
	sign := byte(0)
	var magnitude []byte
	if nil != n {
		if n.Sign() < 0 {
			sign = 1
		}
		magnitude = n.Bytes()
	}
	scratch := make([]byte, 2)
	binary.BigEndian.PutUint16(scratch, uint16(len(magnitude)))
	m.buffer = append(m.buffer, sign)
	m.buffer = append(m.buffer, scratch...)
	m.buffer = append(m.buffer, magnitude...)
	return m
}

func (m *Message) Pack() []byte {
	return m.buffer
}
