// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - client RPC services
//
// exposes the asset ledger, sale engine, minting and administration
// surfaces as JSON net/rpc services over TLS.  read calls are open;
// mutating calls carry the caller address and an ed25519 signature
// over the canonical packed arguments, verified before the core is
// invoked
package rpc
