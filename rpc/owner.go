// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/ledger"
	"github.com/bitmark-inc/auctiond/metadata"
)

// Owner - ledger surface for the RPC
type Owner struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

const (
	rateLimitOwner = 200
	rateBurstOwner = 100
)

// NewOwner - create the ledger service
func NewOwner(log *logger.L) *Owner {
	return &Owner{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitOwner, rateBurstOwner),
	}
}

// BalanceOf
// ---------

// BalanceOfArguments - arguments for RPC
type BalanceOfArguments struct {
	Owner account.Address `json:"owner"` // base58
}

// BalanceOfReply - count of assets held
type BalanceOfReply struct {
	Balance uint64 `json:"balance"`
}

// BalanceOf - number of assets held by an account
func (owner *Owner) BalanceOf(arguments *BalanceOfArguments, reply *BalanceOfReply) error {
	if err := rateLimit(owner.Limiter); nil != err {
		return err
	}
	reply.Balance = ledger.BalanceOf(arguments.Owner)
	return nil
}

// OwnerOf
// -------

// OwnerOfArguments - arguments for RPC
type OwnerOfArguments struct {
	AssetId uint64 `json:"assetId"`
}

// OwnerOfReply - current holder of an asset
type OwnerOfReply struct {
	Owner account.Address `json:"owner"`
}

// OwnerOf - current owner of an asset
func (owner *Owner) OwnerOf(arguments *OwnerOfArguments, reply *OwnerOfReply) error {
	if err := rateLimit(owner.Limiter); nil != err {
		return err
	}
	holder, err := ledger.OwnerOf(arguments.AssetId)
	if nil != err {
		return err
	}
	reply.Owner = holder
	return nil
}

// TotalSupply
// -----------

// TotalSupplyArguments - empty arguments
type TotalSupplyArguments struct{}

// TotalSupplyReply - count of assets ever created
type TotalSupplyReply struct {
	Supply uint64 `json:"supply"`
}

// TotalSupply - number of assets created, the reserved record excluded
func (owner *Owner) TotalSupply(_ *TotalSupplyArguments, reply *TotalSupplyReply) error {
	if err := rateLimit(owner.Limiter); nil != err {
		return err
	}
	reply.Supply = ledger.TotalSupply()
	return nil
}

// Get
// ---

// GetAssetArguments - arguments for RPC
type GetAssetArguments struct {
	AssetId uint64 `json:"assetId"`
}

// GetAssetReply - the full asset record
type GetAssetReply struct {
	Asset ledger.Asset    `json:"asset"`
	Owner account.Address `json:"owner"`
}

// Get - full record of an asset
func (owner *Owner) Get(arguments *GetAssetArguments, reply *GetAssetReply) error {
	if err := rateLimit(owner.Limiter); nil != err {
		return err
	}
	asset, err := ledger.Get(arguments.AssetId)
	if nil != err {
		return err
	}
	holder, err := ledger.OwnerOf(arguments.AssetId)
	if nil != err {
		return err
	}
	reply.Asset = asset
	reply.Owner = holder
	return nil
}

// TokensOfOwner
// -------------

// TokensOfOwnerArguments - arguments for RPC
type TokensOfOwnerArguments struct {
	Owner account.Address `json:"owner"` // base58
}

// TokensOfOwnerReply - all asset ids held by an account
type TokensOfOwnerReply struct {
	AssetIds []uint64 `json:"assetIds"`
}

// TokensOfOwner - every asset id held by an account
//
// walks the whole arena, intended for occasional client use only
func (owner *Owner) TokensOfOwner(arguments *TokensOfOwnerArguments, reply *TokensOfOwnerReply) error {
	if err := rateLimitN(owner.Limiter, 10, 10); nil != err {
		return err
	}
	reply.AssetIds = ledger.TokensOfOwner(arguments.Owner)
	return nil
}

// Metadata
// --------

// MetadataArguments - arguments for RPC
type MetadataArguments struct {
	AssetId uint64 `json:"assetId"`
}

// MetadataReply - the descriptive document location
type MetadataReply struct {
	URI string `json:"uri"`
}

// Metadata - descriptive document URI for an asset
func (owner *Owner) Metadata(arguments *MetadataArguments, reply *MetadataReply) error {
	if err := rateLimit(owner.Limiter); nil != err {
		return err
	}

	// refuse before asking the resolver about a nonexistent asset
	if _, err := ledger.Get(arguments.AssetId); nil != err {
		return err
	}

	uri, err := metadata.Get(arguments.AssetId)
	if nil != err {
		return err
	}
	reply.URI = uri
	return nil
}

// Transfer
// --------

// TransferArguments - arguments for RPC
type TransferArguments struct {
	Signed
	To      account.Address `json:"to"` // base58
	AssetId uint64          `json:"assetId"`
}

// Transfer - move an owned asset to another account
func (owner *Owner) Transfer(arguments *TransferArguments, reply *DoneReply) error {
	if err := rateLimit(owner.Limiter); nil != err {
		return err
	}

	owner.Log.Infof("Owner.Transfer: %+v", arguments)

	packed := NewMessage("Owner.Transfer", arguments.Caller).
		Address(arguments.To).
		Uint64(arguments.AssetId).
		Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	if err := ledger.Transfer(arguments.Caller, arguments.To, arguments.AssetId); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// Approve
// -------

// ApproveArguments - arguments for RPC
type ApproveArguments struct {
	Signed
	To      account.Address `json:"to"` // base58
	AssetId uint64          `json:"assetId"`
}

// Approve - grant another account the right to take an asset
func (owner *Owner) Approve(arguments *ApproveArguments, reply *DoneReply) error {
	if err := rateLimit(owner.Limiter); nil != err {
		return err
	}

	owner.Log.Infof("Owner.Approve: %+v", arguments)

	packed := NewMessage("Owner.Approve", arguments.Caller).
		Address(arguments.To).
		Uint64(arguments.AssetId).
		Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	if err := ledger.Approve(arguments.Caller, arguments.AssetId, arguments.To); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// ApproveSiring
// -------------

// ApproveSiringArguments - arguments for RPC
type ApproveSiringArguments struct {
	Signed
	To      account.Address `json:"to"` // base58
	AssetId uint64          `json:"assetId"`
}

// ApproveSiring - grant another account the right to sire with an asset
func (owner *Owner) ApproveSiring(arguments *ApproveSiringArguments, reply *DoneReply) error {
	if err := rateLimit(owner.Limiter); nil != err {
		return err
	}

	owner.Log.Infof("Owner.ApproveSiring: %+v", arguments)

	packed := NewMessage("Owner.ApproveSiring", arguments.Caller).
		Address(arguments.To).
		Uint64(arguments.AssetId).
		Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	if err := ledger.ApproveSiring(arguments.Caller, arguments.AssetId, arguments.To); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// TransferFrom
// ------------

// TransferFromArguments - arguments for RPC
type TransferFromArguments struct {
	Signed
	From    account.Address `json:"from"` // base58
	To      account.Address `json:"to"`   // base58
	AssetId uint64          `json:"assetId"`
}

// TransferFrom - take a previously approved asset
func (owner *Owner) TransferFrom(arguments *TransferFromArguments, reply *DoneReply) error {
	if err := rateLimit(owner.Limiter); nil != err {
		return err
	}

	owner.Log.Infof("Owner.TransferFrom: %+v", arguments)

	packed := NewMessage("Owner.TransferFrom", arguments.Caller).
		Address(arguments.From).
		Address(arguments.To).
		Uint64(arguments.AssetId).
		Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	if err := ledger.TransferFrom(arguments.Caller, arguments.From, arguments.To, arguments.AssetId); nil != err {
		return err
	}
	reply.OK = true
	return nil
}
