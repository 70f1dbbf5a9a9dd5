// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math/big"

	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/configuration"
	"github.com/bitmark-inc/auctiond/coordinator"
)

// build the coordinator wiring from the parsed configuration file
func coordinatorSettings(conf *configuration.Configuration) (coordinator.Settings, error) {

	settings := coordinator.Settings{
		OwnerCutBps: uint64(conf.Auction.OwnerCutBps),
	}

	var err error
	if settings.Administrator, err = parseAddress("coordinator.administrator", conf.Coordinator.Administrator); nil != err {
		return settings, err
	}
	if settings.Address, err = parseAddress("coordinator.address", conf.Coordinator.Address); nil != err {
		return settings, err
	}
	if settings.AuctionCustody, err = parseAddress("auction.custody", conf.Auction.Custody); nil != err {
		return settings, err
	}
	if settings.Beneficiary, err = parseAddress("auction.beneficiary", conf.Auction.Beneficiary); nil != err {
		return settings, err
	}

	// the siring engine may be appointed later while paused
	if settings.SiringEngine, err = optionalAddress("coordinator.siring_engine", conf.Coordinator.SiringEngine); nil != err {
		return settings, err
	}

	if settings.MinimumGen0Price, err = parseAmount("mint.minimum_gen0_price", conf.Mint.MinimumGen0Price); nil != err {
		return settings, err
	}
	if settings.ObligationFee, err = parseAmount("coordinator.obligation_fee", conf.Coordinator.ObligationFee); nil != err {
		return settings, err
	}
	if settings.ReserveMargin, err = parseAmount("coordinator.reserve_margin", conf.Coordinator.ReserveMargin); nil != err {
		return settings, err
	}

	return settings, nil
}

// a required Base58 account address
func parseAddress(name string, addressBase58 string) (account.Address, error) {
	if "" == addressBase58 {
		return account.Null, fmt.Errorf("%s is not set", name)
	}
	address, err := account.AddressFromBase58(addressBase58)
	if nil != err {
		return account.Null, fmt.Errorf("%s: %q error: %s", name, addressBase58, err)
	}
	return address, nil
}

// an address that may be left blank
func optionalAddress(name string, addressBase58 string) (account.Address, error) {
	if "" == addressBase58 {
		return account.Null, nil
	}
	return parseAddress(name, addressBase58)
}

// a non-negative decimal currency amount, blank meaning zero
func parseAmount(name string, amount string) (*big.Int, error) {
	if "" == amount {
		return big.NewInt(0), nil
	}
	n, ok := new(big.Int).SetString(amount, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("%s: %q is not a valid amount", name, amount)
	}
	return n, nil
}
