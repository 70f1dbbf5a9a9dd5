// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/access"
	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/coordinator"
	"github.com/bitmark-inc/auctiond/genes"
)

// Admin - privileged coordinator surface for the RPC
//
// the gene oracle implementation comes from the daemon configuration;
// SetGeneOracle attaches it, the coordinator refuses to resume until
// one is attached
type Admin struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Oracle  genes.Oracle
}

const (
	rateLimitAdmin = 50
	rateBurstAdmin = 25
)

// NewAdmin - create the administration service
func NewAdmin(log *logger.L, oracle genes.Oracle) *Admin {
	return &Admin{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitAdmin, rateBurstAdmin),
		Oracle:  oracle,
	}
}

// AppointArguments - arguments for the role appointment RPCs
type AppointArguments struct {
	Signed
	Holder account.Address `json:"holder"` // base58
}

// SetFinanceController - appoint the finance controller
func (admin *Admin) SetFinanceController(arguments *AppointArguments, reply *DoneReply) error {
	if err := rateLimit(admin.Limiter); nil != err {
		return err
	}

	admin.Log.Infof("Admin.SetFinanceController: %+v", arguments)

	packed := NewMessage("Admin.SetFinanceController", arguments.Caller).
		Address(arguments.Holder).
		Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	if err := access.SetFinanceController(arguments.Caller, arguments.Holder); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// SetOperationsController - appoint the operations controller
func (admin *Admin) SetOperationsController(arguments *AppointArguments, reply *DoneReply) error {
	if err := rateLimit(admin.Limiter); nil != err {
		return err
	}

	admin.Log.Infof("Admin.SetOperationsController: %+v", arguments)

	packed := NewMessage("Admin.SetOperationsController", arguments.Caller).
		Address(arguments.Holder).
		Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	if err := access.SetOperationsController(arguments.Caller, arguments.Holder); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// PauseArguments - arguments for the pause and unpause RPCs
type PauseArguments struct {
	Signed
}

// Pause - any privileged role halts the public surface
func (admin *Admin) Pause(arguments *PauseArguments, reply *DoneReply) error {
	if err := rateLimit(admin.Limiter); nil != err {
		return err
	}

	admin.Log.Infof("Admin.Pause: %+v", arguments)

	packed := NewMessage("Admin.Pause", arguments.Caller).Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	if err := coordinator.Pause(arguments.Caller); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// Unpause - administrator resumes the public surface
func (admin *Admin) Unpause(arguments *PauseArguments, reply *DoneReply) error {
	if err := rateLimit(admin.Limiter); nil != err {
		return err
	}

	admin.Log.Infof("Admin.Unpause: %+v", arguments)

	packed := NewMessage("Admin.Unpause", arguments.Caller).Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	if err := coordinator.Unpause(arguments.Caller); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// EngineArguments - arguments for the collaborator appointment RPCs
type EngineArguments struct {
	Signed
	Engine account.Address `json:"engine"` // base58
}

// SetSaleEngine - register the sale engine collaborator
func (admin *Admin) SetSaleEngine(arguments *EngineArguments, reply *DoneReply) error {
	if err := rateLimit(admin.Limiter); nil != err {
		return err
	}

	admin.Log.Infof("Admin.SetSaleEngine: %+v", arguments)

	packed := NewMessage("Admin.SetSaleEngine", arguments.Caller).
		Address(arguments.Engine).
		Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	if err := coordinator.SetSaleEngine(arguments.Caller, arguments.Engine); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// SetSiringEngine - register the siring engine collaborator
func (admin *Admin) SetSiringEngine(arguments *EngineArguments, reply *DoneReply) error {
	if err := rateLimit(admin.Limiter); nil != err {
		return err
	}

	admin.Log.Infof("Admin.SetSiringEngine: %+v", arguments)

	packed := NewMessage("Admin.SetSiringEngine", arguments.Caller).
		Address(arguments.Engine).
		Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	if err := coordinator.SetSiringEngine(arguments.Caller, arguments.Engine); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// SetGeneOracle - attach the configured gene oracle
func (admin *Admin) SetGeneOracle(arguments *PauseArguments, reply *DoneReply) error {
	if err := rateLimit(admin.Limiter); nil != err {
		return err
	}

	admin.Log.Infof("Admin.SetGeneOracle: %+v", arguments)

	packed := NewMessage("Admin.SetGeneOracle", arguments.Caller).Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	if err := coordinator.SetGeneOracle(arguments.Caller, admin.Oracle); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// SetNewAddressArguments - arguments for RPC
type SetNewAddressArguments struct {
	Signed
	NewAddress account.Address `json:"newAddress"` // base58
}

// SetNewAddress - mark this deployment as superseded, permanently
func (admin *Admin) SetNewAddress(arguments *SetNewAddressArguments, reply *DoneReply) error {
	if err := rateLimit(admin.Limiter); nil != err {
		return err
	}

	admin.Log.Infof("Admin.SetNewAddress: %+v", arguments)

	packed := NewMessage("Admin.SetNewAddress", arguments.Caller).
		Address(arguments.NewAddress).
		Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	if err := coordinator.SetNewAddress(arguments.Caller, arguments.NewAddress); nil != err {
		return err
	}
	reply.OK = true
	return nil
}

// SweepArguments - arguments for RPC
type SweepArguments struct {
	Signed
}

// SweepBalance - finance controller collects the unreserved balance
func (admin *Admin) SweepBalance(arguments *SweepArguments, reply *DoneReply) error {
	if err := rateLimit(admin.Limiter); nil != err {
		return err
	}

	admin.Log.Infof("Admin.SweepBalance: %+v", arguments)

	packed := NewMessage("Admin.SweepBalance", arguments.Caller).Pack()
	if err := arguments.verify(packed); nil != err {
		return err
	}

	if err := coordinator.SweepBalance(arguments.Caller); nil != err {
		return err
	}
	reply.OK = true
	return nil
}
