// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package access - role registry
//
// three privileged roles: the administrator is fixed at genesis and
// can never change; the finance and operations controllers start
// unassigned and are appointed by the administrator.  role holders are
// persisted in the Meta pool so a restart keeps the appointments
package access

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/fault"
	"github.com/bitmark-inc/auctiond/storage"
)

// Meta pool keys for the persisted role holders
var (
	administratorKey        = []byte("role-administrator")
	financeControllerKey    = []byte("role-finance-controller")
	operationsControllerKey = []byte("role-operations-controller")
)

var globalData struct {
	sync.RWMutex
	log *logger.L

	administrator        account.Address
	financeController    account.Address
	operationsController account.Address

	// set once during initialise
	initialised bool
}

// Initialise - load or fix the role holders
//
// the administrator given here only takes effect on a fresh database;
// an existing database keeps its genesis administrator and the
// argument is ignored
func Initialise(administrator account.Address) error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	if administrator.IsNull() {
		return fault.ErrNullAddress
	}

	globalData.log = logger.New("access")
	globalData.log.Info("starting…")

	if buffer := storage.Pool.Meta.Get(administratorKey); nil != buffer {
		stored, err := account.AddressFromBytes(buffer)
		if nil != err {
			return err
		}
		globalData.administrator = stored
		if stored != administrator {
			globalData.log.Warnf("genesis administrator retained: %s", stored)
		}
	} else {
		storage.Pool.Meta.Put(administratorKey, administrator.Bytes())
		globalData.administrator = administrator
	}

	globalData.financeController = loadRole(financeControllerKey)
	globalData.operationsController = loadRole(operationsControllerKey)

	globalData.initialised = true
	return nil
}

// Finalise - shut down the registry
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.initialised = false
	return nil
}

func loadRole(key []byte) account.Address {
	var holder account.Address
	if buffer := storage.Pool.Meta.Get(key); nil != buffer {
		copy(holder[:], buffer)
	}
	return holder
}

// Administrator - the fixed genesis administrator
func Administrator() account.Address {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.administrator
}

// FinanceController - current finance controller, null if unassigned
func FinanceController() account.Address {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.financeController
}

// OperationsController - current operations controller, null if unassigned
func OperationsController() account.Address {
	globalData.RLock()
	defer globalData.RUnlock()
	return globalData.operationsController
}

// SetFinanceController - appoint the finance controller
//
// administrator only; the role can be reassigned but never cleared, so
// a null appointee is refused
func SetFinanceController(caller account.Address, holder account.Address) error {
	if err := RequireAdministrator(caller); nil != err {
		return err
	}
	if holder.IsNull() {
		return fault.ErrNullAddress
	}

	globalData.Lock()
	storage.Pool.Meta.Put(financeControllerKey, holder.Bytes())
	globalData.financeController = holder
	globalData.log.Infof("finance controller: %s", holder)
	globalData.Unlock()
	return nil
}

// SetOperationsController - appoint the operations controller
//
// administrator only; a null appointee is refused
func SetOperationsController(caller account.Address, holder account.Address) error {
	if err := RequireAdministrator(caller); nil != err {
		return err
	}
	if holder.IsNull() {
		return fault.ErrNullAddress
	}

	globalData.Lock()
	storage.Pool.Meta.Put(operationsControllerKey, holder.Bytes())
	globalData.operationsController = holder
	globalData.log.Infof("operations controller: %s", holder)
	globalData.Unlock()
	return nil
}

// RequireAdministrator - guard for administrator-only operations
func RequireAdministrator(caller account.Address) error {
	globalData.RLock()
	defer globalData.RUnlock()
	if caller.IsNull() || caller != globalData.administrator {
		return fault.ErrNotAdministrator
	}
	return nil
}

// RequireFinance - guard for finance operations
func RequireFinance(caller account.Address) error {
	globalData.RLock()
	defer globalData.RUnlock()
	if caller.IsNull() || caller != globalData.financeController {
		return fault.ErrNotFinanceController
	}
	return nil
}

// RequireOperations - guard for operations-controller operations
func RequireOperations(caller account.Address) error {
	globalData.RLock()
	defer globalData.RUnlock()
	if caller.IsNull() || caller != globalData.operationsController {
		return fault.ErrNotOperationsController
	}
	return nil
}

// RequirePrivileged - guard for operations any role holder may invoke
func RequirePrivileged(caller account.Address) error {
	globalData.RLock()
	defer globalData.RUnlock()
	if caller.IsNull() {
		return fault.ErrNotPrivileged
	}
	if caller == globalData.administrator ||
		caller == globalData.financeController ||
		caller == globalData.operationsController {
		return nil
	}
	return fault.ErrNotPrivileged
}
