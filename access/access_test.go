// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package access_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/auctiond/access"
	"github.com/bitmark-inc/auctiond/account"
	"github.com/bitmark-inc/auctiond/fault"
	"github.com/bitmark-inc/auctiond/storage"
)

var (
	admin      = testAddress(1)
	finance    = testAddress(2)
	operations = testAddress(3)
	outsider   = testAddress(4)
)

func TestMain(m *testing.M) {
	curPath := os.Getenv("PWD")
	testDir := curPath + "/testing"
	_ = os.MkdirAll(testDir, 0700)
	logging := logger.Configuration{
		Directory: testDir,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	if err := logger.Initialise(logging); nil != err {
		panic("logger setup failed: " + err.Error())
	}
	rc := m.Run()
	logger.Finalise()
	_ = os.RemoveAll(testDir)
	os.Exit(rc)
}

func testAddress(fill byte) account.Address {
	var a account.Address
	for i := 0; i < len(a); i += 1 {
		a[i] = fill
	}
	return a
}

func setup(t *testing.T) {
	err := storage.InitialiseMemory()
	assert.Nil(t, err, "storage initialise failed")
	err = access.Initialise(admin)
	assert.Nil(t, err, "access initialise failed")
}

func teardown() {
	_ = access.Finalise()
	storage.Finalise()
}

func TestGenesisRoles(t *testing.T) {
	setup(t)
	defer teardown()

	assert.Equal(t, admin, access.Administrator(), "wrong administrator")
	assert.True(t, access.FinanceController().IsNull(), "finance assigned at genesis")
	assert.True(t, access.OperationsController().IsNull(), "operations assigned at genesis")

	assert.Nil(t, access.RequireAdministrator(admin), "administrator refused")
	assert.Equal(t, fault.ErrNotAdministrator, access.RequireAdministrator(outsider), "outsider accepted")
	assert.Equal(t, fault.ErrNotAdministrator, access.RequireAdministrator(account.Null), "null accepted")

	// unassigned roles refuse everyone
	assert.Equal(t, fault.ErrNotFinanceController, access.RequireFinance(admin), "admin is not finance")
	assert.Equal(t, fault.ErrNotOperationsController, access.RequireOperations(admin), "admin is not operations")
}

func TestAppointments(t *testing.T) {
	setup(t)
	defer teardown()

	// only the administrator appoints
	err := access.SetFinanceController(outsider, finance)
	assert.Equal(t, fault.ErrNotAdministrator, err, "outsider appointment accepted")

	// null appointee refused
	err = access.SetFinanceController(admin, account.Null)
	assert.Equal(t, fault.ErrNullAddress, err, "null appointee accepted")

	err = access.SetFinanceController(admin, finance)
	assert.Nil(t, err, "finance appointment failed")
	err = access.SetOperationsController(admin, operations)
	assert.Nil(t, err, "operations appointment failed")

	assert.Nil(t, access.RequireFinance(finance), "finance refused")
	assert.Nil(t, access.RequireOperations(operations), "operations refused")
	assert.Equal(t, fault.ErrNotFinanceController, access.RequireFinance(operations), "wrong role accepted")

	// reassignment is allowed
	err = access.SetFinanceController(admin, outsider)
	assert.Nil(t, err, "reassignment failed")
	assert.Equal(t, fault.ErrNotFinanceController, access.RequireFinance(finance), "old holder retained")
	assert.Nil(t, access.RequireFinance(outsider), "new holder refused")
}

func TestPrivileged(t *testing.T) {
	setup(t)
	defer teardown()

	_ = access.SetFinanceController(admin, finance)
	_ = access.SetOperationsController(admin, operations)

	assert.Nil(t, access.RequirePrivileged(admin), "administrator refused")
	assert.Nil(t, access.RequirePrivileged(finance), "finance refused")
	assert.Nil(t, access.RequirePrivileged(operations), "operations refused")
	assert.Equal(t, fault.ErrNotPrivileged, access.RequirePrivileged(outsider), "outsider accepted")
	assert.Equal(t, fault.ErrNotPrivileged, access.RequirePrivileged(account.Null), "null accepted")
}

func TestPersistence(t *testing.T) {
	setup(t)

	_ = access.SetFinanceController(admin, finance)
	_ = access.SetOperationsController(admin, operations)

	// restart keeps the roles, even with a different argument
	_ = access.Finalise()
	err := access.Initialise(outsider)
	assert.Nil(t, err, "restart failed")
	defer teardown()

	assert.Equal(t, admin, access.Administrator(), "genesis administrator lost")
	assert.Equal(t, finance, access.FinanceController(), "finance appointment lost")
	assert.Equal(t, operations, access.OperationsController(), "operations appointment lost")
}
