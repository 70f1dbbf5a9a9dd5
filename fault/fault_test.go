// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/bitmark-inc/auctiond/fault"
)

var (
	ErrAuthorizationOne = fault.AuthorizationError("authorization one")
	ErrAuthorizationTwo = fault.AuthorizationError("authorization two")
	ErrInvalidOne       = fault.InvalidError("invalid one")
	ErrInvalidTwo       = fault.InvalidError("invalid two")
	ErrNotFoundOne      = fault.NotFoundError("not found one")
	ErrNotFoundTwo      = fault.NotFoundError("not found two")
	ErrStateOne         = fault.StateError("state one")
	ErrStateTwo         = fault.StateError("state two")
	ErrProcessOne       = fault.ProcessError("process one")
	ErrProcessTwo       = fault.ProcessError("process two")
)

// test that the various error classes can be distinguished
func TestErrorClasses(t *testing.T) {
	errorList := []struct {
		err           error
		authorization bool
		invalid       bool
		notFound      bool
		state         bool
		process       bool
	}{
		{ErrAuthorizationOne, true, false, false, false, false},
		{ErrAuthorizationTwo, true, false, false, false, false},
		{ErrInvalidOne, false, true, false, false, false},
		{ErrInvalidTwo, false, true, false, false, false},
		{ErrNotFoundOne, false, false, true, false, false},
		{ErrNotFoundTwo, false, false, true, false, false},
		{ErrStateOne, false, false, false, true, false},
		{ErrStateTwo, false, false, false, true, false},
		{ErrProcessOne, false, false, false, false, true},
		{ErrProcessTwo, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		if fault.IsErrAuthorization(err) != e.authorization {
			t.Errorf("%d: expected 'authorization' == %v for err = %v", i, e.authorization, err)
		}
		if fault.IsErrInvalid(err) != e.invalid {
			t.Errorf("%d: expected 'invalid' == %v for err = %v", i, e.invalid, err)
		}
		if fault.IsErrNotFound(err) != e.notFound {
			t.Errorf("%d: expected 'not found' == %v for err = %v", i, e.notFound, err)
		}
		if fault.IsErrState(err) != e.state {
			t.Errorf("%d: expected 'state' == %v for err = %v", i, e.state, err)
		}
		if fault.IsErrProcess(err) != e.process {
			t.Errorf("%d: expected 'process' == %v for err = %v", i, e.process, err)
		}
	}
}

// spot check the shared instances
func TestInstanceClasses(t *testing.T) {
	if !fault.IsErrNotFound(fault.ErrAssetNotFound) {
		t.Errorf("ErrAssetNotFound is not a NotFoundError")
	}
	if !fault.IsErrNotFound(fault.ErrAuctionNotFound) {
		t.Errorf("ErrAuctionNotFound is not a NotFoundError")
	}
	if !fault.IsErrAuthorization(fault.ErrNotAdministrator) {
		t.Errorf("ErrNotAdministrator is not an AuthorizationError")
	}
	if !fault.IsErrInvalid(fault.ErrBidTooLow) {
		t.Errorf("ErrBidTooLow is not an InvalidError")
	}
	if !fault.IsErrState(fault.ErrPaused) {
		t.Errorf("ErrPaused is not a StateError")
	}
	if !fault.IsErrProcess(fault.ErrAverageOutOfRange) {
		t.Errorf("ErrAverageOutOfRange is not a ProcessError")
	}
}
