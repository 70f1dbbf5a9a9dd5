// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches
package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	// AuthorizationError - wrong role, non-owner or non-approved caller
	AuthorizationError GenericError

	// InvalidError - malformed or out-of-range argument
	InvalidError GenericError

	// NotFoundError - query against a nonexistent item
	NotFoundError GenericError

	// StateError - operation attempted in the wrong system state
	StateError GenericError

	// ProcessError - internal consistency failure
	ProcessError GenericError
)

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised           = StateError("already initialised")
	ErrAssetNotFound                = NotFoundError("asset does not exist")
	ErrAuctionNotFound              = NotFoundError("auction does not exist")
	ErrAverageOutOfRange            = ProcessError("sample average exceeds price range")
	ErrBidTooLow                    = InvalidError("bid amount is below current price")
	ErrCannotDecodeAddress          = InvalidError("address cannot be decoded")
	ErrCertificateFileAlreadyExists = InvalidError("certificate file already exists")
	ErrChecksumMismatch             = InvalidError("checksum mismatch")
	ErrCollaboratorNotConfigured    = StateError("collaborator address is not configured")
	ErrDurationOutOfRange           = InvalidError("duration does not fit 64 bits")
	ErrGen0CapReached               = InvalidError("gen0 creation cap reached")
	ErrGenesOutOfRange              = InvalidError("genetic code does not fit 256 bits")
	ErrGenerationOutOfRange         = InvalidError("generation does not fit 16 bits")
	ErrInsufficientFunds            = InvalidError("insufficient funds")
	ErrInvalidCount                 = InvalidError("invalid count")
	ErrInvalidIPAddress             = InvalidError("invalid ip address")
	ErrInvalidKeyLength             = InvalidError("key length is invalid")
	ErrInvalidOwnerCut              = InvalidError("owner cut exceeds 10000 basis points")
	ErrInvalidSignature             = InvalidError("invalid signature")
	ErrInvalidStructPointer         = InvalidError("invalid struct pointer")
	ErrKeyFileAlreadyExists         = InvalidError("key file already exists")
	ErrMissingParameters            = InvalidError("missing parameters")
	ErrNotAdministrator             = AuthorizationError("caller is not the administrator")
	ErrNotApprovedTransferee        = AuthorizationError("caller is not approved for this asset")
	ErrNotAssetOwner                = AuthorizationError("caller does not own this asset")
	ErrNotAuctionSeller             = AuthorizationError("caller is not the auction seller")
	ErrNotBeneficiary               = AuthorizationError("caller is not the withdrawal beneficiary")
	ErrNotFinanceController         = AuthorizationError("caller is not the finance controller")
	ErrNotInitialised               = StateError("not initialised")
	ErrNotOperationsController      = AuthorizationError("caller is not the operations controller")
	ErrNotPaused                    = StateError("system is not paused")
	ErrNotPrivileged                = AuthorizationError("caller holds no privileged role")
	ErrNullAddress                  = InvalidError("null address is not allowed")
	ErrParentOutOfRange             = InvalidError("parent identifier does not fit 32 bits")
	ErrPaused                       = StateError("system is paused")
	ErrPriceOutOfRange              = InvalidError("price does not fit 128 bits")
	ErrPromoCapReached              = InvalidError("promotional creation cap reached")
	ErrRateLimiting                 = ProcessError("rate limiting active")
	ErrReservedAddress              = InvalidError("custodial address is not a valid transfer target")
	ErrSelfTransfer                 = InvalidError("transfer to current owner")
	ErrStrayDeposit                 = InvalidError("deposit from unregistered source")
	ErrSuperseded                   = StateError("system has been superseded")
)

// Error - the error interface base method
func (e GenericError) Error() string { return string(e) }

// Error - the error interface methods
func (e AuthorizationError) Error() string { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e StateError) Error() string         { return string(e) }
func (e ProcessError) Error() string       { return string(e) }

// IsErrAuthorization - determine the class of an error
func IsErrAuthorization(e error) bool { _, ok := e.(AuthorizationError); return ok }

// IsErrInvalid - check for invalid argument class
func IsErrInvalid(e error) bool { _, ok := e.(InvalidError); return ok }

// IsErrNotFound - check for not found class
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }

// IsErrState - check for wrong state class
func IsErrState(e error) bool { _, ok := e.(StateError); return ok }

// IsErrProcess - check for internal consistency class
func IsErrProcess(e error) bool { _, ok := e.(ProcessError); return ok }
