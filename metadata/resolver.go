// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package metadata

import (
	"fmt"

	"github.com/bitmark-inc/auctiond/fault"
)

// URLResolver - forms the document location from a fixed URL prefix
//
// an empty prefix disables metadata resolution entirely
type URLResolver string

// Resolve - the document location for an asset id
func (r URLResolver) Resolve(id uint64) (string, error) {
	if "" == string(r) {
		return "", fault.ErrAssetNotFound
	}
	return fmt.Sprintf("%s%d", string(r), id), nil
}
