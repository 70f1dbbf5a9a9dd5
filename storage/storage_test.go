// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"encoding/binary"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/auctiond/storage"
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

func setup(t *testing.T) {
	err := storage.InitialiseMemory()
	assert.Nil(t, err, "storage initialise failed")
}

func teardown() {
	storage.Finalise()
}

func uint64Key(n uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, n)
	return key
}

// basic put/get/has/delete behaviour of a pool
func TestPoolBasic(t *testing.T) {
	setup(t)
	defer teardown()

	p := storage.Pool.Meta

	assert.False(t, p.Has([]byte("one")), "unexpected key")
	assert.Nil(t, p.Get([]byte("one")), "unexpected value")

	p.Put([]byte("one"), []byte{1})
	assert.True(t, p.Has([]byte("one")), "missing key")
	assert.Equal(t, []byte{1}, p.Get([]byte("one")), "wrong value")

	p.Delete([]byte("one"))
	assert.False(t, p.Has([]byte("one")), "key survived delete")
}

// pools with the same keys must not interfere
func TestPoolIsolation(t *testing.T) {
	setup(t)
	defer teardown()

	key := uint64Key(42)
	storage.Pool.Owners.Put(key, []byte("owner"))
	storage.Pool.Auctions.Put(key, []byte("auction"))

	assert.Equal(t, []byte("owner"), storage.Pool.Owners.Get(key), "wrong owner value")
	assert.Equal(t, []byte("auction"), storage.Pool.Auctions.Get(key), "wrong auction value")

	storage.Pool.Auctions.Delete(key)
	assert.Nil(t, storage.Pool.Auctions.Get(key), "auction survived delete")
	assert.Equal(t, []byte("owner"), storage.Pool.Owners.Get(key), "owner was disturbed")
}

// numeric records
func TestPoolNumeric(t *testing.T) {
	setup(t)
	defer teardown()

	p := storage.Pool.OwnerCounts

	n, ok := p.GetN([]byte("a"))
	assert.False(t, ok, "unexpected record")
	assert.Equal(t, uint64(0), n, "unexpected value")

	p.PutN([]byte("a"), 7)
	n, ok = p.GetN([]byte("a"))
	assert.True(t, ok, "missing record")
	assert.Equal(t, uint64(7), n, "wrong value")
}

// last element of the asset arena determines the next id
func TestLastElement(t *testing.T) {
	setup(t)
	defer teardown()

	p := storage.Pool.Assets

	_, found := p.LastElement()
	assert.False(t, found, "unexpected element in empty pool")

	for i := uint64(0); i <= 5; i += 1 {
		p.Put(uint64Key(i), []byte{byte(i)})
	}

	last, found := p.LastElement()
	assert.True(t, found, "missing last element")
	assert.Equal(t, uint64Key(5), last.Key, "wrong last key")
	assert.Equal(t, []byte{5}, last.Value, "wrong last value")
}

// fetch a range of events
func TestFetch(t *testing.T) {
	setup(t)
	defer teardown()

	p := storage.Pool.Events
	for i := uint64(0); i < 10; i += 1 {
		p.Put(uint64Key(i), []byte{byte(i)})
	}

	elements, err := p.Fetch(uint64Key(4), 3)
	assert.Nil(t, err, "fetch failed")
	assert.Equal(t, 3, len(elements), "wrong element count")
	assert.Equal(t, uint64Key(4), elements[0].Key, "wrong first key")
	assert.Equal(t, uint64Key(6), elements[2].Key, "wrong last key")

	// fetch beyond the end
	elements, err = p.Fetch(uint64Key(8), 100)
	assert.Nil(t, err, "fetch failed")
	assert.Equal(t, 2, len(elements), "wrong element count")
}

// staged batch is atomic: nothing visible before commit, all after
func TestBatchAtomicity(t *testing.T) {
	setup(t)
	defer teardown()

	storage.Pool.Balances.Put([]byte("x"), []byte{9})

	batch := storage.NewBatch()
	batch.Put(storage.Pool.Owners, uint64Key(1), []byte("new owner"))
	batch.PutN(storage.Pool.OwnerCounts, []byte("new owner"), 1)
	batch.Delete(storage.Pool.Balances, []byte("x"))

	// nothing visible yet
	assert.Nil(t, storage.Pool.Owners.Get(uint64Key(1)), "batch leaked before commit")
	assert.True(t, storage.Pool.Balances.Has([]byte("x")), "batch leaked before commit")

	batch.Commit()

	assert.Equal(t, []byte("new owner"), storage.Pool.Owners.Get(uint64Key(1)), "put not applied")
	n, ok := storage.Pool.OwnerCounts.GetN([]byte("new owner"))
	assert.True(t, ok, "putN not applied")
	assert.Equal(t, uint64(1), n, "wrong count")
	assert.False(t, storage.Pool.Balances.Has([]byte("x")), "delete not applied")

	// an abandoned batch leaves no trace
	abandoned := storage.NewBatch()
	abandoned.Put(storage.Pool.Owners, uint64Key(2), []byte("nobody"))
	abandoned = nil
	_ = abandoned
	assert.Nil(t, storage.Pool.Owners.Get(uint64Key(2)), "abandoned batch leaked")
}
