// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/tls"
	"io/ioutil"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/configuration"
	"github.com/bitmark-inc/auctiond/counter"
	"github.com/bitmark-inc/auctiond/fault"
	"github.com/bitmark-inc/auctiond/genes"
)

const (
	tlsName      = "client_rpc"
	minBandwidth = 1000000 // 1Mbps
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listeners []net.Listener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// global connection count
var connectionCountRPC counter.Counter

// Initialise - start the client RPC server
func Initialise(rpcConfiguration *configuration.RPCType, version string, oracle genes.Oracle) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	if rpcConfiguration.MaximumConnections < 1 {
		log.Errorf("invalid %s maximum connection limit: %d", tlsName, rpcConfiguration.MaximumConnections)
		return fault.ErrMissingParameters
	}
	if rpcConfiguration.Bandwidth <= minBandwidth { // fail if < 1Mbps
		log.Errorf("invalid %s bandwidth: %v bps < 1Mbps", tlsName, rpcConfiguration.Bandwidth)
		return fault.ErrMissingParameters
	}
	if 0 == len(rpcConfiguration.Listen) {
		log.Errorf("missing %s listen", tlsName)
		return fault.ErrMissingParameters
	}

	certificatePEM, err := ioutil.ReadFile(rpcConfiguration.Certificate)
	if nil != err {
		return err
	}
	keyPEM, err := ioutil.ReadFile(rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	tlsConfiguration, fingerprint, err := getCertificate(log, tlsName, certificatePEM, keyPEM)
	if nil != err {
		return err
	}
	log.Infof("%s: SHA3-256 fingerprint: %x", tlsName, fingerprint)

	server := createServer(log, version, &connectionCountRPC, oracle)

	maximumConnections := uint64(rpcConfiguration.MaximumConnections)

	for _, listen := range rpcConfiguration.Listen {
		ipType, address, err := parseListenAddress(listen)
		if nil != err {
			log.Errorf("rpc server listen error: %s", err)
			return err
		}

		log.Infof("starting RPC server: %s", address)
		listener, err := tls.Listen(ipType, address, tlsConfiguration)
		if nil != err {
			log.Errorf("rpc server listen error: %s", err)
			return err
		}
		globalData.listeners = append(globalData.listeners, listener)

		go doServeRPC(listener, server, maximumConnections, log, &connectionCountRPC)
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop the listeners
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	for _, listener := range globalData.listeners {
		_ = listener.Close()
	}
	globalData.listeners = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// accept loop for one listener
func doServeRPC(listen net.Listener, server *rpc.Server, maximumConnections uint64, log *logger.L, count *counter.Counter) {
	for {
		conn, err := listen.Accept()
		if nil != err {
			log.Errorf("rpc server terminated: accept error: %s", err)
			break
		}
		if count.Increment() <= maximumConnections {
			go func() {
				server.ServeCodec(jsonrpc.NewServerCodec(conn))
				_ = conn.Close()
				count.Decrement()
			}()
		} else {
			count.Decrement()
			_ = conn.Close()
		}
	}
	_ = listen.Close()
	log.Error("RPC accept terminated")
}

// validate one listen address and determine its network type
func parseListenAddress(listen string) (string, string, error) {
	host := ""
	ipType := ""
	if '*' == listen[0] {
		// change "*:PORT" to "[::]:PORT"
		// on the assumption that this will listen on tcp4 and tcp6
		listen = "[::]" + ":" + strings.Split(listen, ":")[1]
		host = "::"
		ipType = "tcp"
	} else if '[' == listen[0] {
		host = strings.Split(listen[1:], "]:")[0]
		ipType = "tcp6"
	} else {
		host = strings.Split(listen, ":")[0]
		ipType = "tcp4"
	}

	if ip := net.ParseIP(host); nil == ip {
		return "", "", fault.ErrInvalidIPAddress
	}

	return ipType, listen, nil
}
