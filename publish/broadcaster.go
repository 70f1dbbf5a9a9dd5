// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/binary"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/auctiond/event"
)

// drops messages rather than blocking a slow subscriber
const publishQueueDepth = 500

type broadcaster struct {
	log    *logger.L
	socket *zmq.Socket
}

// bind the publish socket to every configured address
func (brdc *broadcaster) initialise(addresses []string) error {
	brdc.log = logger.New("broadcaster")
	brdc.log.Info("initialising…")

	if 0 == len(addresses) {
		brdc.log.Info("no broadcast addresses: disabled")
		return nil
	}

	socket, err := zmq.NewSocket(zmq.PUB)
	if nil != err {
		return err
	}

	_ = socket.SetLinger(0)
	_ = socket.SetSndhwm(publishQueueDepth)

	for _, address := range addresses {
		bindTo := "tcp://" + address
		if err := socket.Bind(bindTo); nil != err {
			brdc.log.Errorf("bind: %q  error: %s", bindTo, err)
			socket.Close()
			return err
		}
		brdc.log.Infof("publish on: %q", bindTo)
	}

	brdc.socket = socket
	return nil
}

// Run - wait for committed notifications and relay them
//
// each message goes out as three frames: the kind byte (the ZeroMQ
// subscription topic), the big endian sequence number, and the packed
// record
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {

	log := brdc.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case message := <-event.Chan():
			if nil == brdc.socket {
				continue loop
			}

			packed := message.Event.Pack()
			seq := make([]byte, 8)
			binary.BigEndian.PutUint64(seq, message.Seq)

			_, err := brdc.socket.SendMessageDontwait(packed[:1], seq, packed[1:])
			if nil != err {
				log.Errorf("send: seq: %d  error: %s", message.Seq, err)
			}
		}
	}

	if nil != brdc.socket {
		brdc.socket.Close()
		brdc.socket = nil
	}
	log.Info("shutting down…")
}
