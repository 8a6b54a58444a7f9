// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"reflect"
)

type (
	// Inbound is a message from a viewer.
	Inbound interface {
		// Process is called on the hub goroutine.
		Process(hub *Hub, client Client, viewer *Viewer)
	}

	// Outbound is a message to a viewer.
	Outbound interface {
		// Pool returns the contents of outbound to their sync.Pool
		Pool()
	}

	// Message is the envelope of every Inbound and Outbound on the wire:
	// {"type": "focus", "data": {...}}.
	Message struct {
		Data interface{}
	}

	messageJSON struct {
		Data interface{} `json:"data"`
		Type messageType `json:"type"`
	}

	messageType string

	SignedInbound struct {
		Client Client
		Inbound
	}
)

const (
	focusType     messageType = "focus"
	subscribeType messageType = "subscribe"
	traceType     messageType = "trace"
	updateType    messageType = "update"
)

var (
	// Decoded into a new value of the mapped type.
	inboundTypes = map[messageType]reflect.Type{
		focusType:     reflect.TypeOf(Focus{}),
		subscribeType: reflect.TypeOf(Subscribe{}),
		traceType:     reflect.TypeOf(Trace{}),
	}
	outboundTypes = map[reflect.Type]messageType{
		reflect.TypeOf(&Update{}): updateType,
	}
)

func (message Message) messageJSON() messageJSON {
	typ := reflect.TypeOf(message.Data)

	mType, ok := outboundTypes[typ]
	if !ok {
		// Panic because outbounds only come from trusted sources
		panic("invalid outbound message type " + typ.String())
	}

	return messageJSON{Data: message.Data, Type: mType}
}
