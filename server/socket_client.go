// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/swell/server/logger"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"net/http"
	"sync"
	"time"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 5 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 8) / 10

	// If more than this many messages are queued for sending, the
	// socket is congested and messages may be dropped
	socketCongestionThreshold = 5

	// Allows ~1 second of messages to backup before close
	// (although the sending may be throttled to slow down
	// hitting this limit)
	socketBufferSize = 32

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	HandshakeTimeout:  time.Second,
	ReadBufferSize:    maxMessageSize,
	WriteBufferSize:   4096,
	EnableCompression: true,
}

// SocketClient is a middleman between the websocket connection and the hub.
type SocketClient struct {
	ClientData
	conn    *websocket.Conn
	send    chan Outbound
	once    sync.Once
	counter int // counts up every send
}

// NewSocketClient creates a SocketClient from a connection
func NewSocketClient(conn *websocket.Conn) *SocketClient {
	return &SocketClient{
		conn: conn,
		send: make(chan Outbound, socketBufferSize),
	}
}

func (client *SocketClient) Close() {
	close(client.send)
}

func (client *SocketClient) Data() *ClientData {
	return &client.ClientData
}

func (client *SocketClient) Destroy() {
	client.once.Do(func() {
		hub := client.Hub

		// Needs to go through when called on hub goroutine.
		select {
		case hub.unregister <- client:
		default:
			go func() {
				hub.unregister <- client
			}()
		}

		_ = client.conn.Close()
	})
}

func (client *SocketClient) Init() {
	logger.Debug("viewer connected", zap.Stringer("addr", client.conn.RemoteAddr()))
	go client.writePump()
	go client.readPump()
}

func (client *SocketClient) Send(message Outbound) {
	// How many messages there are in excess of a reasonable amount
	congestion := len(client.send) - socketCongestionThreshold

	// The closer the buffer is to being full, the more messages
	// we drop on the floor (to give the socket a chance to
	// catch up)
	client.counter++
	if congestion > 1 && client.counter%congestion != 0 {
		// Drop the message on the floor. Updates are snapshots, so
		// the next one replaces it.
		logger.Debug("socket client dropping message due to congestion", zap.Int("congestion", congestion))
		message.Pool()
		return
	}

	select {
	case client.send <- message:
	default:
		logger.Info("socket client is not responsive", zap.Stringer("addr", client.conn.RemoteAddr()))
		message.Pool()
		client.Destroy()
	}
}

func (client *SocketClient) readPump() {
	defer client.Destroy()
	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, r, err := client.conn.NextReader()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("close error", zap.Error(err))
			}
			break
		}

		var message Message
		err = JSON.NewDecoder(r).Decode(&message)
		if err != nil {
			logger.Warn("unmarshal error", zap.Error(err))
			break
		}

		client.Hub.ReceiveSigned(SignedInbound{Client: client, Inbound: message.Data.(Inbound)}, true)
	}
}

func (client *SocketClient) writePump() {
	pingTicker := time.NewTicker(pingPeriod)

	defer func() {
		if err := recover(); err != nil {
			logger.Debug("send error", zap.Any("err", err))
		}
		pingTicker.Stop()
		client.Destroy()
	}()

	for {
		select {
		case out, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				_ = client.conn.WriteMessage(websocket.CloseMessage, nil)
				panic("hub closed channel")
			}

			w, err := client.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				panic(err)
			}

			// Wrap with Message to marshal type
			if err = JSON.NewEncoder(w).Encode(Message{Data: out}); err != nil {
				panic(err)
			}

			out.Pool()

			if err = w.Close(); err != nil {
				panic(err)
			}
		case <-pingTicker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
