// Copyright © 2023 OpenIM. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package msggateway

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/openimsdk/tools/errs"
)

// PingPongHandler handles ping/pong control frames.
type PingPongHandler func(string) error

// LongConn abstracts the persistent bidirectional channel so the client and
// server logic do not depend on the websocket implementation directly.
type LongConn interface {
	Close() error
	WriteMessage(messageType int, message []byte) error
	ReadMessage() (int, []byte, error)
	SetReadDeadline(timeout time.Duration) error
	SetWriteDeadline(timeout time.Duration) error
	SetReadLimit(limit int64)
	SetPongHandler(handler PingPongHandler)
	SetPingHandler(handler PingPongHandler)
	// GenerateLongConn upgrades the HTTP request to a long connection.
	GenerateLongConn(w http.ResponseWriter, r *http.Request) error
}

// GWebSocket is the gorilla/websocket implementation of LongConn.
type GWebSocket struct {
	conn             *websocket.Conn
	handshakeTimeout time.Duration
}

func newGWebSocket(handshakeTimeout time.Duration) *GWebSocket {
	return &GWebSocket{handshakeTimeout: handshakeTimeout}
}

func (d *GWebSocket) GenerateLongConn(w http.ResponseWriter, r *http.Request) error {
	upgrader := &websocket.Upgrader{
		HandshakeTimeout: d.handshakeTimeout,
		CheckOrigin:      func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return errs.WrapMsg(err, "websocket upgrade failed")
	}
	d.conn = conn
	return nil
}

func (d *GWebSocket) Close() error {
	return d.conn.Close()
}

func (d *GWebSocket) WriteMessage(messageType int, message []byte) error {
	return d.conn.WriteMessage(messageType, message)
}

func (d *GWebSocket) ReadMessage() (int, []byte, error) {
	return d.conn.ReadMessage()
}

func (d *GWebSocket) SetReadDeadline(timeout time.Duration) error {
	return d.conn.SetReadDeadline(time.Now().Add(timeout))
}

func (d *GWebSocket) SetWriteDeadline(timeout time.Duration) error {
	if timeout <= 0 {
		return errs.New("timeout must be greater than 0")
	}
	if err := d.conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return errs.WrapMsg(err, "SetWriteDeadline failed")
	}
	return nil
}

func (d *GWebSocket) SetReadLimit(limit int64) {
	d.conn.SetReadLimit(limit)
}

func (d *GWebSocket) SetPongHandler(handler PingPongHandler) {
	d.conn.SetPongHandler(handler)
}

func (d *GWebSocket) SetPingHandler(handler PingPongHandler) {
	d.conn.SetPingHandler(handler)
}

// CloseWithReason sends a close control frame with the given code before
// closing. Used for policy-violation rejections during the handshake.
func (d *GWebSocket) CloseWithReason(code int, reason string) error {
	msg := websocket.FormatCloseMessage(code, reason)
	deadline := time.Now().Add(writeWait)
	_ = d.conn.WriteControl(websocket.CloseMessage, msg, deadline)
	return d.conn.Close()
}
