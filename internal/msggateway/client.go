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
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/log"
)

var (
	ErrConnClosed   = errs.New("conn has closed")
	ErrClientClosed = errs.New("client actively close the connection")
	ErrPanic        = errs.New("panic error")
)

// Client owns one live channel. All writes go through the write mutex; the
// read loop runs on the connection's own goroutine.
type Client struct {
	w        *sync.Mutex
	conn     LongConn
	ctx      *UserConnContext
	server   *WsServer
	Username string

	closed    atomic.Bool
	closedErr error
}

func newClient(ctx *UserConnContext, conn LongConn, server *WsServer) *Client {
	return &Client{
		w:        new(sync.Mutex),
		conn:     conn,
		ctx:      ctx,
		server:   server,
		Username: ctx.Username,
	}
}

func (c *Client) pingHandler(appData string) error {
	if err := c.conn.SetReadDeadline(pongWait); err != nil {
		return err
	}
	return c.writePongMsg(appData)
}

func (c *Client) pongHandler(_ string) error {
	return c.conn.SetReadDeadline(pongWait)
}

// readMessage is the per-connection loop: it reads frames until the channel
// dies, then unregisters. It runs on the handshake goroutine so the HTTP
// handler stays alive for the duration of the connection.
func (c *Client) readMessage() {
	defer func() {
		if r := recover(); r != nil {
			c.closedErr = ErrPanic
			log.ZError(c.ctx, "connection loop panic", errs.ErrPanic(r), "username", c.Username)
		}
		c.close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(pongWait)
	c.conn.SetPongHandler(c.pongHandler)
	c.conn.SetPingHandler(c.pingHandler)

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			c.closedErr = err
			return
		}
		if c.closed.Load() {
			c.closedErr = ErrConnClosed
			return
		}
		switch messageType {
		case MessageText:
			_ = c.conn.SetReadDeadline(pongWait)
			c.server.handleFrame(c.ctx, c, message)
		case PingMessage:
			if err := c.writePongMsg(""); err != nil {
				log.ZWarn(c.ctx, "write pong", err, "username", c.Username)
			}
		case CloseMessage:
			c.closedErr = ErrClientClosed
			return
		default:
			// Binary and unknown types are ignored.
		}
	}
}

// writeFrame serializes and transmits one frame under the write mutex.
func (c *Client) writeFrame(frame *Frame) error {
	if c.closed.Load() {
		return ErrConnClosed.Wrap()
	}
	data, err := json.Marshal(frame)
	if err != nil {
		return errs.WrapMsg(err, "marshal frame", "type", frame.Type)
	}
	c.w.Lock()
	defer c.w.Unlock()
	if err := c.conn.SetWriteDeadline(writeWait); err != nil {
		return err
	}
	if err := c.conn.WriteMessage(MessageText, data); err != nil {
		return errs.WrapMsg(err, "write frame", "type", frame.Type)
	}
	return nil
}

func (c *Client) writePongMsg(appData string) error {
	if c.closed.Load() {
		return nil
	}
	c.w.Lock()
	defer c.w.Unlock()
	if err := c.conn.SetWriteDeadline(writeWait); err != nil {
		return errs.Wrap(err)
	}
	return errs.Wrap(c.conn.WriteMessage(PongMessage, []byte(appData)))
}

// close is idempotent: it marks the client closed, closes the channel and
// removes the registry binding if this client still owns it.
func (c *Client) close() {
	c.w.Lock()
	defer c.w.Unlock()
	if c.closed.Load() {
		return
	}
	c.closed.Store(true)
	_ = c.conn.Close()
	c.server.unregisterClient(c)
}
