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

// Package msggateway is the realtime side of the server: the websocket
// handshake, the per-user connection registry, the pending-message flush on
// connect, and the inbound frame loop.
package msggateway

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/openimsdk/tools/log"

	"github.com/linkup-im/linkup/internal/msg"
	"github.com/linkup-im/linkup/pkg/common/prommetrics"
)

// TokenValidator authenticates a channel handshake: the token must be a
// valid access token whose subject equals the path username. Satisfied by
// *auth.AuthService.
type TokenValidator interface {
	ResolveChannelToken(accessToken, username string) error
}

type WsServer struct {
	userMap    *UserMap
	validator  TokenValidator
	msgHandler MessageHandler
}

func NewWsServer(validator TokenValidator) *WsServer {
	return &WsServer{
		userMap:   newUserMap(),
		validator: validator,
	}
}

// SetMessageHandler wires the message service in after construction; the
// message service in turn uses this server as its pusher.
func (ws *WsServer) SetMessageHandler(handler MessageHandler) {
	ws.msgHandler = handler
}

// ServeConn runs the full lifecycle of one realtime connection: handshake,
// registration, connected frame, pending flush, then the read loop until the
// channel dies.
func (ws *WsServer) ServeConn(w http.ResponseWriter, r *http.Request, username string) {
	connCtx := newContext(w, r, username)
	conn := newGWebSocket(handshakeTimeout)
	if err := conn.GenerateLongConn(w, r); err != nil {
		log.ZWarn(connCtx, "websocket upgrade failed", err, "username", username)
		return
	}
	token, ok := connCtx.GetToken()
	if !ok {
		_ = conn.CloseWithReason(websocket.ClosePolicyViolation, "missing token")
		return
	}
	if err := ws.validator.ResolveChannelToken(token, username); err != nil {
		log.ZWarn(connCtx, "channel handshake rejected", err, "username", username, "remoteAddr", connCtx.GetRemoteAddr())
		_ = conn.CloseWithReason(websocket.ClosePolicyViolation, "authentication failed")
		return
	}

	client := newClient(connCtx, conn, ws)
	ws.registerClient(client)

	connected, err := newFrame(FrameConnected, nil)
	if err == nil {
		if err := client.writeFrame(connected); err != nil {
			log.ZWarn(connCtx, "write connected frame", err, "username", username)
			client.close()
			return
		}
	}
	ws.flushPending(connCtx, client)
	client.readMessage()
}

func (ws *WsServer) registerClient(client *Client) {
	displaced := ws.userMap.Set(client.Username, client)
	if displaced != nil {
		log.ZInfo(client.ctx, "connection replaced", "username", client.Username, "oldConnID", displaced.ctx.GetConnID())
	}
	prommetrics.WsConnectionTotalCounter.Inc()
	prommetrics.OnlineUserGauge.Set(float64(ws.userMap.Length()))
	log.ZInfo(client.ctx, "user connected", "username", client.Username, "connID", client.ctx.GetConnID(), "online", ws.userMap.Length())
}

func (ws *WsServer) unregisterClient(client *Client) {
	if ws.userMap.DeleteIfBound(client.Username, client) {
		prommetrics.OnlineUserGauge.Set(float64(ws.userMap.Length()))
		log.ZInfo(client.ctx, "user disconnected", "username", client.Username, "connID", client.ctx.GetConnID(), "closedErr", client.closedErr)
	}
}

// sendFrame delivers one frame to the user's live channel, if any. The
// registry lookup happens under the lock; the network write does not. On a
// write failure the dead client is closed and unregistered.
func (ws *WsServer) sendFrame(ctx context.Context, username string, frame *Frame) bool {
	client, ok := ws.userMap.Get(username)
	if !ok {
		return false
	}
	if err := client.writeFrame(frame); err != nil {
		log.ZWarn(ctx, "send to live channel failed", err, "username", username, "type", frame.Type)
		client.close()
		return false
	}
	return true
}

// PushNewMessage implements msg.Pusher.
func (ws *WsServer) PushNewMessage(ctx context.Context, recipientUsername string, message *msg.MessageResponse) bool {
	frame, err := newFrame(FrameNewMessage, message)
	if err != nil {
		return false
	}
	return ws.sendFrame(ctx, recipientUsername, frame)
}

// PushMessageDelivered implements msg.Pusher.
func (ws *WsServer) PushMessageDelivered(ctx context.Context, username, messageID string) bool {
	frame, err := newFrame(FrameMessageDelivered, DeliveredData{MessageID: messageID})
	if err != nil {
		return false
	}
	return ws.sendFrame(ctx, username, frame)
}

// IsOnline implements msg.Pusher.
func (ws *WsServer) IsOnline(username string) bool {
	return ws.userMap.IsOnline(username)
}
