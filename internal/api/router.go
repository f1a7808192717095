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

// Package api is the HTTP boundary: routing, authentication middleware, and
// the translation of service results and errors to transport responses.
package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/linkup-im/linkup/internal/auth"
	"github.com/linkup-im/linkup/internal/msg"
	"github.com/linkup-im/linkup/internal/msggateway"
	"github.com/linkup-im/linkup/internal/relation"
	"github.com/linkup-im/linkup/pkg/common/config"
	"github.com/linkup-im/linkup/pkg/common/prommetrics"
)

type Api struct {
	authService   *auth.AuthService
	friendService *relation.FriendService
	msgService    *msg.MsgService
	wsServer      *msggateway.WsServer
}

func NewApi(authService *auth.AuthService, friendService *relation.FriendService, msgService *msg.MsgService, wsServer *msggateway.WsServer) *Api {
	return &Api{
		authService:   authService,
		friendService: friendService,
		msgService:    msgService,
		wsServer:      wsServer,
	}
}

// NewGinRouter assembles the engine: recovery, request logging, gzip,
// config-gated CORS, the metrics and health endpoints, and the API routes.
func NewGinRouter(api *Api, cfg *config.Config) *gin.Engine {
	if cfg.API.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), gzip.Gzip(gzip.DefaultCompression))
	if cfg.CORS.Enable {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.Origins,
			AllowMethods:     cfg.CORS.Methods,
			AllowHeaders:     cfg.CORS.Headers,
			AllowCredentials: true,
		}))
	}

	r.GET("/metrics", gin.WrapH(prommetrics.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", api.register)
		authGroup.POST("/login", api.login)
		authGroup.POST("/refresh", api.refresh)
	}

	userGroup := r.Group("/users", api.authenticate())
	{
		userGroup.GET("/search", api.searchUsers)
		userGroup.GET("/friends", api.listFriends)
		userGroup.POST("/friends/request", api.sendFriendRequest)
		userGroup.POST("/friends/respond", api.respondFriendRequest)
		userGroup.GET("/friends/requests/received", api.listReceivedRequests)
		userGroup.GET("/friends/requests/sent", api.listSentRequests)
	}

	msgGroup := r.Group("/messages")
	{
		// The websocket handshake authenticates with the token query param.
		msgGroup.GET("/ws/:username", api.serveWs)

		authed := msgGroup.Group("", api.authenticate())
		authed.POST("/", api.sendMessage)
		authed.GET("/pending", api.listPendingMessages)
		authed.POST("/delivered/:message_id", api.markDelivered)
	}

	return r
}

func (a *Api) serveWs(c *gin.Context) {
	a.wsServer.ServeConn(c.Writer, c.Request, c.Param("username"))
}
