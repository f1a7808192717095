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

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/openimsdk/tools/db/mongoutil"
	"github.com/openimsdk/tools/db/redisutil"
	"github.com/openimsdk/tools/log"
	"github.com/spf13/cobra"

	"github.com/linkup-im/linkup/internal/api"
	"github.com/linkup-im/linkup/internal/auth"
	"github.com/linkup-im/linkup/internal/msg"
	"github.com/linkup-im/linkup/internal/msggateway"
	"github.com/linkup-im/linkup/internal/relation"
	"github.com/linkup-im/linkup/pkg/common/config"
	"github.com/linkup-im/linkup/pkg/common/storage/cache"
	cacheredis "github.com/linkup-im/linkup/pkg/common/storage/cache/redis"
	"github.com/linkup-im/linkup/pkg/common/storage/controller"
	"github.com/linkup-im/linkup/pkg/common/storage/database/mgo"
)

const version = "0.1.0"

const shutdownTimeout = 10 * time.Second

func main() {
	var configFile string
	rootCmd := &cobra.Command{
		Use:          "linkup",
		Short:        "Friend-gated instant messaging server",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configFile)
		},
	}
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "optional config file, overridden by the environment")
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	if err := log.InitLoggerFromConfig(
		"linkup", "linkup-api", "", "",
		cfg.Log.RemainLogLevel,
		cfg.Log.IsStdout,
		cfg.Log.IsJson,
		cfg.Log.StorageLocation,
		cfg.Log.RemainRotationCount,
		cfg.Log.RotationTime,
		version,
		cfg.Log.IsSimplify,
	); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mgocli, err := mongoutil.NewMongoDB(ctx, cfg.Mongo.Build())
	if err != nil {
		return err
	}

	var friendCache cache.FriendCache
	if cfg.Redis.Enable {
		rdb, err := redisutil.NewRedisClient(ctx, cfg.Redis.Build())
		if err != nil {
			return err
		}
		friendCache = cacheredis.NewFriendCacheRedis(rdb)
	} else {
		friendCache = cache.NewPassthroughFriendCache()
	}

	userDB, err := mgo.NewUserMongo(mgocli.GetDB())
	if err != nil {
		return err
	}
	friendRequestDB, err := mgo.NewFriendRequestMongo(mgocli.GetDB())
	if err != nil {
		return err
	}
	friendshipDB, err := mgo.NewFriendshipMongo(mgocli.GetDB())
	if err != nil {
		return err
	}
	pendingMessageDB, err := mgo.NewPendingMessageMongo(mgocli.GetDB())
	if err != nil {
		return err
	}

	userDatabase := controller.NewUserDatabase(userDB, mgocli.GetTx())
	friendDatabase := controller.NewFriendDatabase(friendRequestDB, friendshipDB, friendCache, mgocli.GetTx())
	msgDatabase := controller.NewMsgDatabase(pendingMessageDB)

	authService := auth.NewAuthService(userDatabase, cfg)
	friendService := relation.NewFriendService(friendDatabase, userDatabase)
	msgService := msg.NewMsgService(msgDatabase, friendDatabase, userDatabase)

	// The gateway pushes through the message service and the message service
	// pushes through the gateway, so both are bound after construction.
	wsServer := msggateway.NewWsServer(authService)
	wsServer.SetMessageHandler(msgService)
	msgService.SetPusher(wsServer)

	router := api.NewGinRouter(api.NewApi(authService, friendService, msgService, wsServer), cfg)
	srv := &http.Server{
		Addr:    net.JoinHostPort(cfg.API.Host, strconv.Itoa(cfg.API.Port)),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.ZInfo(ctx, "http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.ZInfo(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
