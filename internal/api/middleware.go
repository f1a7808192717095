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

package api

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/openimsdk/tools/log"

	"github.com/linkup-im/linkup/pkg/common/servererrs"
	"github.com/linkup-im/linkup/pkg/common/storage/model"
)

const currentUserKey = "currentUser"

// authenticate resolves the bearer token to a user and stores it on the gin
// context for the handlers.
func (a *Api) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apiError(c, servererrs.ErrAuthentication.WithDetail("missing authorization header").Wrap())
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			apiError(c, servererrs.ErrAuthentication.WithDetail("authorization header must be a bearer token").Wrap())
			return
		}
		user, err := a.authService.ResolveBearer(c, token)
		if err != nil {
			apiError(c, err)
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// currentUser returns the user the authenticate middleware resolved.
func currentUser(c *gin.Context) *model.User {
	return c.MustGet(currentUserKey).(*model.User)
}

// requestLogger logs one line per request after it completes.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.ZInfo(c, "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"cost", time.Since(start),
			"remoteAddr", c.ClientIP(),
		)
	}
}
