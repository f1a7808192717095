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
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserConnContext carries the per-connection request data and doubles as a
// context.Context for logging for the lifetime of the connection.
type UserConnContext struct {
	RespWriter http.ResponseWriter
	Req        *http.Request
	Path       string
	Method     string
	RemoteAddr string
	ConnID     string
	Username   string
}

func newContext(respWriter http.ResponseWriter, req *http.Request, username string) *UserConnContext {
	remoteAddr := req.RemoteAddr
	if forwarded := req.Header.Get("X-Forwarded-For"); forwarded != "" {
		remoteAddr += "_" + strings.Split(forwarded, ",")[0]
	}
	return &UserConnContext{
		RespWriter: respWriter,
		Req:        req,
		Path:       req.URL.Path,
		Method:     req.Method,
		RemoteAddr: remoteAddr,
		ConnID:     uuid.NewString(),
		Username:   username,
	}
}

func (c *UserConnContext) Deadline() (deadline time.Time, ok bool) {
	return
}

func (c *UserConnContext) Done() <-chan struct{} {
	return nil
}

func (c *UserConnContext) Err() error {
	return nil
}

func (c *UserConnContext) Value(key any) any {
	switch key {
	case "username":
		return c.Username
	case "connID":
		return c.ConnID
	case "remoteAddr":
		return c.RemoteAddr
	default:
		return nil
	}
}

func (c *UserConnContext) GetRemoteAddr() string {
	return c.RemoteAddr
}

func (c *UserConnContext) GetConnID() string {
	return c.ConnID
}

// Query returns a query parameter and whether it was present.
func (c *UserConnContext) Query(key string) (string, bool) {
	value := c.Req.URL.Query().Get(key)
	return value, value != ""
}

// GetToken returns the access token presented on the handshake.
func (c *UserConnContext) GetToken() (string, bool) {
	return c.Query("token")
}
