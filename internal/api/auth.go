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
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linkup-im/linkup/internal/auth"
)

func (a *Api) register(c *gin.Context) {
	var req auth.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	token, err := a.authService.Register(c, &req)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusCreated, token)
}

func (a *Api) login(c *gin.Context) {
	var req auth.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	token, err := a.authService.Login(c, &req)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

func (a *Api) refresh(c *gin.Context) {
	var req auth.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}
	token, err := a.authService.Refresh(c, &req)
	if err != nil {
		apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}
