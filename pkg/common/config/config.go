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

package config

import (
	"time"

	"github.com/openimsdk/tools/db/mongoutil"
	"github.com/openimsdk/tools/db/redisutil"
)

// API is the HTTP/WebSocket listener configuration.
type API struct {
	Host  string `mapstructure:"host"`
	Port  int    `mapstructure:"port"`
	Debug bool   `mapstructure:"debug"`
}

// Mongo is the persistence configuration. URI wins over the discrete fields.
type Mongo struct {
	URI         string   `mapstructure:"uri"`
	Address     []string `mapstructure:"address"`
	Database    string   `mapstructure:"database"`
	Username    string   `mapstructure:"username"`
	Password    string   `mapstructure:"password"`
	AuthSource  string   `mapstructure:"authSource"`
	MaxPoolSize int      `mapstructure:"maxPoolSize"`
	MaxRetry    int      `mapstructure:"maxRetry"`
}

func (m *Mongo) Build() *mongoutil.Config {
	return &mongoutil.Config{
		Uri:         m.URI,
		Address:     m.Address,
		Database:    m.Database,
		Username:    m.Username,
		Password:    m.Password,
		AuthSource:  m.AuthSource,
		MaxPoolSize: m.MaxPoolSize,
		MaxRetry:    m.MaxRetry,
	}
}

// Redis configures the optional friend-ID cache. When Enable is false the
// server runs straight against Mongo.
type Redis struct {
	Enable      bool     `mapstructure:"enable"`
	ClusterMode bool     `mapstructure:"clusterMode"`
	Address     []string `mapstructure:"address"`
	Username    string   `mapstructure:"username"`
	Password    string   `mapstructure:"password"`
	DB          int      `mapstructure:"db"`
	MaxRetry    int      `mapstructure:"maxRetry"`
	PoolSize    int      `mapstructure:"poolSize"`
}

func (r *Redis) Build() *redisutil.Config {
	return &redisutil.Config{
		ClusterMode: r.ClusterMode,
		Address:     r.Address,
		Username:    r.Username,
		Password:    r.Password,
		DB:          r.DB,
		MaxRetry:    r.MaxRetry,
		PoolSize:    r.PoolSize,
	}
}

// TokenPolicy holds the signing secret and the token lifetimes.
type TokenPolicy struct {
	Secret              string `mapstructure:"secret"`
	AccessExpireMinutes int    `mapstructure:"accessExpireMinutes"`
	RefreshExpireDays   int    `mapstructure:"refreshExpireDays"`
}

// AccessExpire returns the access-token lifetime as a duration.
func (t *TokenPolicy) AccessExpire() time.Duration {
	return time.Duration(t.AccessExpireMinutes) * time.Minute
}

// RefreshExpire returns the refresh-token lifetime as a duration.
func (t *TokenPolicy) RefreshExpire() time.Duration {
	return time.Duration(t.RefreshExpireDays) * 24 * time.Hour
}

// Password is the explicit password-strength rule set.
type Password struct {
	MinLength          int  `mapstructure:"minLength"`
	RequireSpecialChar bool `mapstructure:"requireSpecialChar"`
}

// CORS gates and configures cross-origin request handling on the API router.
type CORS struct {
	Enable  bool     `mapstructure:"enable"`
	Origins []string `mapstructure:"origins"`
	Methods []string `mapstructure:"methods"`
	Headers []string `mapstructure:"headers"`
}

// Log mirrors the logger initialization knobs.
type Log struct {
	StorageLocation     string `mapstructure:"storageLocation"`
	RotationTime        uint   `mapstructure:"rotationTime"`
	RemainRotationCount uint   `mapstructure:"remainRotationCount"`
	RemainLogLevel      int    `mapstructure:"remainLogLevel"`
	IsStdout            bool   `mapstructure:"isStdout"`
	IsJson              bool   `mapstructure:"isJson"`
	IsSimplify          bool   `mapstructure:"isSimplify"`
}

// Config is the full server configuration.
type Config struct {
	API      API         `mapstructure:"api"`
	Mongo    Mongo       `mapstructure:"mongo"`
	Redis    Redis       `mapstructure:"redis"`
	Token    TokenPolicy `mapstructure:"token"`
	Password Password    `mapstructure:"password"`
	CORS     CORS        `mapstructure:"cors"`
	Log      Log         `mapstructure:"log"`
}
