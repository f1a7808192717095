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
	"strings"

	"github.com/openimsdk/tools/errs"
	"github.com/spf13/viper"
)

// Environment variable names. The operational surface is env-first; a config
// file is optional and the environment always wins.
const (
	envDatabaseURL              = "DATABASE_URL"
	envMongoDatabase            = "MONGO_DATABASE"
	envRedisEnabled             = "REDIS_ENABLED"
	envRedisAddress             = "REDIS_ADDRESS"
	envRedisUsername            = "REDIS_USERNAME"
	envRedisPassword            = "REDIS_PASSWORD"
	envRedisDB                  = "REDIS_DB"
	envSecretKey                = "SECRET_KEY"
	envAccessTokenExpireMinutes = "ACCESS_TOKEN_EXPIRE_MINUTES"
	envRefreshTokenExpireDays   = "REFRESH_TOKEN_EXPIRE_DAYS"
	envHost                     = "HOST"
	envPort                     = "PORT"
	envDebug                    = "DEBUG"
	envCORSEnabled              = "CORS_ENABLED"
	envCORSOrigins              = "CORS_ORIGINS"
	envCORSMethods              = "CORS_METHODS"
	envCORSHeaders              = "CORS_HEADERS"
	envPasswordMinLength        = "PASSWORD_MIN_LENGTH"
	envPasswordRequireSpecial   = "PASSWORD_REQUIRE_SPECIAL_CHAR"
	envLogStorageLocation       = "LOG_STORAGE_LOCATION"
	envLogLevel                 = "LOG_LEVEL"
	envLogIsStdout              = "LOG_IS_STDOUT"
	envLogIsJSON                = "LOG_IS_JSON"
)

// Load reads the configuration from the environment, optionally overlaid on
// a config file. Defaults match the documented operational defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault(envDatabaseURL, "mongodb://localhost:27017")
	v.SetDefault(envMongoDatabase, "linkup")
	v.SetDefault(envRedisEnabled, false)
	v.SetDefault(envRedisAddress, "localhost:6379")
	v.SetDefault(envRedisUsername, "")
	v.SetDefault(envRedisPassword, "")
	v.SetDefault(envRedisDB, 0)
	v.SetDefault(envSecretKey, "")
	v.SetDefault(envAccessTokenExpireMinutes, 30)
	v.SetDefault(envRefreshTokenExpireDays, 7)
	v.SetDefault(envHost, "0.0.0.0")
	v.SetDefault(envPort, 8000)
	v.SetDefault(envDebug, false)
	v.SetDefault(envCORSEnabled, false)
	v.SetDefault(envCORSOrigins, "*")
	v.SetDefault(envCORSMethods, "GET,POST,PUT,DELETE,OPTIONS")
	v.SetDefault(envCORSHeaders, "Authorization,Content-Type")
	v.SetDefault(envPasswordMinLength, 1)
	v.SetDefault(envPasswordRequireSpecial, false)
	v.SetDefault(envLogStorageLocation, "")
	v.SetDefault(envLogLevel, 4)
	v.SetDefault(envLogIsStdout, true)
	v.SetDefault(envLogIsJSON, false)

	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errs.WrapMsg(err, "read config file failed", "file", configFile)
		}
	}

	if v.GetString(envSecretKey) == "" {
		return nil, errs.New("SECRET_KEY must be set").Wrap()
	}

	cfg := &Config{
		API: API{
			Host:  v.GetString(envHost),
			Port:  v.GetInt(envPort),
			Debug: v.GetBool(envDebug),
		},
		Mongo: Mongo{
			URI:         v.GetString(envDatabaseURL),
			Database:    v.GetString(envMongoDatabase),
			MaxPoolSize: 100,
			MaxRetry:    10,
		},
		Redis: Redis{
			Enable:   v.GetBool(envRedisEnabled),
			Address:  splitList(v.GetString(envRedisAddress)),
			Username: v.GetString(envRedisUsername),
			Password: v.GetString(envRedisPassword),
			DB:       v.GetInt(envRedisDB),
			MaxRetry: 3,
		},
		Token: TokenPolicy{
			Secret:              v.GetString(envSecretKey),
			AccessExpireMinutes: v.GetInt(envAccessTokenExpireMinutes),
			RefreshExpireDays:   v.GetInt(envRefreshTokenExpireDays),
		},
		Password: Password{
			MinLength:          v.GetInt(envPasswordMinLength),
			RequireSpecialChar: v.GetBool(envPasswordRequireSpecial),
		},
		CORS: CORS{
			Enable:  v.GetBool(envCORSEnabled),
			Origins: splitList(v.GetString(envCORSOrigins)),
			Methods: splitList(v.GetString(envCORSMethods)),
			Headers: splitList(v.GetString(envCORSHeaders)),
		},
		Log: Log{
			StorageLocation:     v.GetString(envLogStorageLocation),
			RotationTime:        24,
			RemainRotationCount: 2,
			RemainLogLevel:      v.GetInt(envLogLevel),
			IsStdout:            v.GetBool(envLogIsStdout),
			IsJson:              v.GetBool(envLogIsJSON),
		},
	}
	return cfg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
