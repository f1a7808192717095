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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSecretKey(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.API.Host)
	assert.Equal(t, 8000, cfg.API.Port)
	assert.False(t, cfg.Redis.Enable)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "linkup", cfg.Mongo.Database)
	assert.Equal(t, "test-secret", cfg.Token.Secret)
	assert.Equal(t, 30*time.Minute, cfg.Token.AccessExpire())
	assert.Equal(t, 7*24*time.Hour, cfg.Token.RefreshExpire())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_ADDRESS", "redis-a:6379, redis-b:6379")
	t.Setenv("CORS_ORIGINS", "https://app.example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.API.Port)
	assert.True(t, cfg.Redis.Enable)
	assert.Equal(t, []string{"redis-a:6379", "redis-b:6379"}, cfg.Redis.Address)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORS.Origins)
}
