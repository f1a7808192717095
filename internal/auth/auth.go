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

// Package auth implements registration, login, token refresh and bearer
// resolution. Every other operation in the server is gated on ResolveBearer.
package auth

import (
	"context"
	"time"

	"github.com/openimsdk/tools/log"

	"github.com/linkup-im/linkup/pkg/common/config"
	"github.com/linkup-im/linkup/pkg/common/encrypt"
	"github.com/linkup-im/linkup/pkg/common/prommetrics"
	"github.com/linkup-im/linkup/pkg/common/servererrs"
	"github.com/linkup-im/linkup/pkg/common/storage/controller"
	"github.com/linkup-im/linkup/pkg/common/storage/database/mgo"
	"github.com/linkup-im/linkup/pkg/common/storage/model"
	"github.com/linkup-im/linkup/pkg/tokenverify"
)

const minUsernameLength = 3

// TokenResponse is the token pair returned by register, login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
}

type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthService struct {
	userDatabase controller.UserDatabase
	token        config.TokenPolicy
	passwordRule encrypt.StrengthRules
}

func NewAuthService(userDatabase controller.UserDatabase, cfg *config.Config) *AuthService {
	return &AuthService{
		userDatabase: userDatabase,
		token:        cfg.Token,
		passwordRule: encrypt.StrengthRules{
			MinLength:          cfg.Password.MinLength,
			RequireSpecialChar: cfg.Password.RequireSpecialChar,
		},
	}
}

// Register validates the new account, persists it with the hashed password
// and hashed refresh token, and returns the first token pair. The refresh
// hash is on the inserted row, so issuance is atomic with creation.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*TokenResponse, error) {
	if len(req.Username) < minUsernameLength {
		return nil, servererrs.ErrUsernameTooShort.WithDetail("username must be at least 3 characters long").Wrap()
	}
	if exist, err := s.userDatabase.ExistUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if exist {
		return nil, servererrs.ErrUsernameExists.WithDetail("username already registered").Wrap()
	}
	if exist, err := s.userDatabase.ExistEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if exist {
		return nil, servererrs.ErrEmailExists.WithDetail("email already registered").Wrap()
	}
	if err := encrypt.ValidateStrength(req.Password, s.passwordRule); err != nil {
		return nil, err
	}
	hashedPassword, err := encrypt.PasswordHash(req.Password)
	if err != nil {
		return nil, err
	}
	pair, hashedRefresh, refreshExpiresAt, err := s.mintTokenPair(req.Username, req.DisplayName)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &model.User{
		Username:              req.Username,
		Email:                 req.Email,
		DisplayName:           req.DisplayName,
		HashedPassword:        hashedPassword,
		HashedRefreshToken:    hashedRefresh,
		RefreshTokenExpiresAt: refreshExpiresAt,
		LastSeen:              now,
		CreateTime:            now,
	}
	if err := s.userDatabase.Create(ctx, user); err != nil {
		return nil, err
	}
	prommetrics.UserRegisterCounter.Inc()
	return pair, nil
}

// Login authenticates by email and password and issues a fresh token pair,
// persisting the new refresh hash before returning it.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	user, err := s.userDatabase.TakeByEmail(ctx, req.Email)
	if err != nil {
		if mgo.IsNotFound(err) {
			return nil, servererrs.ErrEmailNotFound.WithDetail("email not registered").Wrap()
		}
		return nil, err
	}
	if !encrypt.PasswordVerify(req.Password, user.HashedPassword) {
		return nil, servererrs.ErrInvalidCredentials.WithDetail("incorrect password").Wrap()
	}
	pair, hashedRefresh, refreshExpiresAt, err := s.mintTokenPair(user.Username, user.DisplayName)
	if err != nil {
		return nil, err
	}
	if err := s.userDatabase.SetRefreshToken(ctx, user.Username, hashedRefresh, refreshExpiresAt); err != nil {
		return nil, err
	}
	if err := s.userDatabase.UpdateLastSeen(ctx, user.Username, time.Now().UTC()); err != nil {
		log.ZWarn(ctx, "update last seen on login", err, "username", user.Username)
	}
	prommetrics.UserLoginCounter.Inc()
	return pair, nil
}

// Refresh verifies the presented refresh token against the stored hash and
// expiry and mints a new access token. The refresh token is not rotated; the
// same cleartext stays valid until its own expiry.
func (s *AuthService) Refresh(ctx context.Context, req *RefreshRequest) (*TokenResponse, error) {
	claims, err := tokenverify.GetTypedClaimFromToken(req.RefreshToken, tokenverify.TokenTypeRefresh, tokenverify.Secret(s.token.Secret))
	if err != nil {
		return nil, err
	}
	user, err := s.userDatabase.Take(ctx, claims.Username())
	if err != nil {
		if mgo.IsNotFound(err) {
			return nil, servererrs.ErrAuthentication.WithDetail("user not found").Wrap()
		}
		return nil, err
	}
	if !encrypt.TokenVerify(req.RefreshToken, user.HashedRefreshToken) {
		return nil, servererrs.ErrAuthentication.WithDetail("refresh token does not match").Wrap()
	}
	if !user.RefreshTokenExpiresAt.After(time.Now().UTC()) {
		return nil, servererrs.ErrAuthentication.WithDetail("refresh token expired").Wrap()
	}
	accessToken, err := tokenverify.CreateToken(user.Username, tokenverify.TokenTypeAccess, s.token.Secret, s.token.AccessExpire())
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: req.RefreshToken,
		TokenType:    "bearer",
		Username:     user.Username,
		DisplayName:  user.DisplayName,
	}, nil
}

// ResolveBearer maps an access token to its user and touches last_seen. The
// last_seen update is best effort; a write failure does not fail the call.
func (s *AuthService) ResolveBearer(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := tokenverify.GetTypedClaimFromToken(accessToken, tokenverify.TokenTypeAccess, tokenverify.Secret(s.token.Secret))
	if err != nil {
		return nil, err
	}
	user, err := s.userDatabase.Take(ctx, claims.Username())
	if err != nil {
		if mgo.IsNotFound(err) {
			return nil, servererrs.ErrAuthentication.WithDetail("user not found").Wrap()
		}
		return nil, err
	}
	if err := s.userDatabase.UpdateLastSeen(ctx, user.Username, time.Now().UTC()); err != nil {
		log.ZWarn(ctx, "update last seen", err, "username", user.Username)
	}
	return user, nil
}

// ResolveChannelToken authenticates a realtime handshake: the access token
// must be valid and its subject must equal the path username.
func (s *AuthService) ResolveChannelToken(accessToken, username string) error {
	claims, err := tokenverify.GetTypedClaimFromToken(accessToken, tokenverify.TokenTypeAccess, tokenverify.Secret(s.token.Secret))
	if err != nil {
		return err
	}
	if claims.Username() != username {
		return servererrs.ErrAuthentication.WithDetail("token subject does not match channel username").Wrap()
	}
	return nil
}

func (s *AuthService) mintTokenPair(username, displayName string) (*TokenResponse, string, time.Time, error) {
	accessToken, err := tokenverify.CreateToken(username, tokenverify.TokenTypeAccess, s.token.Secret, s.token.AccessExpire())
	if err != nil {
		return nil, "", time.Time{}, err
	}
	refreshToken, err := tokenverify.CreateToken(username, tokenverify.TokenTypeRefresh, s.token.Secret, s.token.RefreshExpire())
	if err != nil {
		return nil, "", time.Time{}, err
	}
	hashedRefresh, err := encrypt.TokenHash(refreshToken)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	pair := &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		Username:     username,
		DisplayName:  displayName,
	}
	return pair, hashedRefresh, time.Now().UTC().Add(s.token.RefreshExpire()), nil
}
