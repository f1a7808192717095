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

package servererrs

import "github.com/openimsdk/tools/errs"

var (
	ErrArgs            = errs.NewCodeError(ArgsErrorCode, "ArgsError")
	ErrValidation      = errs.NewCodeError(ValidationErrorCode, "ValidationError")
	ErrDatabase        = errs.NewCodeError(DatabaseErrorCode, "DatabaseError")
	ErrUnexpected      = errs.NewCodeError(UnexpectedErrorCode, "UnexpectedError")

	ErrAuthentication        = errs.NewCodeError(AuthenticationErrorCode, "AuthenticationError")
	ErrEmailNotFound         = errs.NewCodeError(EmailNotFoundCode, "EmailNotFound")
	ErrInvalidCredentials    = errs.NewCodeError(InvalidCredentialsCode, "InvalidCredentials")
	ErrTokenExpired          = errs.NewCodeError(TokenExpiredCode, "TokenExpired")
	ErrTokenMalformed        = errs.NewCodeError(TokenMalformedCode, "TokenMalformed")
	ErrTokenSignatureInvalid = errs.NewCodeError(TokenSignatureInvalidCode, "TokenSignatureInvalid")
	ErrTokenInvalidType      = errs.NewCodeError(TokenInvalidTypeCode, "TokenInvalidType")
	ErrTokenUnknown          = errs.NewCodeError(TokenUnknownCode, "TokenUnknown")

	ErrUsernameExists   = errs.NewCodeError(UsernameExistsCode, "UsernameExists")
	ErrEmailExists      = errs.NewCodeError(EmailExistsCode, "EmailExists")
	ErrWeakPassword     = errs.NewCodeError(WeakPasswordCode, "WeakPassword")
	ErrUsernameTooShort = errs.NewCodeError(UsernameTooShortCode, "UsernameTooShort")

	ErrUserNotFound               = errs.NewCodeError(UserNotFoundCode, "UserNotFound")
	ErrFriendshipAlreadyExists    = errs.NewCodeError(FriendshipAlreadyExistsCode, "FriendshipAlreadyExists")
	ErrFriendRequestAlreadyExists = errs.NewCodeError(FriendRequestAlreadyExistsCode, "FriendRequestAlreadyExists")
	ErrFriendRequestNotFound      = errs.NewCodeError(FriendRequestNotFoundCode, "FriendRequestNotFound")
	ErrInvalidFriendRequestState  = errs.NewCodeError(InvalidFriendRequestStateCode, "InvalidFriendRequestState")
	ErrCannotFriendSelf           = errs.NewCodeError(CannotFriendSelfCode, "CannotFriendSelf")
	ErrNotAuthorized              = errs.NewCodeError(NotAuthorizedCode, "NotAuthorized")

	ErrMessageNotFound = errs.NewCodeError(MessageNotFoundCode, "MessageNotFound")
	ErrNotFriends      = errs.NewCodeError(NotFriendsCode, "NotFriends")
)
