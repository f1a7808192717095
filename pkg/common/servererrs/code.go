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

import "net/http"

// Numeric error codes. Grouped by subsystem; the code is stable and carried
// end to end, the HTTP status and the string code are derived from it.
const (
	// general
	ArgsErrorCode       = 1001 // invalid arguments
	ValidationErrorCode = 1002 // request body validation failure
	DatabaseErrorCode   = 1003
	UnexpectedErrorCode = 1004

	// authentication
	AuthenticationErrorCode   = 1101
	EmailNotFoundCode         = 1102
	InvalidCredentialsCode    = 1103
	TokenExpiredCode          = 1104
	TokenMalformedCode        = 1105
	TokenSignatureInvalidCode = 1106
	TokenInvalidTypeCode      = 1107
	TokenUnknownCode          = 1108

	// registration
	UsernameExistsCode   = 1201
	EmailExistsCode      = 1202
	WeakPasswordCode     = 1203
	UsernameTooShortCode = 1204

	// social graph
	UserNotFoundCode               = 1301
	FriendshipAlreadyExistsCode    = 1302
	FriendRequestAlreadyExistsCode = 1303
	FriendRequestNotFoundCode      = 1304
	InvalidFriendRequestStateCode  = 1305
	CannotFriendSelfCode           = 1306
	NotAuthorizedCode              = 1307

	// messaging
	MessageNotFoundCode = 1401
	NotFriendsCode      = 1402
)

// httpStatus maps a numeric error code to the HTTP status the API layer
// responds with. Codes not listed here surface as 500.
var httpStatus = map[int]int{
	ArgsErrorCode:       http.StatusBadRequest,
	ValidationErrorCode: http.StatusUnprocessableEntity,
	DatabaseErrorCode:   http.StatusInternalServerError,
	UnexpectedErrorCode: http.StatusInternalServerError,

	AuthenticationErrorCode:   http.StatusUnauthorized,
	EmailNotFoundCode:         http.StatusNotFound,
	InvalidCredentialsCode:    http.StatusUnauthorized,
	TokenExpiredCode:          http.StatusUnauthorized,
	TokenMalformedCode:        http.StatusUnauthorized,
	TokenSignatureInvalidCode: http.StatusUnauthorized,
	TokenInvalidTypeCode:      http.StatusUnauthorized,
	TokenUnknownCode:          http.StatusUnauthorized,

	UsernameExistsCode:   http.StatusConflict,
	EmailExistsCode:      http.StatusConflict,
	WeakPasswordCode:     http.StatusBadRequest,
	UsernameTooShortCode: http.StatusBadRequest,

	UserNotFoundCode:               http.StatusNotFound,
	FriendshipAlreadyExistsCode:    http.StatusConflict,
	FriendRequestAlreadyExistsCode: http.StatusConflict,
	FriendRequestNotFoundCode:      http.StatusNotFound,
	InvalidFriendRequestStateCode:  http.StatusBadRequest,
	CannotFriendSelfCode:           http.StatusBadRequest,
	NotAuthorizedCode:              http.StatusForbidden,

	MessageNotFoundCode: http.StatusNotFound,
	NotFriendsCode:      http.StatusForbidden,
}

// errorCode maps a numeric error code to the stable string code exposed in
// the error body. Token level failures collapse to AUTHENTICATION_ERROR on
// the wire; the numeric code keeps them distinguishable internally.
var errorCode = map[int]string{
	ArgsErrorCode:       "ARGS_ERROR",
	ValidationErrorCode: "VALIDATION_ERROR",
	DatabaseErrorCode:   "DB_ERROR",
	UnexpectedErrorCode: "UNEXPECTED_ERROR",

	AuthenticationErrorCode:   "AUTHENTICATION_ERROR",
	EmailNotFoundCode:         "EMAIL_NOT_FOUND",
	InvalidCredentialsCode:    "INVALID_CREDENTIALS",
	TokenExpiredCode:          "AUTHENTICATION_ERROR",
	TokenMalformedCode:        "AUTHENTICATION_ERROR",
	TokenSignatureInvalidCode: "AUTHENTICATION_ERROR",
	TokenInvalidTypeCode:      "AUTHENTICATION_ERROR",
	TokenUnknownCode:          "AUTHENTICATION_ERROR",

	UsernameExistsCode:   "USERNAME_EXISTS",
	EmailExistsCode:      "EMAIL_EXISTS",
	WeakPasswordCode:     "WEAK_PASSWORD",
	UsernameTooShortCode: "USERNAME_TOO_SHORT",

	UserNotFoundCode:               "USER_NOT_FOUND",
	FriendshipAlreadyExistsCode:    "FRIENDSHIP_ALREADY_EXISTS",
	FriendRequestAlreadyExistsCode: "FRIEND_REQUEST_ALREADY_EXISTS",
	FriendRequestNotFoundCode:      "FRIEND_REQUEST_NOT_FOUND",
	InvalidFriendRequestStateCode:  "INVALID_FRIEND_REQUEST_STATE",
	CannotFriendSelfCode:           "CANNOT_FRIEND_SELF",
	NotAuthorizedCode:              "NOT_AUTHORIZED",

	MessageNotFoundCode: "MESSAGE_NOT_FOUND",
	NotFriendsCode:      "NOT_FRIENDS",
}

// HTTPStatus returns the HTTP status for a numeric error code.
func HTTPStatus(code int) int {
	if status, ok := httpStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorCode returns the stable string code for a numeric error code, or ""
// when the code has no public name.
func ErrorCode(code int) string {
	return errorCode[code]
}
