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
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/openimsdk/tools/errs"
	"github.com/openimsdk/tools/log"

	"github.com/linkup-im/linkup/pkg/common/servererrs"
)

// ErrorResponse is the error envelope on every failed request.
type ErrorResponse struct {
	Detail     string `json:"detail"`
	StatusCode int    `json:"status_code"`
	ErrorCode  string `json:"error_code,omitempty"`
	Errors     any    `json:"errors,omitempty"`
}

// apiError maps a service error onto its HTTP status and stable string
// code. Unclassified errors surface as 500 UNEXPECTED_ERROR without leaking
// internals.
func apiError(c *gin.Context, err error) {
	unwrap := errs.Unwrap(err)
	var codeErr errs.CodeError
	if errors.As(unwrap, &codeErr) {
		status := servererrs.HTTPStatus(codeErr.Code())
		detail := codeErr.Detail()
		if detail == "" {
			detail = codeErr.Msg()
		}
		c.AbortWithStatusJSON(status, &ErrorResponse{
			Detail:     detail,
			StatusCode: status,
			ErrorCode:  servererrs.ErrorCode(codeErr.Code()),
		})
		return
	}
	log.ZError(c, "unclassified api error", err, "path", c.FullPath())
	c.AbortWithStatusJSON(http.StatusInternalServerError, &ErrorResponse{
		Detail:     "internal server error",
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  servererrs.ErrorCode(servererrs.UnexpectedErrorCode),
	})
}

// fieldError is one entry of the per-field validation detail.
type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// bindJSON binds the request body and, on failure, responds 422 with
// per-field detail. Returns false when the request has been aborted.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindWith(req, binding.JSON)
	if err == nil {
		return true
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]fieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, fieldError{Field: fe.Field(), Reason: fe.Tag()})
		}
		validationError(c, "request validation failed", fields)
		return false
	}
	validationError(c, "malformed request body", nil)
	return false
}

func validationError(c *gin.Context, detail string, fields any) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, &ErrorResponse{
		Detail:     detail,
		StatusCode: http.StatusUnprocessableEntity,
		ErrorCode:  servererrs.ErrorCode(servererrs.ValidationErrorCode),
		Errors:     fields,
	})
}
