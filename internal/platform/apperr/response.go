package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shareit-backend/internal/platform/logging"
)

type ErrorDTO struct {
	Error struct {
		Code    Code   `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func Body(code Code, msg string) ErrorDTO {
	var e ErrorDTO
	e.Error.Code = code
	e.Error.Message = msg
	return e
}

// BodyFrom: 想定外のエラーは内容を返さずログにだけ残す
func BodyFrom(err error) ErrorDTO {
	var api *APIError
	if errors.As(err, &api) {
		return Body(api.Code, api.Message)
	}
	return Body(CodeInternal, "internal server error")
}

// Abort: ハンドラ共通のエラー応答。5xx はリクエストのロガー(request_id 付き)に残す
func Abort(c *gin.Context, err error) {
	status := ToHTTPStatus(err)
	if status >= 500 {
		logging.FromContext(c.Request.Context()).Error("request failed", "path", c.FullPath(), "err", err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, BodyFrom(err))
}

// BadRequest: バインド失敗など
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Body(CodeInvalidArgument, msg))
}
