package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/blues/daochat/internal/chat"
	"github.com/blues/daochat/internal/logger"
	"github.com/blues/daochat/internal/session"
	"github.com/gin-gonic/gin"
)

// Response 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应，后续中间件不再执行
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Response{
		Success: false,
		Message: message,
	})
}

// errorStatus 会话层错误对应的状态码和提示
var errorStatus = []struct {
	err     error
	code    int
	message string
}{
	{session.ErrSessionNotFound, http.StatusNotFound, "会话不存在"},
	{chat.ErrUnknownAction, http.StatusNotFound, "操作不存在或已取消"},
	{session.ErrSessionBusy, http.StatusConflict, "上一条消息仍在处理中"},
	{session.ErrEmptyMessage, http.StatusBadRequest, "消息内容不能为空"},
	{context.Canceled, http.StatusGatewayTimeout, "请求已取消"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "请求已取消"},
}

func sessionError(c *gin.Context, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			ErrorResponse(c, e.code, e.message)
			return
		}
	}
	logger.Error("Session %s request failed: %v", c.Param("id"), err)
	ErrorResponse(c, http.StatusInternalServerError, err.Error())
}
