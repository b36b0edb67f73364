package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
// success/msg 与前端既有约定保持一致，code 为业务错误码（0 表示成功）
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Msg:     "success",
		Data:    data,
	})
}

// OKMsg 200 成功响应（自定义提示）
func OKMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Msg:     msg,
		Data:    data,
	})
}

// Created 201 创建成功
func Created(c *gin.Context, msg string, data interface{}) {
	if msg == "" {
		msg = "success"
	}
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Msg:     msg,
		Data:    data,
	})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, Response{
		Code: code,
		Msg:  msg,
	})
}

// ErrorWithDetails 带详情的错误响应（仅非生产环境使用）
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, msg, details string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Msg:     msg,
		Details: details,
	})
}

// ErrorWithData 错误响应携带部分结果（如批量导入中途失败时已处理的条目）
func ErrorWithData(c *gin.Context, httpStatus int, code int, msg string, data interface{}, details string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Msg:     msg,
		Data:    data,
		Details: details,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400
func BadRequest(c *gin.Context, code int, msg string) {
	Error(c, http.StatusBadRequest, code, msg)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, msg string) {
	Error(c, http.StatusUnauthorized, code, msg)
}

// Forbidden 403
func Forbidden(c *gin.Context, code int, msg string) {
	Error(c, http.StatusForbidden, code, msg)
}

// NotFound 404
func NotFound(c *gin.Context, code int, msg string) {
	Error(c, http.StatusNotFound, code, msg)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, 50000, "Something went wrong, try again later")
}
