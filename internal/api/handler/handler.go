package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beingharisali/accounts-software-backend/config"
	"github.com/beingharisali/accounts-software-backend/internal/service"
	apperrors "github.com/beingharisali/accounts-software-backend/pkg/errors"
	"github.com/beingharisali/accounts-software-backend/pkg/response"
)

// 业务错误码
const (
	codeInvalidParam    = 10001
	codeUnauthenticated = 10002
	codeForbidden       = 10003
	codeNotFound        = 10006
	codeConflict        = 10007
	codeInternal        = 50000
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Student *StudentHandler
	Report  *ReportHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	eh := errorHandler{production: cfg.App.IsProduction()}
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth, eh),
		User:    NewUserHandler(svc.User, eh),
		Student: NewStudentHandler(svc.Student, eh),
		Report:  NewReportHandler(svc.Report, eh),
		Export:  NewExportHandler(svc.Export, eh),
	}
}

// errorHandler 将业务错误映射为 HTTP 响应；非生产环境附带底层错误
type errorHandler struct {
	production bool
}

func (e errorHandler) details(err error) string {
	if e.production || err == nil {
		return ""
	}
	return err.Error()
}

// respond 按错误类别写入响应
func (e errorHandler) respond(c *gin.Context, err error) {
	e.respondWithData(c, err, nil)
}

func (e errorHandler) respondWithData(c *gin.Context, err error, data interface{}) {
	status, code := statusOf(apperrors.KindOf(err))
	msg := apperrors.Message(err)
	if status == http.StatusInternalServerError {
		msg = "Something went wrong, try again later"
		_ = c.Error(err)
	}
	response.ErrorWithData(c, status, code, msg, data, e.details(err))
}

// badRequest 请求体 / 查询参数绑定失败
func (e errorHandler) badRequest(c *gin.Context, msg string, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, codeInvalidParam, msg, e.details(err))
}

func statusOf(kind apperrors.Kind) (int, int) {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest, codeInvalidParam
	case apperrors.KindAuthentication:
		return http.StatusUnauthorized, codeUnauthenticated
	case apperrors.KindAuthorization:
		return http.StatusForbidden, codeForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound, codeNotFound
	case apperrors.KindConflict:
		return http.StatusConflict, codeConflict
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
