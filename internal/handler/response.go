package handler

import (
	"StreamHub/internal/middleware"
	"StreamHub/internal/service"
	"StreamHub/pkg/apperr"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorResponse 定义了标准的API错误响应结构
type ErrorResponse struct {
	Error string `json:"error"`
}

// sendErrorResponse 是一个辅助函数，用于发送标准格式的错误响应
func sendErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: message})
}

// sendServiceError 按错误类别返回状态码；内部错误只写日志，前端只看到通用信息
func sendServiceError(c *gin.Context, logCtx *logrus.Entry, err error, action string) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		logCtx.WithError(err).Error(action + "失败")
	} else {
		logCtx.WithError(err).WithField("kind", kind.String()).Warn(action + "被拒绝")
	}
	sendErrorResponse(c, apperr.HTTPStatus(kind), apperr.PublicMessage(err))
}

func sendSuccess(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, gin.H{
		"message": message,
		"data":    data,
	})
}

// currentCaller 已认证的路由一定能取到；取不到说明路由没挂AuthMiddleware
func currentCaller(c *gin.Context) (service.Caller, bool) {
	caller, ok := middleware.CurrentCaller(c)
	if !ok {
		sendErrorResponse(c, http.StatusUnauthorized, "用户未认证")
	}
	return caller, ok
}

// 查询参数里的整数，缺省或非法时返回0，交给service层套默认值
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
