package handler

import (
	"StreamHub/internal/dto"
	"StreamHub/internal/service"
	"StreamHub/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Me(c *gin.Context)
}

type authHandler struct {
	AuthService service.AuthService
}

func NewAuthHandler(authService service.AuthService) AuthHandler {
	return &authHandler{AuthService: authService}
}

// 用处：接收http发来的全部注册信息，用户名+密码；格式校验在service层
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// 注册：1、解析请求体 2、service层校验并创建用户 3、返回公开的用户信息
func (h *authHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Warn("注册参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}

	logCtx := logger.Log.WithField("username", req.Username)
	logCtx.Info("开始处理用户注册请求")

	user, err := h.AuthService.Register(req.Username, req.Password)
	if err != nil {
		sendServiceError(c, logCtx, err, "用户注册")
		return
	}

	logCtx.WithField("user_id", user.ID).Info("用户注册成功")
	sendSuccess(c, http.StatusCreated, "注册成功", dto.ToUserResponse(user))
}

// 登录：1、解析请求体 2、service层校验密码并签发token 3、返回token和用户信息
func (h *authHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Warn("登录参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}

	logCtx := logger.Log.WithField("username", req.Username)
	logCtx.Info("开始处理用户登录请求")

	result, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		sendServiceError(c, logCtx, err, "用户登录")
		return
	}

	logCtx.Info("用户登录成功")
	sendSuccess(c, http.StatusOK, "登录成功", dto.LoginResponse{
		AccessToken: result.Token,
		TokenType:   "Bearer",
		ExpiresIn:   result.ExpiresIn,
		User:        dto.ToUserResponse(result.User),
	})
}

func (h *authHandler) Me(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	user, err := h.AuthService.Me(caller)
	if err != nil {
		sendServiceError(c, logger.Log.WithField("user_id", caller.UserID), err, "获取用户信息")
		return
	}
	sendSuccess(c, http.StatusOK, "成功获取用户信息", dto.ToUserResponse(user))
}
