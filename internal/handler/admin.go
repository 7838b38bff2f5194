package handler

import (
	"StreamHub/internal/dto"
	"StreamHub/internal/service"
	"StreamHub/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminHandler 的路由挂在AuthMiddleware和RequireRole(ADMIN)之后，service层还会再检查一次
type AdminHandler interface {
	ListUsers(c *gin.Context)
	GetUser(c *gin.Context)
	CreateUser(c *gin.Context)
	UpdateUser(c *gin.Context)
	DeleteUser(c *gin.Context)
	ChangeUserRole(c *gin.Context)

	ListVideos(c *gin.Context)
	GetVideo(c *gin.Context)
	UpdateVideo(c *gin.Context)
	DeleteVideo(c *gin.Context)

	DeleteComment(c *gin.Context)
}

type adminHandler struct {
	AdminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) AdminHandler {
	return &adminHandler{AdminService: adminService}
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// 字段为null或空字符串时不修改
type UpdateUserRequest struct {
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type UpdateVideoRequest struct {
	Title  *string `json:"title"`
	Status *string `json:"status"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func adminLog(caller service.Caller) *logrus.Entry {
	return logger.Log.WithField("admin", caller.Username)
}

// ========== 用户管理 ==========

func (h *adminHandler) ListUsers(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	users, err := h.AdminService.ListUsers(caller)
	if err != nil {
		sendServiceError(c, adminLog(caller), err, "获取用户列表")
		return
	}
	sendSuccess(c, http.StatusOK, "成功获取用户列表", dto.ToUserResponses(users))
}

func (h *adminHandler) GetUser(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	user, err := h.AdminService.GetUser(caller, c.Param("id"))
	if err != nil {
		sendServiceError(c, adminLog(caller).WithField("user_id", c.Param("id")), err, "获取用户")
		return
	}
	sendSuccess(c, http.StatusOK, "成功获取用户", dto.ToUserResponse(user))
}

func (h *adminHandler) CreateUser(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	logCtx := adminLog(caller).WithField("username", req.Username)
	user, err := h.AdminService.CreateUser(caller, req.Username, req.Password, req.Role)
	if err != nil {
		sendServiceError(c, logCtx, err, "创建用户")
		return
	}
	logCtx.WithField("user_id", user.ID).Info("管理员创建了用户")
	sendSuccess(c, http.StatusCreated, "用户创建成功", dto.ToUserResponse(user))
}

func (h *adminHandler) UpdateUser(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	userID := c.Param("id")
	logCtx := adminLog(caller).WithField("user_id", userID)
	user, err := h.AdminService.UpdateUser(caller, userID, service.UserUpdate{
		Password: deref(req.Password),
		Role:     deref(req.Role),
	})
	if err != nil {
		sendServiceError(c, logCtx, err, "更新用户")
		return
	}
	logCtx.Info("管理员更新了用户")
	sendSuccess(c, http.StatusOK, "用户已更新", dto.ToUserResponse(user))
}

func (h *adminHandler) DeleteUser(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	userID := c.Param("id")
	logCtx := adminLog(caller).WithField("user_id", userID)
	user, err := h.AdminService.DeleteUser(caller, userID)
	if err != nil {
		sendServiceError(c, logCtx, err, "删除用户")
		return
	}
	logCtx.WithField("username", user.Username).Info("管理员删除了用户")
	sendSuccess(c, http.StatusOK, "用户已删除", dto.ToUserResponse(user))
}

func (h *adminHandler) ChangeUserRole(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "角色不能为空")
		return
	}
	userID := c.Param("id")
	logCtx := adminLog(caller).WithField("user_id", userID).WithField("role", req.Role)
	user, err := h.AdminService.ChangeUserRole(caller, userID, req.Role)
	if err != nil {
		sendServiceError(c, logCtx, err, "修改角色")
		return
	}
	logCtx.Info("管理员修改了用户角色")
	sendSuccess(c, http.StatusOK, "角色已更新", dto.ToUserResponse(user))
}

// ========== 视频管理 ==========

func (h *adminHandler) ListVideos(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	summaries, err := h.AdminService.ListVideos(caller)
	if err != nil {
		sendServiceError(c, adminLog(caller), err, "获取视频列表")
		return
	}
	sendSuccess(c, http.StatusOK, "成功获取视频列表", dto.ToAdminVideoResponses(summaries))
}

func (h *adminHandler) GetVideo(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	videoID := c.Param("id")
	detail, err := h.AdminService.GetVideoDetails(caller, videoID)
	if err != nil {
		sendServiceError(c, adminLog(caller).WithField("video_id", videoID), err, "获取视频详情")
		return
	}
	sendSuccess(c, http.StatusOK, "成功获取视频详情", dto.ToAdminVideoDetailResponse(detail))
}

func (h *adminHandler) UpdateVideo(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	videoID := c.Param("id")
	logCtx := adminLog(caller).WithField("video_id", videoID)
	video, err := h.AdminService.UpdateVideo(caller, videoID, service.VideoUpdate{
		Title:  deref(req.Title),
		Status: deref(req.Status),
	})
	if err != nil {
		sendServiceError(c, logCtx, err, "更新视频")
		return
	}
	logCtx.WithField("status", video.Status).Info("管理员更新了视频")
	sendSuccess(c, http.StatusOK, "视频已更新", dto.ToVideoResponse(video))
}

func (h *adminHandler) DeleteVideo(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	videoID := c.Param("id")
	logCtx := adminLog(caller).WithField("video_id", videoID)
	video, err := h.AdminService.DeleteVideo(caller, videoID)
	if err != nil {
		sendServiceError(c, logCtx, err, "删除视频")
		return
	}
	logCtx.Info("管理员删除了视频")
	sendSuccess(c, http.StatusOK, "视频已删除", dto.ToVideoResponse(video))
}

func (h *adminHandler) DeleteComment(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	commentID := c.Param("id")
	logCtx := adminLog(caller).WithField("comment_id", commentID)
	if err := h.AdminService.DeleteComment(caller, commentID); err != nil {
		sendServiceError(c, logCtx, err, "删除评论")
		return
	}
	logCtx.Info("管理员删除了评论")
	sendSuccess(c, http.StatusOK, "评论已删除", nil)
}
