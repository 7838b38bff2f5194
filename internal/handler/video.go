package handler

import (
	"StreamHub/internal/dto"
	"StreamHub/internal/service"
	"StreamHub/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type VideoHandler interface {
	ListVideos(c *gin.Context)
	GetVideo(c *gin.Context)
	IncreaseView(c *gin.Context)
	CreateUploadRequest(c *gin.Context)
	DeleteVideo(c *gin.Context)
}

type videoHandler struct {
	VideoService service.VideoService
}

func NewVideoHandler(videoService service.VideoService) VideoHandler {
	return &videoHandler{VideoService: videoService}
}

type UploadRequest struct {
	Title    string `json:"title"`
	Duration string `json:"duration"`
}

// 视频列表：?status=READY&uploader=alice&page=1&page_size=20
func (h *videoHandler) ListVideos(c *gin.Context) {
	// 攻击溯源，用户分析，问题排查
	logCtx := logger.Log.WithField("ip", c.ClientIP())

	videos, err := h.VideoService.ListVideos(service.VideoQuery{
		Status:   c.Query("status"),
		Uploader: c.Query("uploader"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "page_size"),
	})
	if err != nil {
		sendServiceError(c, logCtx, err, "获取视频列表")
		return
	}
	sendSuccess(c, http.StatusOK, "成功获取视频列表", dto.ToVideoResponses(videos))
}

func (h *videoHandler) GetVideo(c *gin.Context) {
	videoID := c.Param("id")
	logCtx := logger.Log.WithField("video_id", videoID)

	detail, err := h.VideoService.GetVideo(videoID)
	if err != nil {
		sendServiceError(c, logCtx, err, "查找视频")
		return
	}
	sendSuccess(c, http.StatusOK, "成功获取视频", dto.ToVideoDetailResponse(detail.Video, detail.Stats))
}

// 播放量+1，视频不存在也返回成功
func (h *videoHandler) IncreaseView(c *gin.Context) {
	videoID := c.Param("id")
	if err := h.VideoService.IncreaseView(videoID); err != nil {
		sendServiceError(c, logger.Log.WithField("video_id", videoID), err, "更新播放量")
		return
	}
	sendSuccess(c, http.StatusOK, "播放量已更新", nil)
}

// 上传请求：1、解析标题和时长 2、service层建PENDING视频并签发上传URL 3、返回视频和URL
func (h *videoHandler) CreateUploadRequest(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Warn("上传请求参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}

	// 蛇形命名法（日志聚合平台ELK、前端JavaScript）
	logCtx := logger.Log.WithField("uploader", caller.Username)
	logCtx.Info("开始处理上传请求")

	ticket, err := h.VideoService.CreateUploadRequest(c.Request.Context(), caller, req.Title, req.Duration)
	if err != nil {
		sendServiceError(c, logCtx, err, "上传请求")
		return
	}

	logCtx.WithField("video_id", ticket.Video.ID).Info("上传地址签发成功")
	sendSuccess(c, http.StatusCreated, "上传地址已生成", dto.ToUploadResponse(ticket.Video, ticket.Upload))
}

func (h *videoHandler) DeleteVideo(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	videoID := c.Param("id")
	logCtx := logger.Log.WithField("video_id", videoID).WithField("username", caller.Username)

	if err := h.VideoService.DeleteVideo(caller, videoID); err != nil {
		sendServiceError(c, logCtx, err, "删除视频")
		return
	}
	logCtx.Info("视频已删除")
	sendSuccess(c, http.StatusOK, "视频已删除", nil)
}
