package handler

import (
	"StreamHub/internal/dto"
	"StreamHub/internal/service"
	"StreamHub/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PlaylistHandler interface {
	GetUserPlaylists(c *gin.Context)
	GetPlaylist(c *gin.Context)
	CreatePlaylist(c *gin.Context)
	UpdatePlaylist(c *gin.Context)
	DeletePlaylist(c *gin.Context)
	AddVideo(c *gin.Context)
	RemoveVideo(c *gin.Context)
}

type playlistHandler struct {
	PlaylistService service.PlaylistService
}

func NewPlaylistHandler(playlistService service.PlaylistService) PlaylistHandler {
	return &playlistHandler{PlaylistService: playlistService}
}

type PlaylistRequest struct {
	Name string `json:"name"`
}

type AddVideoRequest struct {
	VideoID string `json:"video_id"`
}

func (h *playlistHandler) GetUserPlaylists(c *gin.Context) {
	username := c.Param("username")
	playlists, err := h.PlaylistService.GetUserPlaylists(username)
	if err != nil {
		sendServiceError(c, logger.Log.WithField("owner", username), err, "获取播放列表")
		return
	}
	sendSuccess(c, http.StatusOK, "成功获取播放列表", dto.ToPlaylistWithVideosResponses(playlists))
}

func (h *playlistHandler) GetPlaylist(c *gin.Context) {
	playlistID := c.Param("id")
	playlist, err := h.PlaylistService.GetPlaylist(playlistID)
	if err != nil {
		sendServiceError(c, logger.Log.WithField("playlist_id", playlistID), err, "获取播放列表")
		return
	}
	sendSuccess(c, http.StatusOK, "成功获取播放列表", dto.ToPlaylistWithVideosResponse(playlist))
}

func (h *playlistHandler) CreatePlaylist(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req PlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	logCtx := logger.Log.WithField("owner", caller.Username)
	playlist, err := h.PlaylistService.CreatePlaylist(caller, req.Name)
	if err != nil {
		sendServiceError(c, logCtx, err, "创建播放列表")
		return
	}
	logCtx.WithField("playlist_id", playlist.ID).Info("播放列表创建成功")
	sendSuccess(c, http.StatusCreated, "播放列表创建成功", dto.ToPlaylistResponse(playlist))
}

func (h *playlistHandler) UpdatePlaylist(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req PlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	playlistID := c.Param("id")
	playlist, err := h.PlaylistService.UpdatePlaylist(caller, playlistID, req.Name)
	if err != nil {
		sendServiceError(c, playlistLog(caller, playlistID), err, "更新播放列表")
		return
	}
	sendSuccess(c, http.StatusOK, "播放列表已更新", dto.ToPlaylistResponse(playlist))
}

func (h *playlistHandler) DeletePlaylist(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	playlistID := c.Param("id")
	logCtx := playlistLog(caller, playlistID)
	if err := h.PlaylistService.DeletePlaylist(caller, playlistID); err != nil {
		sendServiceError(c, logCtx, err, "删除播放列表")
		return
	}
	logCtx.Info("播放列表已删除")
	sendSuccess(c, http.StatusOK, "播放列表已删除", nil)
}

func (h *playlistHandler) AddVideo(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req AddVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	playlistID := c.Param("id")
	playlist, err := h.PlaylistService.AddVideo(caller, playlistID, req.VideoID)
	if err != nil {
		sendServiceError(c, playlistLog(caller, playlistID).WithField("video_id", req.VideoID), err, "添加视频")
		return
	}
	sendSuccess(c, http.StatusOK, "视频已加入播放列表", dto.ToPlaylistResponse(playlist))
}

func (h *playlistHandler) RemoveVideo(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	playlistID, videoID := c.Param("id"), c.Param("videoId")
	playlist, err := h.PlaylistService.RemoveVideo(caller, playlistID, videoID)
	if err != nil {
		sendServiceError(c, playlistLog(caller, playlistID).WithField("video_id", videoID), err, "移除视频")
		return
	}
	sendSuccess(c, http.StatusOK, "视频已移出播放列表", dto.ToPlaylistResponse(playlist))
}

func playlistLog(caller service.Caller, playlistID string) *logrus.Entry {
	return logger.Log.WithField("username", caller.Username).WithField("playlist_id", playlistID)
}
