package handler

import (
	"StreamHub/internal/dto"
	"StreamHub/internal/service"
	"StreamHub/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type LikeHandler interface {
	ToggleLike(c *gin.Context)
}

type likeHandler struct {
	LikeService service.LikeService
}

func NewLikeHandler(likeService service.LikeService) LikeHandler {
	return &likeHandler{LikeService: likeService}
}

// is_like用指针，区分false和没传
type ToggleLikeRequest struct {
	IsLike *bool `json:"is_like" binding:"required"`
}

// 赞/踩：body为{"is_like": true}是赞，false是踩；重复调用会覆盖上一次的选择
func (h *likeHandler) ToggleLike(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Warn("点赞参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "is_like必须是true或false")
		return
	}

	videoID := c.Param("id")
	logCtx := logger.Log.WithField("username", caller.Username).WithField("video_id", videoID)
	result, err := h.LikeService.ToggleLike(caller, videoID, *req.IsLike)
	if err != nil {
		sendServiceError(c, logCtx, err, "点赞")
		return
	}
	logCtx.WithField("is_like", *req.IsLike).Info("点赞状态已更新")
	sendSuccess(c, http.StatusOK, "操作成功", dto.ToLikeResponse(result.Like, result.Stats))
}
