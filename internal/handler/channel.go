package handler

import (
	"StreamHub/internal/dto"
	"StreamHub/internal/service"
	"StreamHub/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ChannelHandler interface {
	GetChannel(c *gin.Context)
	GetSubscriberCount(c *gin.Context)
	CheckSubscription(c *gin.Context)
	Subscribe(c *gin.Context)
	Unsubscribe(c *gin.Context)
}

type channelHandler struct {
	ChannelService service.ChannelService
}

func NewChannelHandler(channelService service.ChannelService) ChannelHandler {
	return &channelHandler{ChannelService: channelService}
}

func (h *channelHandler) GetChannel(c *gin.Context) {
	username := c.Param("username")
	info, err := h.ChannelService.GetChannelInfo(username)
	if err != nil {
		sendServiceError(c, logger.Log.WithField("channel", username), err, "获取频道信息")
		return
	}
	sendSuccess(c, http.StatusOK, "成功获取频道信息", dto.ToChannelResponse(info))
}

func (h *channelHandler) GetSubscriberCount(c *gin.Context) {
	username := c.Param("username")
	count, err := h.ChannelService.GetSubscriberCount(username)
	if err != nil {
		sendServiceError(c, logger.Log.WithField("channel", username), err, "获取粉丝数")
		return
	}
	sendSuccess(c, http.StatusOK, "成功获取粉丝数", gin.H{"subscriber_count": count})
}

func (h *channelHandler) CheckSubscription(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	username := c.Param("username")
	subscribed, err := h.ChannelService.CheckSubscription(caller, username)
	if err != nil {
		sendServiceError(c, logger.Log.WithField("channel", username), err, "查询关注状态")
		return
	}
	sendSuccess(c, http.StatusOK, "成功获取关注状态", gin.H{"subscribed": subscribed})
}

func (h *channelHandler) Subscribe(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	username := c.Param("username")
	logCtx := logger.Log.WithField("subscriber", caller.Username).WithField("channel", username)
	if err := h.ChannelService.Subscribe(caller, username); err != nil {
		sendServiceError(c, logCtx, err, "关注")
		return
	}
	logCtx.Info("关注成功")
	sendSuccess(c, http.StatusCreated, "关注成功", nil)
}

func (h *channelHandler) Unsubscribe(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	username := c.Param("username")
	logCtx := logger.Log.WithField("subscriber", caller.Username).WithField("channel", username)
	if err := h.ChannelService.Unsubscribe(caller, username); err != nil {
		sendServiceError(c, logCtx, err, "取消关注")
		return
	}
	logCtx.Info("已取消关注")
	sendSuccess(c, http.StatusOK, "已取消关注", nil)
}
