package handler

import (
	"StreamHub/internal/dto"
	"StreamHub/internal/service"
	"StreamHub/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CommentHandler interface {
	AddComment(c *gin.Context)
	ListComments(c *gin.Context)
	DeleteComment(c *gin.Context)
}

type commentHandler struct {
	CommentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) CommentHandler {
	return &commentHandler{CommentService: commentService}
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

// 视频评论：1、解析URL中的视频ID和请求体 2、取出调用者 3、创建评论并返回
func (h *commentHandler) AddComment(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Warn("评论参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数") // 400
		return
	}

	videoID := c.Param("id")
	// 正式进入业务前，将logger格式整理好
	logCtx := logger.Log.WithField("username", caller.Username).WithField("video_id", videoID)
	comment, err := h.CommentService.AddComment(caller, videoID, req.Content)
	if err != nil {
		sendServiceError(c, logCtx, err, "创建评论")
		return
	}
	logCtx.WithField("comment_id", comment.ID).Info("评论创建成功")
	sendSuccess(c, http.StatusCreated, "评论成功", dto.ToCommentResponse(comment))
}

func (h *commentHandler) ListComments(c *gin.Context) {
	videoID := c.Param("id")
	comments, err := h.CommentService.ListComments(videoID, queryInt(c, "page"), queryInt(c, "page_size"))
	if err != nil {
		sendServiceError(c, logger.Log.WithField("video_id", videoID), err, "获取评论列表")
		return
	}
	sendSuccess(c, http.StatusOK, "成功获取评论列表", dto.ToCommentResponses(comments))
}

func (h *commentHandler) DeleteComment(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		return
	}
	commentID := c.Param("id")
	logCtx := logger.Log.WithField("username", caller.Username).WithField("comment_id", commentID)
	if err := h.CommentService.DeleteComment(caller, commentID); err != nil {
		sendServiceError(c, logCtx, err, "删除评论")
		return
	}
	logCtx.Info("评论已删除")
	sendSuccess(c, http.StatusOK, "评论已删除", nil)
}
