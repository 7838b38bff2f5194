package service

import (
	"StreamHub/internal/model"
	"StreamHub/internal/repository"
	"StreamHub/pkg/apperr"
)

type CommentService interface {
	AddComment(caller Caller, videoID, content string) (*model.Comment, error)
	// 获取一个视频的评论，时间倒序分页
	ListComments(videoID string, page, pageSize int) ([]model.Comment, error)
	DeleteComment(caller Caller, commentID string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
	}
}

// 创建评论：1、校验内容 2、确认视频存在 3、写库并清掉视频缓存
func (s *commentService) AddComment(caller Caller, videoID, content string) (*model.Comment, error) {
	content, err := requireText(content, "评论内容", maxCommentLen)
	if err != nil {
		return nil, err
	}
	if err := ensureVideoExists(s.videoRepo, videoID); err != nil {
		return nil, err
	}

	newComment := &model.Comment{
		VideoID:  videoID,
		Username: caller.Username,
		Content:  content,
	}
	if err := s.commentRepo.Create(newComment); err != nil {
		return nil, apperr.Internal("创建评论失败", err)
	}
	invalidateVideo(s.videoRepo, videoID)
	return newComment, nil
}

func (s *commentService) ListComments(videoID string, page, pageSize int) ([]model.Comment, error) {
	if err := ensureVideoExists(s.videoRepo, videoID); err != nil {
		return nil, err
	}
	// offset: “跳过” 多少条记录，再开始取数据
	offset, limit := normalizePage(page, pageSize)
	comments, err := s.commentRepo.FindByVideoID(videoID, offset, limit)
	if err != nil {
		return nil, apperr.Internal("获取评论列表失败", err)
	}
	return comments, nil
}

// DeleteComment 评论作者本人或管理员可以删除
func (s *commentService) DeleteComment(caller Caller, commentID string) error {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound("评论不存在")
		}
		return apperr.Internal("查询评论失败", err)
	}
	if err := CanDeleteComment(caller, comment).Err(); err != nil {
		return err
	}
	if err := s.commentRepo.Delete(commentID); err != nil {
		return apperr.Internal("删除评论失败", err)
	}
	invalidateVideo(s.videoRepo, comment.VideoID)
	return nil
}

func ensureVideoExists(videoRepo repository.VideoRepository, videoID string) error {
	if _, err := videoRepo.FindByID(videoID); err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound("视频不存在")
		}
		return apperr.Internal("查询视频失败", err)
	}
	return nil
}
