package service

import (
	"StreamHub/internal/model"
	"StreamHub/internal/repository"
	"StreamHub/pkg/apperr"
	"errors"
)

type LikeService interface {
	// 每个用户对每个视频只有一条记录，再次调用会改写IsLike而不是新增
	ToggleLike(caller Caller, videoID string, isLike bool) (*LikeResult, error)
}

type LikeResult struct {
	Like  *model.Like
	Stats model.LikeStats
}

type likeService struct {
	likeRepo  repository.LikeRepository
	videoRepo repository.VideoRepository
}

func NewLikeService(likeRepo repository.LikeRepository, videoRepo repository.VideoRepository) LikeService {
	return &likeService{
		likeRepo:  likeRepo,
		videoRepo: videoRepo,
	}
}

// 赞/踩：1、确认视频存在 2、已有记录就改IsLike，没有就新建 3、返回最新的赞踩数
func (s *likeService) ToggleLike(caller Caller, videoID string, isLike bool) (*LikeResult, error) {
	if err := ensureVideoExists(s.videoRepo, videoID); err != nil {
		return nil, err
	}

	like, err := s.upsert(videoID, caller.Username, isLike)
	if err != nil {
		return nil, apperr.Internal("操作失败", err)
	}
	invalidateVideo(s.videoRepo, videoID)

	stats, err := s.likeRepo.CountByVideoIDs([]string{videoID})
	if err != nil {
		return nil, apperr.Internal("统计点赞失败", err)
	}
	return &LikeResult{Like: like, Stats: stats[videoID]}, nil
}

func (s *likeService) upsert(videoID, username string, isLike bool) (*model.Like, error) {
	existing, err := s.likeRepo.FindByVideoAndUser(videoID, username)
	if err == nil {
		existing.IsLike = isLike
		return existing, s.likeRepo.Update(existing)
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}

	like := &model.Like{VideoID: videoID, Username: username, IsLike: isLike}
	err = s.likeRepo.Create(like)
	if errors.Is(err, repository.ErrDuplicateKey) {
		// 同一个用户的另一个请求抢先插入了，改成更新那一行
		existing, err = s.likeRepo.FindByVideoAndUser(videoID, username)
		if err != nil {
			return nil, err
		}
		existing.IsLike = isLike
		return existing, s.likeRepo.Update(existing)
	}
	if err != nil {
		return nil, err
	}
	return like, nil
}
