package service

import (
	"StreamHub/internal/model"
	"StreamHub/internal/repository"
	"StreamHub/pkg/apperr"
	"errors"
)

type ChannelService interface {
	GetChannelInfo(username string) (*ChannelInfo, error)
	Subscribe(caller Caller, channel string) error
	Unsubscribe(caller Caller, channel string) error
	CheckSubscription(caller Caller, channel string) (bool, error)
	GetSubscriberCount(channel string) (int64, error)
}

// ChannelInfo 是一个用户的公开主页：已就绪的视频、总播放量、粉丝数
type ChannelInfo struct {
	Username        string
	VideoCount      int
	TotalViews      int64
	SubscriberCount int64
	Videos          []model.Video
}

type channelService struct {
	userRepo  repository.UserRepository
	videoRepo repository.VideoRepository
	subRepo   repository.SubscriptionRepository
}

func NewChannelService(userRepo repository.UserRepository, videoRepo repository.VideoRepository, subRepo repository.SubscriptionRepository) ChannelService {
	return &channelService{
		userRepo:  userRepo,
		videoRepo: videoRepo,
		subRepo:   subRepo,
	}
}

func (s *channelService) GetChannelInfo(username string) (*ChannelInfo, error) {
	if err := s.ensureChannel(username); err != nil {
		return nil, err
	}
	// 只统计READY的视频，FindAll已经按时间倒序
	videos, err := s.videoRepo.FindAll(repository.VideoFilter{Uploader: username, Status: model.StatusReady})
	if err != nil {
		return nil, apperr.Internal("获取频道视频失败", err)
	}
	var totalViews int64
	for _, v := range videos {
		totalViews += v.Views
	}
	count, err := s.subRepo.CountByChannel(username)
	if err != nil {
		return nil, apperr.Internal("统计粉丝数失败", err)
	}
	return &ChannelInfo{
		Username:        username,
		VideoCount:      len(videos),
		TotalViews:      totalViews,
		SubscriberCount: count,
		Videos:          videos,
	}, nil
}

// 关注：1、不能关注自己 2、频道必须存在 3、不能重复关注
func (s *channelService) Subscribe(caller Caller, channel string) error {
	if caller.Username == channel {
		return apperr.Validation("不能关注自己")
	}
	if err := s.ensureChannel(channel); err != nil {
		return err
	}

	_, err := s.subRepo.Find(caller.Username, channel)
	if err == nil {
		return apperr.Conflict("您已经关注了该频道")
	}
	if !repository.IsNotFound(err) {
		return apperr.Internal("查询关注关系失败", err)
	}

	sub := &model.Subscription{Subscriber: caller.Username, Channel: channel}
	if err := s.subRepo.Create(sub); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return apperr.Conflict("您已经关注了该频道")
		}
		return apperr.Internal("关注失败", err)
	}
	return nil
}

func (s *channelService) Unsubscribe(caller Caller, channel string) error {
	sub, err := s.subRepo.Find(caller.Username, channel)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound("您还没有关注该频道")
		}
		return apperr.Internal("查询关注关系失败", err)
	}
	if err := s.subRepo.Delete(sub.ID); err != nil {
		return apperr.Internal("取消关注失败", err)
	}
	return nil
}

func (s *channelService) CheckSubscription(caller Caller, channel string) (bool, error) {
	_, err := s.subRepo.Find(caller.Username, channel)
	if err == nil {
		return true, nil
	}
	if repository.IsNotFound(err) {
		return false, nil
	}
	return false, apperr.Internal("查询关注关系失败", err)
}

func (s *channelService) GetSubscriberCount(channel string) (int64, error) {
	count, err := s.subRepo.CountByChannel(channel)
	if err != nil {
		return 0, apperr.Internal("统计粉丝数失败", err)
	}
	return count, nil
}

func (s *channelService) ensureChannel(username string) error {
	if _, err := s.userRepo.FindByUsername(username); err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound("频道不存在")
		}
		return apperr.Internal("查询用户失败", err)
	}
	return nil
}
