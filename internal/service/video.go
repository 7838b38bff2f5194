package service

import (
	"StreamHub/internal/data"
	"StreamHub/internal/event"
	"StreamHub/internal/model"
	"StreamHub/internal/repository"
	"StreamHub/internal/storage"
	"StreamHub/pkg/apperr"
	"StreamHub/pkg/logger"
	"context"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// 上传URL默认有效60分钟
const DefaultUploadTTL = 60 * time.Minute

type VideoService interface {
	ListVideos(query VideoQuery) ([]model.Video, error)
	GetVideo(videoID string) (*VideoDetail, error)
	IncreaseView(videoID string) error
	CreateUploadRequest(ctx context.Context, caller Caller, title, duration string) (*UploadTicket, error)
	DeleteVideo(caller Caller, videoID string) error
	// ApplyStatus 由转码流水线的状态消息触发，只校验状态是否合法
	ApplyStatus(videoID, status string, streamingURL *string) error
}

// VideoQuery 是视频列表的查询参数
type VideoQuery struct {
	Status   string
	Uploader string
	Page     int
	PageSize int
}

// VideoDetail 是带评论（Video.Comments，时间倒序）和赞踩统计的视频
type VideoDetail struct {
	Video *model.Video
	Stats model.LikeStats
}

// UploadTicket 是上传请求的结果：新建的PENDING视频和它的上传地址
type UploadTicket struct {
	Video  *model.Video
	Upload *storage.UploadURL
}

type videoService struct {
	sf singleflight.Group

	videoRepo repository.VideoRepository
	uow       data.UnitOfWork
	signer    storage.Signer
	publisher event.Publisher
	uploadTTL time.Duration
}

func NewVideoService(videoRepo repository.VideoRepository, uow data.UnitOfWork, signer storage.Signer, publisher event.Publisher, uploadTTL time.Duration) VideoService {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	if uploadTTL <= 0 {
		uploadTTL = DefaultUploadTTL
	}
	return &videoService{
		videoRepo: videoRepo,
		uow:       uow,
		signer:    signer,
		publisher: publisher,
		uploadTTL: uploadTTL,
	}
}

func (s *videoService) ListVideos(query VideoQuery) ([]model.Video, error) {
	if query.Status != "" && !model.IsValidStatus(query.Status) {
		return nil, apperr.Validation("无效的视频状态")
	}
	offset, limit := normalizePage(query.Page, query.PageSize)
	videos, err := s.videoRepo.FindAll(repository.VideoFilter{
		Status:   query.Status,
		Uploader: query.Uploader,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return nil, apperr.Internal("获取视频列表失败", err)
	}
	return videos, nil
}

// 根据videoID查找视频：1、查找Redis缓存 2、缓存未命中时通过SingleFlight合并并发的数据库查询 3、写回缓存
func (s *videoService) GetVideo(videoID string) (*VideoDetail, error) {
	video, err := s.videoRepo.GetVideoCache(videoID)
	if err != nil {
		// Redis本身出错不影响读数据库
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("读取视频缓存失败")
	}
	if err == nil && video != nil {
		return newVideoDetail(video), nil
	}

	result, err, _ := s.sf.Do("get_video_"+videoID, func() (interface{}, error) {
		dbVideo, dbErr := s.videoRepo.FindWithRelations(videoID)
		if dbErr != nil {
			return nil, dbErr
		}
		if cacheErr := s.videoRepo.SetVideoCache(dbVideo); cacheErr != nil {
			logger.Log.WithError(cacheErr).WithField("video_id", videoID).Warn("写入视频缓存失败")
		}
		return dbVideo, nil
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("视频不存在")
		}
		return nil, apperr.Internal("查询视频失败", err)
	}
	// singleflight的返回值是interface{}，需要断言
	return newVideoDetail(result.(*model.Video)), nil
}

func newVideoDetail(video *model.Video) *VideoDetail {
	detail := &VideoDetail{Video: video}
	for _, like := range video.Likes {
		if like.IsLike {
			detail.Stats.Likes++
		} else {
			detail.Stats.Dislikes++
		}
	}
	return detail
}

// IncreaseView 视频不存在时什么也不做，也不报错
func (s *videoService) IncreaseView(videoID string) error {
	affected, err := s.videoRepo.IncrementViews(videoID)
	if err != nil {
		return apperr.Internal("更新播放量失败", err)
	}
	if affected > 0 {
		s.invalidate(videoID)
	}
	return nil
}

// 上传请求：1、创建PENDING状态的视频 2、为<videoID>.mp4签发只写URL 3、通知处理流水线
func (s *videoService) CreateUploadRequest(ctx context.Context, caller Caller, title, duration string) (*UploadTicket, error) {
	title, err := requireText(title, "标题", maxTitleLen)
	if err != nil {
		return nil, err
	}
	duration = strings.TrimSpace(duration)
	if duration == "" {
		duration = model.DefaultDuration
	} else if !durationPattern.MatchString(duration) {
		return nil, apperr.Validation("时长格式应为 mm:ss 或 hh:mm:ss")
	}

	video := &model.Video{
		Title:    title,
		Status:   model.StatusPending,
		Uploader: caller.Username,
		Duration: duration,
		Views:    0,
	}
	if err := s.videoRepo.Create(video); err != nil {
		return nil, apperr.Internal("创建视频失败", err)
	}

	logCtx := logger.Log.WithField("video_id", video.ID).WithField("uploader", caller.Username)
	upload, err := s.signer.PresignUpload(ctx, storage.ObjectKey(video.ID), s.uploadTTL)
	if err != nil {
		// 没有上传地址的PENDING视频永远不会被处理，直接删掉
		if delErr := s.videoRepo.Delete(video.ID); delErr != nil {
			logCtx.WithError(delErr).Error("删除无法上传的视频失败")
		}
		return nil, apperr.Internal("生成上传地址失败", err)
	}

	msg := event.VideoUploadMessage{
		VideoID:   video.ID,
		ObjectKey: upload.ObjectKey,
		Uploader:  video.Uploader,
		Title:     video.Title,
	}
	if err := s.publisher.PublishVideoUpload(msg); err != nil {
		// 流水线也会监听存储事件，消息发送失败只记日志
		logCtx.WithError(err).Error("上传事件发布失败")
	}
	return &UploadTicket{Video: video, Upload: upload}, nil
}

// DeleteVideo 上传者本人或管理员可以删除，评论和点赞在同一个事务里一起删掉
func (s *videoService) DeleteVideo(caller Caller, videoID string) error {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound("视频不存在")
		}
		return apperr.Internal("查询视频失败", err)
	}
	if err := CanDeleteVideo(caller, video).Err(); err != nil {
		return err
	}
	return deleteVideoCascade(s.uow, s.videoRepo, videoID)
}

// ApplyStatus 更新状态；streamingURL为nil时保留原来的地址
func (s *videoService) ApplyStatus(videoID, status string, streamingURL *string) error {
	if !model.IsValidStatus(status) {
		return apperr.Validation("无效的视频状态")
	}
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound("视频不存在")
		}
		return apperr.Internal("查询视频失败", err)
	}
	video.Status = status
	if streamingURL != nil {
		video.StreamingURL = streamingURL
	}
	if err := s.videoRepo.Update(video); err != nil {
		return apperr.Internal("更新视频状态失败", err)
	}
	s.invalidate(videoID)
	return nil
}

// 删除视频和它的评论、点赞，并清掉缓存
func deleteVideoCascade(uow data.UnitOfWork, videoRepo repository.VideoRepository, videoID string) error {
	err := uow.Execute(func(repos *data.TransactionalRepositories) error {
		return data.DeleteVideoCascade(repos, videoID)
	})
	if err != nil {
		return apperr.Internal("删除视频失败", err)
	}
	invalidateVideo(videoRepo, videoID)
	return nil
}

func (s *videoService) invalidate(videoID string) {
	invalidateVideo(s.videoRepo, videoID)
}

// invalidateVideo 视频、评论、点赞有变化时删除缓存，失败只记日志（缓存最多5分钟后自然过期）
func invalidateVideo(videoRepo repository.VideoRepository, videoID string) {
	if err := videoRepo.DeleteVideoCache(videoID); err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("删除视频缓存失败")
	}
}
