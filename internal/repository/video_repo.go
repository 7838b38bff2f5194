package repository

import (
	"StreamHub/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// VideoFilter 是视频列表的筛选条件，空字符串表示不过滤
type VideoFilter struct {
	Status   string
	Uploader string
	Offset   int
	Limit    int
}

type VideoRepository interface {
	Create(video *model.Video) error
	FindAll(filter VideoFilter) ([]model.Video, error)
	FindByID(videoID string) (*model.Video, error)
	// 连同评论（时间倒序）和点赞记录一起查出来
	FindWithRelations(videoID string) (*model.Video, error)
	FindByIDs(videoIDs []string) ([]model.Video, error)
	Update(video *model.Video) error
	// 返回影响行数，0表示视频不存在
	IncrementViews(videoID string) (int64, error)
	Delete(videoID string) error

	// 缓存的是带评论和点赞的完整视频，rdb为nil时全部是空操作
	GetVideoCache(videoID string) (*model.Video, error)
	SetVideoCache(video *model.Video) error
	DeleteVideoCache(videoID string) error

	WithTx(tx *gorm.DB) VideoRepository
}

type videoRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewVideoRepository(db *gorm.DB, rdb *redis.Client) VideoRepository {
	return &videoRepository{
		db:  db,
		rdb: rdb,
	}
}

// WithTx 返回一个使用事务的实例，事务里不操作Redis
func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{
		db: tx,
	}
}

func (r *videoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// 按时间倒序查询视频列表
func (r *videoRepository) FindAll(filter VideoFilter) ([]model.Video, error) {
	var videos []model.Video
	q := r.db.Model(&model.Video{})
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Uploader != "" {
		q = q.Where("uploader = ?", filter.Uploader)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	err := q.Order("created_at desc").Find(&videos).Error
	return videos, err
}

func (r *videoRepository) FindByID(videoID string) (*model.Video, error) {
	var video model.Video
	if err := r.db.Where("id = ?", videoID).First(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) FindWithRelations(videoID string) (*model.Video, error) {
	var video model.Video
	err := r.db.
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc")
		}).
		Preload("Likes").
		Where("id = ?", videoID).
		First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// IN查询不保证顺序，调用方按需要重新排列
func (r *videoRepository) FindByIDs(videoIDs []string) ([]model.Video, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}
	var videos []model.Video
	err := r.db.Where("id IN ?", videoIDs).Find(&videos).Error
	return videos, err
}

func (r *videoRepository) Update(video *model.Video) error {
	// Omit掉关联，避免Save顺带把Preload出来的评论和点赞也写一遍
	return r.db.Omit("Comments", "Likes").Save(video).Error
}

func (r *videoRepository) IncrementViews(videoID string) (int64, error) {
	// UPDATE `videos` SET `views` = `views` + 1 WHERE id = ?，原子更新，不会丢失并发的计数
	result := r.db.Model(&model.Video{}).Where("id = ?", videoID).UpdateColumn("views", gorm.Expr("views + ?", 1))
	return result.RowsAffected, result.Error
}

func (r *videoRepository) Delete(videoID string) error {
	return r.db.Where("id = ?", videoID).Delete(&model.Video{}).Error
}

// 返回存储单个视频信息的字符串Key
func (r *videoRepository) keyVideoInfo(videoID string) string {
	return fmt.Sprintf("streamhub:video:info:%s", videoID)
}

// 从Redis缓存中获取单个Video信息，缓存不存在时返回(nil, nil)
func (r *videoRepository) GetVideoCache(videoID string) (*model.Video, error) {
	if r.rdb == nil {
		return nil, nil
	}
	videoJSON, err := r.rdb.Get(context.Background(), r.keyVideoInfo(videoID)).Result()
	if err == redis.Nil {
		return nil, nil // 缓存不存在，但是Redis正常工作
	} else if err != nil {
		return nil, err // Redis本身出错了
	}
	var video model.Video
	if err := json.Unmarshal([]byte(videoJSON), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// 将单个视频信息存入Redis缓存
func (r *videoRepository) SetVideoCache(video *model.Video) error {
	if r.rdb == nil {
		return nil
	}
	videoJSON, err := json.Marshal(video)
	if err != nil {
		return err
	}
	// 设置过期时间，再加上随机性防止缓存雪崩
	expiration := time.Minute*5 + time.Duration(rand.Intn(60))*time.Second
	return r.rdb.Set(context.Background(), r.keyVideoInfo(video.ID), videoJSON, expiration).Err()
}

func (r *videoRepository) DeleteVideoCache(videoID string) error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Del(context.Background(), r.keyVideoInfo(videoID)).Err()
}
