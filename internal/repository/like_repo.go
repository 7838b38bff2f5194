package repository

import (
	"StreamHub/internal/model"
	"StreamHub/pkg/logger"

	"gorm.io/gorm"
)

type LikeRepository interface {
	FindByVideoAndUser(videoID, username string) (*model.Like, error)
	Create(like *model.Like) error
	Update(like *model.Like) error
	// 按视频统计赞和踩
	CountByVideoIDs(videoIDs []string) (map[string]model.LikeStats, error)
	DeleteByVideoID(videoID string) error

	WithTx(tx *gorm.DB) LikeRepository
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &likeRepository{db: tx}
}

func (r *likeRepository) FindByVideoAndUser(videoID, username string) (*model.Like, error) {
	var like model.Like
	err := r.db.Where("video_id = ? AND username = ?", videoID, username).First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// 联合唯一索引冲突时返回ErrDuplicateKey，说明同一个用户并发点了两次
func (r *likeRepository) Create(like *model.Like) error {
	if err := r.db.Create(like).Error; err != nil {
		err = translateError(err)
		if err != ErrDuplicateKey {
			logger.Log.WithError(err).WithField("video_id", like.VideoID).Error("添加点赞记录失败")
		}
		return err
	}
	return nil
}

// 只改is_like一列，UpdateColumn不会因为false是零值而跳过
func (r *likeRepository) Update(like *model.Like) error {
	return r.db.Model(&model.Like{}).Where("id = ?", like.ID).UpdateColumn("is_like", like.IsLike).Error
}

type likeCountRow struct {
	VideoID  string
	Likes    int64
	Dislikes int64
}

func (r *likeRepository) CountByVideoIDs(videoIDs []string) (map[string]model.LikeStats, error) {
	stats := make(map[string]model.LikeStats, len(videoIDs))
	if len(videoIDs) == 0 {
		return stats, nil
	}
	var rows []likeCountRow
	// CASE WHEN在MySQL和Postgres下都能用，is_like在MySQL里是tinyint，在Postgres里是boolean
	err := r.db.Model(&model.Like{}).
		Select("video_id, SUM(CASE WHEN is_like THEN 1 ELSE 0 END) AS likes, SUM(CASE WHEN is_like THEN 0 ELSE 1 END) AS dislikes").
		Where("video_id IN ?", videoIDs).
		Group("video_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats[row.VideoID] = model.LikeStats{Likes: row.Likes, Dislikes: row.Dislikes}
	}
	return stats, nil
}

func (r *likeRepository) DeleteByVideoID(videoID string) error {
	return r.db.Where("video_id = ?", videoID).Delete(&model.Like{}).Error
}
