package repository

import (
	"StreamHub/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(commentID string) (*model.Comment, error)
	// 分页获取视频的评论，时间倒序
	FindByVideoID(videoID string, offset, limit int) ([]model.Comment, error)
	// 按视频统计评论数
	CountByVideoIDs(videoIDs []string) (map[string]int64, error)
	Delete(commentID string) error
	DeleteByVideoID(videoID string) error

	WithTx(tx *gorm.DB) CommentRepository
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// WithTx 返回一个新的、使用事务的 commentRepository 实例
func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) FindByID(commentID string) (*model.Comment, error) {
	var result model.Comment
	if err := r.db.Where("id = ?", commentID).First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *commentRepository) FindByVideoID(videoID string, offset, limit int) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.
		Where("video_id = ?", videoID).
		Offset(offset).
		Limit(limit).
		Order("created_at desc").
		Find(&comments).Error
	return comments, err
}

type videoCount struct {
	VideoID string
	Total   int64
}

func (r *commentRepository) CountByVideoIDs(videoIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(videoIDs))
	if len(videoIDs) == 0 {
		return counts, nil
	}
	var rows []videoCount
	err := r.db.Model(&model.Comment{}).
		Select("video_id, COUNT(*) AS total").
		Where("video_id IN ?", videoIDs).
		Group("video_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.VideoID] = row.Total
	}
	return counts, nil
}

func (r *commentRepository) Delete(commentID string) error {
	return r.db.Where("id = ?", commentID).Delete(&model.Comment{}).Error
}

func (r *commentRepository) DeleteByVideoID(videoID string) error {
	return r.db.Where("video_id = ?", videoID).Delete(&model.Comment{}).Error
}
