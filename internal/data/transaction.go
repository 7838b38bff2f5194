package data

import (
	"StreamHub/internal/repository"

	"gorm.io/gorm"
)

// UnitOfWork 定义了我们事务管理器的接口
type UnitOfWork interface {
	// Execute 将一个函数包裹在数据库事务中执行，fn返回error时整个事务回滚
	Execute(fn func(repos *TransactionalRepositories) error) error
}

// TransactionalRepositories 持有所有需要在同一个事务中操作的 Repository
type TransactionalRepositories struct {
	VideoRepo   repository.VideoRepository
	CommentRepo repository.CommentRepository
	LikeRepo    repository.LikeRepository
}

type gormUnitOfWork struct {
	db          *gorm.DB
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
}

// NewUnitOfWork 接收的是原始的、非事务的 repositories，每次Execute时再绑定到事务上
func NewUnitOfWork(db *gorm.DB, videoRepo repository.VideoRepository, commentRepo repository.CommentRepository, likeRepo repository.LikeRepository) UnitOfWork {
	return &gormUnitOfWork{
		db:          db,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
	}
}

func (u *gormUnitOfWork) Execute(fn func(repos *TransactionalRepositories) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		// 临时创建“一次性”的、绑定了特定事务的Repo副本
		return fn(&TransactionalRepositories{
			VideoRepo:   u.videoRepo.WithTx(tx),
			CommentRepo: u.commentRepo.WithTx(tx),
			LikeRepo:    u.likeRepo.WithTx(tx),
		})
	})
}

// DeleteVideoCascade 先删子表（评论、点赞），再删视频本身
func DeleteVideoCascade(repos *TransactionalRepositories, videoID string) error {
	if err := repos.CommentRepo.DeleteByVideoID(videoID); err != nil {
		return err
	}
	if err := repos.LikeRepo.DeleteByVideoID(videoID); err != nil {
		return err
	}
	return repos.VideoRepo.Delete(videoID)
}
