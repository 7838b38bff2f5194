package service

import (
	"StreamHub/internal/data"
	"StreamHub/internal/model"
	"StreamHub/internal/repository"
	"StreamHub/pkg/apperr"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// AdminService 所有方法第一步都检查调用者是不是管理员
type AdminService interface {
	ListUsers(caller Caller) ([]model.User, error)
	GetUser(caller Caller, userID string) (*model.User, error)
	CreateUser(caller Caller, username, password, role string) (*model.User, error)
	UpdateUser(caller Caller, userID string, update UserUpdate) (*model.User, error)
	DeleteUser(caller Caller, userID string) (*model.User, error)
	ChangeUserRole(caller Caller, userID, role string) (*model.User, error)

	ListVideos(caller Caller) ([]VideoSummary, error)
	GetVideoDetails(caller Caller, videoID string) (*VideoDetail, error)
	UpdateVideo(caller Caller, videoID string, update VideoUpdate) (*model.Video, error)
	DeleteVideo(caller Caller, videoID string) (*model.Video, error)
	DeleteComment(caller Caller, commentID string) error
}

// UserUpdate 中为空的字段不修改
type UserUpdate struct {
	Password string
	Role     string
}

// VideoUpdate 中为空的字段不修改
type VideoUpdate struct {
	Title  string
	Status string
}

// VideoSummary 是管理后台视频列表的一行
type VideoSummary struct {
	Video    model.Video
	Stats    model.LikeStats
	Comments int64
}

type adminService struct {
	userRepo    repository.UserRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
	uow         data.UnitOfWork
	hashCost    int
}

func NewAdminService(userRepo repository.UserRepository, videoRepo repository.VideoRepository, commentRepo repository.CommentRepository, likeRepo repository.LikeRepository, uow data.UnitOfWork) AdminService {
	return &adminService{
		userRepo:    userRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		uow:         uow,
		hashCost:    bcrypt.DefaultCost,
	}
}

// ========== 用户管理 ==========

func (s *adminService) ListUsers(caller Caller) ([]model.User, error) {
	if err := CanAdminister(caller).Err(); err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, apperr.Internal("获取用户列表失败", err)
	}
	return users, nil
}

func (s *adminService) GetUser(caller Caller, userID string) (*model.User, error) {
	if err := CanAdminister(caller).Err(); err != nil {
		return nil, err
	}
	return s.findUser(userID)
}

// CreateUser 管理员可以直接创建ADMIN角色的用户，role为空时是USER
func (s *adminService) CreateUser(caller Caller, username, password, role string) (*model.User, error) {
	if err := CanAdminister(caller).Err(); err != nil {
		return nil, err
	}
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}
	if role == "" {
		role = model.RoleUser
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, apperr.Conflict("用户名已存在")
	} else if !repository.IsNotFound(err) {
		return nil, apperr.Internal("查询用户失败", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, apperr.Internal("密码加密失败", err)
	}
	user := &model.User{Username: username, Password: string(hashed), Role: role}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.Conflict("用户名已存在")
		}
		return nil, apperr.Internal("创建用户失败", err)
	}
	return user, nil
}

// UpdateUser 修改密码和/或角色；admin账号的角色同样受保护
func (s *adminService) UpdateUser(caller Caller, userID string, update UserUpdate) (*model.User, error) {
	if err := CanAdminister(caller).Err(); err != nil {
		return nil, err
	}
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	if update.Password != "" {
		if err := validatePassword(update.Password); err != nil {
			return nil, err
		}
	}
	if update.Role != "" {
		if err := validateRole(update.Role); err != nil {
			return nil, err
		}
		if err := CanChangeRole(user, update.Role).Err(); err != nil {
			return nil, err
		}
	}

	// 全部校验通过后再修改
	if update.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(update.Password), s.hashCost)
		if err != nil {
			return nil, apperr.Internal("密码加密失败", err)
		}
		user.Password = string(hashed)
	}
	if update.Role != "" {
		user.Role = update.Role
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperr.Internal("更新用户失败", err)
	}
	return user, nil
}

func (s *adminService) DeleteUser(caller Caller, userID string) (*model.User, error) {
	if err := CanAdminister(caller).Err(); err != nil {
		return nil, err
	}
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}
	if err := CanDeleteUser(user).Err(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Delete(userID); err != nil {
		return nil, apperr.Internal("删除用户失败", err)
	}
	return user, nil
}

func (s *adminService) ChangeUserRole(caller Caller, userID, role string) (*model.User, error) {
	if err := CanAdminister(caller).Err(); err != nil {
		return nil, err
	}
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}
	if err := CanChangeRole(user, role).Err(); err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperr.Internal("更新角色失败", err)
	}
	return user, nil
}

func (s *adminService) findUser(userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("用户不存在")
		}
		return nil, apperr.Internal("查询用户失败", err)
	}
	return user, nil
}

// ========== 视频管理 ==========

// ListVideos 返回全部视频，附带赞、踩和评论数（两次分组统计，不把明细都查出来）
func (s *adminService) ListVideos(caller Caller) ([]VideoSummary, error) {
	if err := CanAdminister(caller).Err(); err != nil {
		return nil, err
	}
	videos, err := s.videoRepo.FindAll(repository.VideoFilter{})
	if err != nil {
		return nil, apperr.Internal("获取视频列表失败", err)
	}
	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.ID)
	}
	likeStats, err := s.likeRepo.CountByVideoIDs(ids)
	if err != nil {
		return nil, apperr.Internal("统计点赞失败", err)
	}
	commentCounts, err := s.commentRepo.CountByVideoIDs(ids)
	if err != nil {
		return nil, apperr.Internal("统计评论失败", err)
	}

	summaries := make([]VideoSummary, 0, len(videos))
	for _, v := range videos {
		summaries = append(summaries, VideoSummary{
			Video:    v,
			Stats:    likeStats[v.ID],
			Comments: commentCounts[v.ID],
		})
	}
	return summaries, nil
}

// GetVideoDetails 直接读数据库，不走缓存
func (s *adminService) GetVideoDetails(caller Caller, videoID string) (*VideoDetail, error) {
	if err := CanAdminister(caller).Err(); err != nil {
		return nil, err
	}
	video, err := s.videoRepo.FindWithRelations(videoID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("视频不存在")
		}
		return nil, apperr.Internal("查询视频失败", err)
	}
	return newVideoDetail(video), nil
}

// UpdateVideo 只校验状态属于四个枚举值，不校验状态流转
func (s *adminService) UpdateVideo(caller Caller, videoID string, update VideoUpdate) (*model.Video, error) {
	if err := CanAdminister(caller).Err(); err != nil {
		return nil, err
	}
	video, err := s.findVideo(videoID)
	if err != nil {
		return nil, err
	}
	if update.Title != "" {
		title, err := requireText(update.Title, "标题", maxTitleLen)
		if err != nil {
			return nil, err
		}
		video.Title = title
	}
	if update.Status != "" {
		if !model.IsValidStatus(update.Status) {
			return nil, apperr.Validation("无效的视频状态")
		}
		video.Status = update.Status
	}
	if err := s.videoRepo.Update(video); err != nil {
		return nil, apperr.Internal("更新视频失败", err)
	}
	invalidateVideo(s.videoRepo, videoID)
	return video, nil
}

// DeleteVideo 管理员删除不检查上传者
func (s *adminService) DeleteVideo(caller Caller, videoID string) (*model.Video, error) {
	if err := CanAdminister(caller).Err(); err != nil {
		return nil, err
	}
	video, err := s.findVideo(videoID)
	if err != nil {
		return nil, err
	}
	if err := deleteVideoCascade(s.uow, s.videoRepo, videoID); err != nil {
		return nil, err
	}
	return video, nil
}

func (s *adminService) DeleteComment(caller Caller, commentID string) error {
	if err := CanAdminister(caller).Err(); err != nil {
		return err
	}
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return apperr.NotFound("评论不存在")
		}
		return apperr.Internal("查询评论失败", err)
	}
	if err := s.commentRepo.Delete(commentID); err != nil {
		return apperr.Internal("删除评论失败", err)
	}
	invalidateVideo(s.videoRepo, comment.VideoID)
	return nil
}

func (s *adminService) findVideo(videoID string) (*model.Video, error) {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("视频不存在")
		}
		return nil, apperr.Internal("查询视频失败", err)
	}
	return video, nil
}
