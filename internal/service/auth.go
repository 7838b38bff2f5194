package service

import (
	"StreamHub/internal/model"
	"StreamHub/internal/repository"
	"StreamHub/pkg/apperr"
	"StreamHub/pkg/logger"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// 登录失败时不区分“用户不存在”和“密码错误”，避免泄露用户是否存在
const msgBadCredentials = "用户名或密码错误"

// 用户服务接口：注册、登录、校验令牌
type AuthService interface {
	Register(username, password string) (*model.User, error)
	Login(username, password string) (*LoginResult, error)
	ValidateToken(token string) (Caller, error)
	Me(caller Caller) (*model.User, error)
	// 启动时确保保留的admin账号存在
	EnsureAdmin(password string) error
}

type LoginResult struct {
	Token     string
	ExpiresIn int64 // 秒
	User      *model.User
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *TokenManager
	hashCost int
}

func NewAuthService(userRepo repository.UserRepository, tokens *TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
	}
}

// 注册逻辑：1、校验格式 2、禁止注册admin 3、检查是否重名 4、密码加密存储
func (s *authService) Register(username, password string) (*model.User, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}
	if isReservedUsername(username) {
		return nil, apperr.Validation(`不能使用"admin"注册账号`)
	}

	_, err := s.userRepo.FindByUsername(username)
	if err == nil {
		return nil, apperr.Conflict("用户名已存在")
	}
	if !repository.IsNotFound(err) {
		return nil, apperr.Internal("查询用户失败", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, apperr.Internal("密码加密失败", err)
	}

	newUser := &model.User{
		Username: username,
		Password: string(hashed),
		Role:     model.RoleUser, // 注册的永远是普通用户
	}
	if err := s.userRepo.Create(newUser); err != nil {
		// 两个请求同时注册同一个用户名，后到的被唯一索引挡住
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperr.Conflict("用户名已存在")
		}
		return nil, apperr.Internal("创建用户失败", err)
	}
	return newUser, nil
}

// 登录逻辑：1、检查库中是否有该用户名 2、加密后密码和输入密码比对 3、生成jwt签名
func (s *authService) Login(username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperr.Unauthorized("用户名和密码不能为空")
	}
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.Unauthorized(msgBadCredentials)
		}
		return nil, apperr.Internal("查询用户失败", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Unauthorized(msgBadCredentials)
	}

	token, _, err := s.tokens.Sign(user)
	if err != nil {
		return nil, apperr.Internal("生成令牌失败", err)
	}
	return &LoginResult{
		Token:     token,
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
		User:      user,
	}, nil
}

func (s *authService) ValidateToken(token string) (Caller, error) {
	return s.tokens.Parse(token)
}

func (s *authService) Me(caller Caller) (*model.User, error) {
	user, err := s.userRepo.FindByID(caller.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("用户不存在")
		}
		return nil, apperr.Internal("查询用户失败", err)
	}
	return user, nil
}

// EnsureAdmin 不存在就创建，存在但角色不对就改回ADMIN；不会重置已有密码
func (s *authService) EnsureAdmin(password string) error {
	user, err := s.userRepo.FindByUsername(model.ReservedAdminUsername)
	if err == nil {
		if user.Role == model.RoleAdmin {
			return nil
		}
		user.Role = model.RoleAdmin
		logger.Log.WithField("user_id", user.ID).Warn("admin账号角色异常，已恢复为ADMIN")
		return s.userRepo.Update(user)
	}
	if !repository.IsNotFound(err) {
		return err
	}

	if err := validatePassword(password); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return err
	}
	admin := &model.User{
		Username: model.ReservedAdminUsername,
		Password: string(hashed),
		Role:     model.RoleAdmin,
	}
	if err := s.userRepo.Create(admin); err != nil && !errors.Is(err, repository.ErrDuplicateKey) {
		return err
	}
	logger.Log.Info("已创建admin账号")
	return nil
}
