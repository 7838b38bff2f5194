package dto

import (
	"StreamHub/internal/model"
	"time"
)

// UserResponse 是对外公开的用户信息，永远不包含密码
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func ToUserResponses(users []model.User) []UserResponse {
	response := make([]UserResponse, 0, len(users))
	for i := range users {
		response = append(response, ToUserResponse(&users[i]))
	}
	return response
}

// LoginResponse 登录成功返回的令牌
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
}
