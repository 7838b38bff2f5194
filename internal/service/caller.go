package service

import "StreamHub/internal/model"

// Caller 是当前请求的身份，由中间件从token中解析，handler显式传给service
type Caller struct {
	UserID   string
	Username string
	Role     string
}

func (c Caller) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}

func (c Caller) IsAnonymous() bool {
	return c.Username == ""
}
