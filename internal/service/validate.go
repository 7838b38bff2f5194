package service

import (
	"StreamHub/internal/model"
	"StreamHub/pkg/apperr"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 64
	minPasswordLen = 6
	// bcrypt只处理前72个字节，超过的直接拒绝
	maxPasswordLen = 72

	maxTitleLen        = 255
	maxCommentLen      = 2000
	maxPlaylistNameLen = 100
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	// mm:ss 或 hh:mm:ss
	durationPattern = regexp.MustCompile(`^\d{1,3}:[0-5]\d(:[0-5]\d)?$`)
)

func validateCredentials(username, password string) error {
	if username == "" || password == "" {
		return apperr.Validation("用户名和密码不能为空")
	}
	if len(username) < minUsernameLen {
		return apperr.Validation("用户名至少需要3个字符")
	}
	if len(username) > maxUsernameLen {
		return apperr.Validation("用户名不能超过64个字符")
	}
	if !usernamePattern.MatchString(username) {
		return apperr.Validation("用户名只能包含字母、数字和下划线")
	}
	return validatePassword(password)
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return apperr.Validation("密码至少需要6个字符")
	}
	if len(password) > maxPasswordLen {
		return apperr.Validation("密码不能超过72个字节")
	}
	return nil
}

func isReservedUsername(username string) bool {
	return strings.EqualFold(username, model.ReservedAdminUsername)
}

func validateRole(role string) error {
	if !model.IsValidRole(role) {
		return apperr.Validation("角色必须是USER或ADMIN")
	}
	return nil
}

// 去掉首尾空白后检查非空和长度（按字符计）
func requireText(value, field string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", apperr.Validation(field + "不能为空")
	}
	if utf8.RuneCountInString(value) > max {
		return "", apperr.Validation(field + "太长")
	}
	return value, nil
}

// 页码从1开始，pageSize默认20，最多100
func normalizePage(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return (page - 1) * pageSize, pageSize
}
