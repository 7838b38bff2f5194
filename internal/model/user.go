package model

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"

	// 保留账号，不能删除，也不能降级
	ReservedAdminUsername = "admin"
)

type User struct {
	BaseModel        // 包括 ID, CreatedAt, UpdatedAt
	Username  string `gorm:"type:varchar(64);uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"type:varchar(16);not null;default:USER"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsReservedAdmin 判断是不是那个受保护的admin账号
func (u *User) IsReservedAdmin() bool {
	return u.Username == ReservedAdminUsername
}

func IsValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
