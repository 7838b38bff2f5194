package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 所有实体的ID都是UUID字符串，插入前自动生成；不用软删除，删除视频时评论和点赞要真正消失
type BaseModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate 是gorm的钩子，ID为空时生成一个新的UUID
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
