package model

// 视频状态：PENDING -> PROCESSING -> READY，或者 PENDING/PROCESSING -> FAILED
// 状态由外部转码流水线或管理员修改，这里只校验是否属于这四个值
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusReady      = "READY"
	StatusFailed     = "FAILED"

	DefaultDuration = "00:00"
)

type Video struct {
	BaseModel
	Title        string  `gorm:"type:varchar(255);not null"`
	Status       string  `gorm:"type:varchar(16);not null;default:PENDING;index"`
	StreamingURL *string `gorm:"type:varchar(1024)"`
	Views        int64   `gorm:"not null;default:0"`
	Uploader     string  `gorm:"type:varchar(64);index"` // 上传者用户名
	Duration     string  `gorm:"type:varchar(16);not null;default:'00:00'"`

	// 只在需要时Preload，删除视频时由UnitOfWork显式地先删评论和点赞
	Comments []Comment `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
	Likes    []Like    `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE"`
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusProcessing, StatusReady, StatusFailed:
		return true
	}
	return false
}
