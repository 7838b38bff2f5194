package model

type Comment struct {
	BaseModel
	VideoID  string `gorm:"type:varchar(36);not null;index"`
	Username string `gorm:"type:varchar(64);not null;index"`
	// TEXT可以存很长的字符串，长度限制放在service层
	Content string `gorm:"type:text;not null"`
}

func (Comment) TableName() string {
	return "comments"
}
