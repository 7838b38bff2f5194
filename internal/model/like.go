package model

// 一个用户对一个视频只有一行记录，IsLike区分赞和踩；联合唯一索引交给数据库查重
type Like struct {
	BaseModel
	VideoID  string `gorm:"type:varchar(36);not null;uniqueIndex:idx_like_video_user"`
	Username string `gorm:"type:varchar(64);not null;uniqueIndex:idx_like_video_user"`
	IsLike   bool   `gorm:"not null"`
}

func (Like) TableName() string {
	return "likes"
}

// LikeStats 是某个视频赞和踩的数量
type LikeStats struct {
	Likes    int64
	Dislikes int64
}
