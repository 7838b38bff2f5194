package model

import "slices"

// Playlist 的视频按值保存，不做外键约束：视频被删除后，播放列表里可能还留着它的ID
type Playlist struct {
	BaseModel
	Name     string   `gorm:"type:varchar(100);not null"`
	Username string   `gorm:"type:varchar(64);not null;index"` // 所有者
	VideoIDs []string `gorm:"type:text;serializer:json"`
}

func (Playlist) TableName() string {
	return "playlists"
}

func (p *Playlist) HasVideo(videoID string) bool {
	return slices.Contains(p.VideoIDs, videoID)
}

// RemoveVideo 删除一个视频ID，返回是否真的删掉了
func (p *Playlist) RemoveVideo(videoID string) bool {
	i := slices.Index(p.VideoIDs, videoID)
	if i < 0 {
		return false
	}
	p.VideoIDs = slices.Delete(p.VideoIDs, i, i+1)
	return true
}
