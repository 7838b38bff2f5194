package repository

import (
	"StreamHub/internal/model"

	"gorm.io/gorm"
)

type PlaylistRepository interface {
	Create(playlist *model.Playlist) error
	FindByID(id string) (*model.Playlist, error)
	FindByOwner(username string) ([]model.Playlist, error)
	Update(playlist *model.Playlist) error
	Delete(id string) error
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) Create(playlist *model.Playlist) error {
	if playlist.VideoIDs == nil {
		playlist.VideoIDs = []string{}
	}
	return r.db.Create(playlist).Error
}

func (r *playlistRepository) FindByID(id string) (*model.Playlist, error) {
	var playlist model.Playlist
	if err := r.db.Where("id = ?", id).First(&playlist).Error; err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (r *playlistRepository) FindByOwner(username string) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := r.db.Where("username = ?", username).Order("created_at desc").Find(&playlists).Error
	return playlists, err
}

func (r *playlistRepository) Update(playlist *model.Playlist) error {
	return r.db.Save(playlist).Error
}

func (r *playlistRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Playlist{}).Error
}
