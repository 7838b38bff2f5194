package service

import (
	"StreamHub/internal/model"
	"StreamHub/internal/repository"
	"StreamHub/pkg/apperr"
	"strings"
)

type PlaylistService interface {
	GetUserPlaylists(username string) ([]PlaylistWithVideos, error)
	GetPlaylist(playlistID string) (*PlaylistWithVideos, error)
	CreatePlaylist(caller Caller, name string) (*model.Playlist, error)
	UpdatePlaylist(caller Caller, playlistID, name string) (*model.Playlist, error)
	DeletePlaylist(caller Caller, playlistID string) error
	AddVideo(caller Caller, playlistID, videoID string) (*model.Playlist, error)
	RemoveVideo(caller Caller, playlistID, videoID string) (*model.Playlist, error)
}

// PlaylistWithVideos 中的Videos按播放列表顺序排列，已经被删除的视频直接跳过
type PlaylistWithVideos struct {
	Playlist *model.Playlist
	Videos   []model.Video
}

type playlistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository) PlaylistService {
	return &playlistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
	}
}

func (s *playlistService) GetUserPlaylists(username string) ([]PlaylistWithVideos, error) {
	playlists, err := s.playlistRepo.FindByOwner(username)
	if err != nil {
		return nil, apperr.Internal("获取播放列表失败", err)
	}
	result := make([]PlaylistWithVideos, 0, len(playlists))
	for i := range playlists {
		videos, err := s.resolveVideos(playlists[i].VideoIDs)
		if err != nil {
			return nil, err
		}
		result = append(result, PlaylistWithVideos{Playlist: &playlists[i], Videos: videos})
	}
	return result, nil
}

func (s *playlistService) GetPlaylist(playlistID string) (*PlaylistWithVideos, error) {
	playlist, err := s.find(playlistID)
	if err != nil {
		return nil, err
	}
	videos, err := s.resolveVideos(playlist.VideoIDs)
	if err != nil {
		return nil, err
	}
	return &PlaylistWithVideos{Playlist: playlist, Videos: videos}, nil
}

func (s *playlistService) CreatePlaylist(caller Caller, name string) (*model.Playlist, error) {
	name, err := requireText(name, "播放列表名称", maxPlaylistNameLen)
	if err != nil {
		return nil, err
	}
	playlist := &model.Playlist{
		Name:     name,
		Username: caller.Username,
		VideoIDs: []string{},
	}
	if err := s.playlistRepo.Create(playlist); err != nil {
		return nil, apperr.Internal("创建播放列表失败", err)
	}
	return playlist, nil
}

func (s *playlistService) UpdatePlaylist(caller Caller, playlistID, name string) (*model.Playlist, error) {
	playlist, err := s.findOwned(caller, playlistID)
	if err != nil {
		return nil, err
	}
	name, err = requireText(name, "播放列表名称", maxPlaylistNameLen)
	if err != nil {
		return nil, err
	}
	playlist.Name = name
	return s.save(playlist)
}

func (s *playlistService) DeletePlaylist(caller Caller, playlistID string) error {
	if _, err := s.findOwned(caller, playlistID); err != nil {
		return err
	}
	if err := s.playlistRepo.Delete(playlistID); err != nil {
		return apperr.Internal("删除播放列表失败", err)
	}
	return nil
}

// AddVideo 不检查视频是否存在，播放列表只按值保存视频ID
func (s *playlistService) AddVideo(caller Caller, playlistID, videoID string) (*model.Playlist, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, apperr.Validation("视频ID不能为空")
	}
	playlist, err := s.findOwned(caller, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.HasVideo(videoID) {
		return nil, apperr.Conflict("该视频已经在播放列表中")
	}
	playlist.VideoIDs = append(playlist.VideoIDs, videoID)
	return s.save(playlist)
}

func (s *playlistService) RemoveVideo(caller Caller, playlistID, videoID string) (*model.Playlist, error) {
	playlist, err := s.findOwned(caller, playlistID)
	if err != nil {
		return nil, err
	}
	if !playlist.RemoveVideo(videoID) {
		return nil, apperr.NotFound("该视频不在播放列表中")
	}
	return s.save(playlist)
}

func (s *playlistService) find(playlistID string) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.FindByID(playlistID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.NotFound("播放列表不存在")
		}
		return nil, apperr.Internal("查询播放列表失败", err)
	}
	return playlist, nil
}

// findOwned 在任何修改之前先做所有权检查
func (s *playlistService) findOwned(caller Caller, playlistID string) (*model.Playlist, error) {
	playlist, err := s.find(playlistID)
	if err != nil {
		return nil, err
	}
	if err := CanModifyPlaylist(caller, playlist).Err(); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *playlistService) save(playlist *model.Playlist) (*model.Playlist, error) {
	if err := s.playlistRepo.Update(playlist); err != nil {
		return nil, apperr.Internal("更新播放列表失败", err)
	}
	return playlist, nil
}

// resolveVideos 一次IN查询拿到所有视频，再按列表顺序排列，找不到的跳过
func (s *playlistService) resolveVideos(videoIDs []string) ([]model.Video, error) {
	videos := []model.Video{}
	if len(videoIDs) == 0 {
		return videos, nil
	}
	found, err := s.videoRepo.FindByIDs(videoIDs)
	if err != nil {
		return nil, apperr.Internal("查询播放列表视频失败", err)
	}
	byID := make(map[string]model.Video, len(found))
	for _, v := range found {
		byID[v.ID] = v
	}
	for _, id := range videoIDs {
		if v, ok := byID[id]; ok {
			videos = append(videos, v)
		}
	}
	return videos, nil
}
