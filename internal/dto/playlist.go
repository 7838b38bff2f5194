package dto

import (
	"StreamHub/internal/model"
	"StreamHub/internal/service"
	"time"
)

// PlaylistResponse 中video_ids是原样保存的ID，videos只包含还存在的视频
type PlaylistResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Username  string          `json:"username"`
	VideoIDs  []string        `json:"video_ids"`
	Videos    []VideoResponse `json:"videos,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func ToPlaylistResponse(playlist *model.Playlist) PlaylistResponse {
	ids := playlist.VideoIDs
	if ids == nil {
		ids = []string{}
	}
	return PlaylistResponse{
		ID:        playlist.ID,
		Name:      playlist.Name,
		Username:  playlist.Username,
		VideoIDs:  ids,
		CreatedAt: playlist.CreatedAt,
		UpdatedAt: playlist.UpdatedAt,
	}
}

func ToPlaylistWithVideosResponse(p *service.PlaylistWithVideos) PlaylistResponse {
	resp := ToPlaylistResponse(p.Playlist)
	resp.Videos = ToVideoResponses(p.Videos)
	return resp
}

func ToPlaylistWithVideosResponses(list []service.PlaylistWithVideos) []PlaylistResponse {
	response := make([]PlaylistResponse, 0, len(list))
	for i := range list {
		response = append(response, ToPlaylistWithVideosResponse(&list[i]))
	}
	return response
}
