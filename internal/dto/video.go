package dto

import (
	"StreamHub/internal/model"
	"StreamHub/internal/storage"
	"time"
)

type VideoResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Status       string    `json:"status"`
	StreamingURL *string   `json:"streaming_url"`
	Views        int64     `json:"views"`
	Uploader     string    `json:"uploader"`
	Duration     string    `json:"duration"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToVideoResponse(video *model.Video) VideoResponse {
	return VideoResponse{
		ID:           video.ID,
		Title:        video.Title,
		Status:       video.Status,
		StreamingURL: video.StreamingURL,
		Views:        video.Views,
		Uploader:     video.Uploader,
		Duration:     video.Duration,
		CreatedAt:    video.CreatedAt,
		UpdatedAt:    video.UpdatedAt,
	}
}

// 列表为空时返回[]而不是null
func ToVideoResponses(videos []model.Video) []VideoResponse {
	response := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		response = append(response, ToVideoResponse(&videos[i]))
	}
	return response
}

// VideoDetailResponse 是视频详情页：视频本身、评论（时间倒序）和赞踩数
type VideoDetailResponse struct {
	VideoResponse
	Comments []CommentResponse `json:"comments"`
	Likes    int64             `json:"likes"`
	Dislikes int64             `json:"dislikes"`
}

func ToVideoDetailResponse(video *model.Video, stats model.LikeStats) VideoDetailResponse {
	return VideoDetailResponse{
		VideoResponse: ToVideoResponse(video),
		Comments:      ToCommentResponses(video.Comments),
		Likes:         stats.Likes,
		Dislikes:      stats.Dislikes,
	}
}

// UploadResponse 是上传请求的结果，客户端拿upload_url直接PUT文件
type UploadResponse struct {
	Video     VideoResponse `json:"video"`
	UploadURL string        `json:"upload_url"`
	ObjectKey string        `json:"object_key"`
	ExpiresAt time.Time     `json:"expires_at"`
}

func ToUploadResponse(video *model.Video, upload *storage.UploadURL) UploadResponse {
	return UploadResponse{
		Video:     ToVideoResponse(video),
		UploadURL: upload.URL,
		ObjectKey: upload.ObjectKey,
		ExpiresAt: upload.ExpiresAt,
	}
}

type LikeResponse struct {
	VideoID  string `json:"video_id"`
	Username string `json:"username"`
	IsLike   bool   `json:"is_like"`
	Likes    int64  `json:"likes"`
	Dislikes int64  `json:"dislikes"`
}

func ToLikeResponse(like *model.Like, stats model.LikeStats) LikeResponse {
	return LikeResponse{
		VideoID:  like.VideoID,
		Username: like.Username,
		IsLike:   like.IsLike,
		Likes:    stats.Likes,
		Dislikes: stats.Dislikes,
	}
}
