package dto

import (
	"StreamHub/internal/model"
	"time"
)

type CommentResponse struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"video_id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func ToCommentResponse(comment *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		VideoID:   comment.VideoID,
		Username:  comment.Username,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

func ToCommentResponses(comments []model.Comment) []CommentResponse {
	response := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		response = append(response, ToCommentResponse(&comments[i]))
	}
	return response
}
