package dto

import "StreamHub/internal/service"

// AdminVideoResponse 是管理后台视频列表的一行
type AdminVideoResponse struct {
	VideoResponse
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
	Comments int64 `json:"comments"`
}

func ToAdminVideoResponses(summaries []service.VideoSummary) []AdminVideoResponse {
	response := make([]AdminVideoResponse, 0, len(summaries))
	for i := range summaries {
		s := &summaries[i]
		response = append(response, AdminVideoResponse{
			VideoResponse: ToVideoResponse(&s.Video),
			Likes:         s.Stats.Likes,
			Dislikes:      s.Stats.Dislikes,
			Comments:      s.Comments,
		})
	}
	return response
}

// AdminVideoDetailResponse 比公开的详情多了点赞和点踩的用户名
type AdminVideoDetailResponse struct {
	VideoDetailResponse
	LikedBy    []string `json:"liked_by"`
	DislikedBy []string `json:"disliked_by"`
}

func ToAdminVideoDetailResponse(detail *service.VideoDetail) AdminVideoDetailResponse {
	resp := AdminVideoDetailResponse{
		VideoDetailResponse: ToVideoDetailResponse(detail.Video, detail.Stats),
		LikedBy:             []string{},
		DislikedBy:          []string{},
	}
	for _, like := range detail.Video.Likes {
		if like.IsLike {
			resp.LikedBy = append(resp.LikedBy, like.Username)
		} else {
			resp.DislikedBy = append(resp.DislikedBy, like.Username)
		}
	}
	return resp
}
