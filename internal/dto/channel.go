package dto

import "StreamHub/internal/service"

type ChannelResponse struct {
	Username        string          `json:"username"`
	VideoCount      int             `json:"video_count"`
	TotalViews      int64           `json:"total_views"`
	SubscriberCount int64           `json:"subscriber_count"`
	Videos          []VideoResponse `json:"videos"`
}

func ToChannelResponse(info *service.ChannelInfo) ChannelResponse {
	return ChannelResponse{
		Username:        info.Username,
		VideoCount:      info.VideoCount,
		TotalViews:      info.TotalViews,
		SubscriberCount: info.SubscriberCount,
		Videos:          ToVideoResponses(info.Videos),
	}
}
