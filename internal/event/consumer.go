package event

import (
	"StreamHub/pkg/apperr"
	"encoding/json"
)

// Outcome 决定一条消息处理完之后如何确认
type Outcome int

const (
	// 处理成功，或者重试也没有意义（视频已经不存在）
	OutcomeAck Outcome = iota
	// 暂时性错误（数据库连不上），放回队列重试
	OutcomeRequeue
	// 坏消息，直接丢弃，不重试
	OutcomeDrop
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAck:
		return "ack"
	case OutcomeRequeue:
		return "requeue"
	default:
		return "drop"
	}
}

// HandleVideoStatus 解析状态消息并交给apply处理，根据结果决定ack还是nack
func HandleVideoStatus(body []byte, apply func(VideoStatusMessage) error) (VideoStatusMessage, Outcome, error) {
	var msg VideoStatusMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return msg, OutcomeDrop, err
	}
	if msg.VideoID == "" {
		return msg, OutcomeDrop, apperr.Validation("消息缺少video_id")
	}

	err := apply(msg)
	switch {
	case err == nil:
		return msg, OutcomeAck, nil
	case apperr.Is(err, apperr.KindNotFound):
		// 视频在处理期间被删除了
		return msg, OutcomeAck, err
	case apperr.Is(err, apperr.KindValidation):
		return msg, OutcomeDrop, err
	default:
		return msg, OutcomeRequeue, err
	}
}
