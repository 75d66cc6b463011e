package bot

import "encoding/base64"

// Segment 表示OneBot v11消息段
type Segment struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

// TextSegment 创建纯文本消息段
func TextSegment(text string) Segment {
	return Segment{
		Type: "text",
		Data: map[string]interface{}{"text": text},
	}
}

// ImageSegment 创建Base64图片消息段
func ImageSegment(png []byte) Segment {
	return Segment{
		Type: "image",
		Data: map[string]interface{}{
			"file": "base64://" + base64.StdEncoding.EncodeToString(png),
		},
	}
}

// Event 表示OneBot v11上报的事件（只保留本插件关心的字段）
type Event struct {
	PostType    string `json:"post_type"`
	MessageType string `json:"message_type"`
	RawMessage  string `json:"raw_message"`
	UserID      int64  `json:"user_id"`
	GroupID     int64  `json:"group_id"`
	SelfID      int64  `json:"self_id"`
}

// ActionRequest 表示发给OneBot实现的动作调用
type ActionRequest struct {
	Action string                 `json:"action"`
	Params map[string]interface{} `json:"params"`
	Echo   string                 `json:"echo"`
}

// NewSendMsgAction 构造对事件来源的send_msg回复动作
func NewSendMsgAction(event *Event, echo string, segments []Segment) ActionRequest {
	params := map[string]interface{}{
		"message_type": event.MessageType,
		"message":      segments,
	}
	if event.MessageType == "group" {
		params["group_id"] = event.GroupID
	} else {
		params["user_id"] = event.UserID
	}

	return ActionRequest{
		Action: "send_msg",
		Params: params,
		Echo:   echo,
	}
}
