package channel

import (
	"encoding/json"
	"fmt"

	"connect-chat/domain"
	chaterrors "connect-chat/errors"
	"connect-chat/participant"
)

// Streaming topics. Subscribe is sent once per (re)connection; chat frames
// carry transcript items; heartbeats are echoed back verbatim.
const (
	topicSubscribe = "aws/subscribe"
	topicChat      = "aws/chat"
	topicHeartbeat = "aws/heartbeat"
	topicPing      = "aws/ping"
)

// frame is the streaming envelope. The chat payload arrives as a
// JSON-encoded string inside Content, not as a nested object.
type frame struct {
	Topic       string `json:"topic"`
	ContentType string `json:"contentType,omitempty"`
	Content     string `json:"content,omitempty"`
}

func subscribeFrame() ([]byte, error) {
	content, err := json.Marshal(map[string][]string{"topics": {topicChat}})
	if err != nil {
		return nil, err
	}
	return json.Marshal(frame{Topic: topicSubscribe, Content: string(content)})
}

func heartbeatFrame() []byte {
	data, _ := json.Marshal(frame{Topic: topicHeartbeat})
	return data
}

func decodeFrame(data []byte) (frame, error) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		return frame{}, fmt.Errorf("%w: undecodable stream frame: %v", chaterrors.ErrMalformedPayload, err)
	}
	if f.Topic == "" {
		return frame{}, fmt.Errorf("%w: stream frame without topic", chaterrors.ErrMalformedPayload)
	}
	return f, nil
}

func decodeItem(content string) (domain.TranscriptItem, error) {
	var wire participant.WireItem
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return domain.TranscriptItem{}, fmt.Errorf("%w: undecodable chat payload: %v", chaterrors.ErrMalformedPayload, err)
	}
	return wire.ToItem()
}
