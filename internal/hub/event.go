package hub

import (
	"encoding/json"
	"log"

	"github.com/chathub/backend/internal/model"
)

// MessageType represents the type of WebSocket message.
type MessageType string

const (
	// Client -> Server message types
	MessageTypeCreateChannel MessageType = "createChannel"
	MessageTypeDeleteChannel MessageType = "deleteChannel"
	MessageTypeSwitch        MessageType = "switch"
	MessageTypeSend          MessageType = "message"
	MessageTypeDirect        MessageType = "direct" // Start a direct chat with another user

	// Server -> Client message types
	MessageTypePresence   MessageType = "presence"
	MessageTypeChannels   MessageType = "channels"
	MessageTypeChat       MessageType = "chat"
	MessageTypeForceLeave MessageType = "forceLeave"
)

// Message represents a WebSocket message in either direction.
type Message struct {
	Type         MessageType      `json:"type"`
	Text         string           `json:"text,omitempty"`
	Title        string           `json:"title,omitempty"`
	ChannelID    int64            `json:"channelId,omitempty"`
	OldChannelID int64            `json:"oldChannelId,omitempty"`
	To           string           `json:"to,omitempty"`
	Users        []string         `json:"users,omitempty"`
	Channels     []*model.Channel `json:"channels,omitempty"`
}

// encode marshals an outbound message, logging and returning nil on failure.
// A nil payload routes as a no-op, so a marshal failure degrades to a missed
// push rather than an aborted operation.
func encode(msg *Message) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal %s message: %v", msg.Type, err)
		return nil
	}
	return data
}

func chatPayload(text string) []byte {
	return encode(&Message{Type: MessageTypeChat, Text: text})
}

func presencePayload(identities []string) []byte {
	return encode(&Message{Type: MessageTypePresence, Users: identities})
}

func channelsPayload(channels []*model.Channel) []byte {
	return encode(&Message{Type: MessageTypeChannels, Channels: channels})
}

func forceLeavePayload() []byte {
	return encode(&Message{Type: MessageTypeForceLeave})
}
