package room

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MessageType tags a message envelope
type MessageType string

// message type constants
const (
	TypeGetHand    MessageType = "GET_HAND"
	TypeDrawCards  MessageType = "DRAW_CARDS"
	TypeSubmitHand MessageType = "SUBMIT_HAND"
	TypeRename     MessageType = "RENAME"
	TypeAnte       MessageType = "ANTE"
	TypeBetMoney   MessageType = "BET_MONEY"
	TypeMoneyCheck MessageType = "MONEY_CHECK"
	TypeChat       MessageType = "CHAT"
	TypeUpdate     MessageType = "UPDATE"
)

// Message is an outgoing envelope
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// Inbound is the envelope we expect from a client. The payload is decoded
// per type; a payload that does not match its declared type is logged and
// dropped without closing the connection.
type Inbound struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ChatMessage is the payload of a CHAT message
type ChatMessage struct {
	ID      string    `json:"id"`
	From    string    `json:"from"`
	Text    string    `json:"text"`
	Time    time.Time `json:"time"`
	Private bool      `json:"private,omitempty"`
}

// serverName is the sender of room-generated chat messages
const serverName = "Server"

func newChatMessage(from, text string) *ChatMessage {
	return &ChatMessage{
		ID:   uuid.New().String(),
		From: from,
		Text: text,
		Time: time.Now(),
	}
}

func newServerMessage(text string) *ChatMessage {
	return newChatMessage(serverName, text)
}

func chatEnvelope(cm *ChatMessage) *Message {
	return &Message{
		Type:    TypeChat,
		Payload: cm,
	}
}
