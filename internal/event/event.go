package event

import (
	"encoding/json"

	"chatline/internal/model"
)

// Realtime event names. Client-to-server: addUser, sendMessage.
// Server-to-client: getUsers (broadcast), getMessage (single receiver).
const (
	EventAddUser     = "addUser"
	EventSendMessage = "sendMessage"
	EventGetUsers    = "getUsers"
	EventGetMessage  = "getMessage"
)

// Envelope is the wire frame for every realtime event. The payload stays
// raw until the event name selects a concrete type.
type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// NewEnvelope wraps a typed payload into an envelope.
func NewEnvelope(name string, payload any) (Envelope, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: name, Payload: raw}, nil
}

// AddUser identifies the connection's user to the presence registry.
type AddUser struct {
	UserID string `json:"userId"`
}

// SendMessage carries a message event through the realtime channel.
// Persistence of the same message travels independently over the REST
// boundary; the two paths are not transactional with each other.
type SendMessage struct {
	ConversationID string `json:"conversationId"`
	SenderID       string `json:"senderId"`
	Message        string `json:"message"`
	Type           string `json:"type"`
	TimeStamp      int64  `json:"timeStamp"`
	ReceiverID     string `json:"receiverId"`
}

// GetMessage is the delivery notification forwarded to the resolved
// receiver's connection only.
type GetMessage struct {
	ConversationID string              `json:"conversationId"`
	SenderID       string              `json:"senderId"`
	Message        string              `json:"message"`
	Type           string              `json:"type"`
	TimeStamp      int64               `json:"timeStamp"`
	Receiver       model.PresenceEntry `json:"receiver"`
}

// The getUsers payload is the bare insertion-ordered snapshot,
// []model.PresenceEntry, mirroring what the registry hands out.
