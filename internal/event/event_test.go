package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"chatline/internal/model"
)

func TestEnvelope_SendMessageRoundTrip(t *testing.T) {
	req := require.New(t)

	ev, err := NewEnvelope(EventSendMessage, SendMessage{
		ConversationID: "c1",
		SenderID:       "alice",
		Message:        "hi",
		Type:           "text",
		TimeStamp:      1700000000000,
		ReceiverID:     "bob",
	})
	req.NoError(err)
	req.Equal(EventSendMessage, ev.Event)

	// A client frame is the envelope serialized whole
	frame, err := json.Marshal(ev)
	req.NoError(err)

	var decoded Envelope
	req.NoError(json.Unmarshal(frame, &decoded))

	var payload SendMessage
	req.NoError(json.Unmarshal(decoded.Payload, &payload))
	req.Equal("c1", payload.ConversationID)
	req.Equal("bob", payload.ReceiverID)
	req.Equal(int64(1700000000000), payload.TimeStamp)
}

func TestEnvelope_GetMessageCarriesResolvedReceiver(t *testing.T) {
	req := require.New(t)

	ev, err := NewEnvelope(EventGetMessage, GetMessage{
		ConversationID: "c1",
		SenderID:       "alice",
		Message:        "hi",
		Type:           "text",
		TimeStamp:      42,
		Receiver:       model.PresenceEntry{UserID: "bob", ConnectionID: "s2"},
	})
	req.NoError(err)

	var payload GetMessage
	req.NoError(json.Unmarshal(ev.Payload, &payload))
	req.Equal("bob", payload.Receiver.UserID)
	req.Equal("s2", payload.Receiver.ConnectionID)
}

func TestEnvelope_GetUsersPayloadIsBareSnapshot(t *testing.T) {
	req := require.New(t)

	snapshot := []model.PresenceEntry{
		{UserID: "alice", ConnectionID: "s1"},
		{UserID: "bob", ConnectionID: "s2"},
	}

	ev, err := NewEnvelope(EventGetUsers, snapshot)
	req.NoError(err)

	var decoded []model.PresenceEntry
	req.NoError(json.Unmarshal(ev.Payload, &decoded))
	req.Equal(snapshot, decoded)
}
