package hub

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chatline/internal/event"
)

func TestRouter_Route_DeliversToResolvedReceiver(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	router := NewRouter(registry, zap.NewNop())
	receiver := &fakeConn{id: "s2"}
	registry.Register("bob", receiver)

	// When a message event for bob is routed
	router.Route(event.SendMessage{
		ConversationID: "c1",
		SenderID:       "alice",
		Message:        "hi",
		Type:           "text",
		TimeStamp:      1700000000000,
		ReceiverID:     "bob",
	})

	// Then exactly one getMessage notification reaches bob's connection
	req.Len(receiver.delivered, 1)
	req.Equal(event.EventGetMessage, receiver.delivered[0].Event)

	var payload event.GetMessage
	req.NoError(json.Unmarshal(receiver.delivered[0].Payload, &payload))
	req.Equal("c1", payload.ConversationID)
	req.Equal("alice", payload.SenderID)
	req.Equal("hi", payload.Message)
	req.Equal("text", payload.Type)
	req.Equal(int64(1700000000000), payload.TimeStamp)
	req.Equal("bob", payload.Receiver.UserID)
	req.Equal("s2", payload.Receiver.ConnectionID)

	req.Equal(uint64(1), router.Stats().Delivered)
	req.Equal(uint64(0), router.Stats().Dropped)
}

func TestRouter_Route_OfflineReceiver_SilentDrop(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	router := NewRouter(registry, zap.NewNop())
	bystander := &fakeConn{id: "s1"}
	registry.Register("alice", bystander)

	// When routing to a user with no presence entry
	router.Route(event.SendMessage{
		ConversationID: "c1",
		SenderID:       "alice",
		Message:        "hi",
		ReceiverID:     "bob",
	})

	// Then nothing is delivered anywhere and no error surfaces
	req.Empty(bystander.delivered)
	req.Equal(uint64(0), router.Stats().Delivered)
	req.Equal(uint64(1), router.Stats().Dropped)
}

func TestRouter_Route_RefusedDelivery_CountsAsDrop(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	router := NewRouter(registry, zap.NewNop())
	receiver := &fakeConn{id: "s2", refuse: true}
	registry.Register("bob", receiver)

	router.Route(event.SendMessage{ConversationID: "c1", SenderID: "alice", Message: "hi", ReceiverID: "bob"})

	req.Equal(uint64(0), router.Stats().Delivered)
	req.Equal(uint64(1), router.Stats().Dropped)
}
