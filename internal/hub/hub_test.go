package hub

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chatline/internal/event"
	"chatline/internal/model"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(nil, zap.NewNop())
	t.Cleanup(h.Stop)
	return h
}

func addUserEnvelope(t *testing.T, userID string) event.Envelope {
	t.Helper()
	ev, err := event.NewEnvelope(event.EventAddUser, event.AddUser{UserID: userID})
	require.NoError(t, err)
	return ev
}

func decodeSnapshots(t *testing.T, conn *fakeConn) [][]model.PresenceEntry {
	t.Helper()
	var snapshots [][]model.PresenceEntry
	for _, ev := range conn.delivered {
		if ev.Event != event.EventGetUsers {
			continue
		}
		var snapshot []model.PresenceEntry
		require.NoError(t, json.Unmarshal(ev.Payload, &snapshot))
		snapshots = append(snapshots, snapshot)
	}
	return snapshots
}

func TestHub_ConnectBroadcastsGrowingSnapshot(t *testing.T) {
	req := require.New(t)
	h := newTestHub(t)
	c1 := &fakeConn{id: "s1"}
	c2 := &fakeConn{id: "s2"}

	// Given two open connections
	h.addClient(c1)
	h.addClient(c2)

	// When alice then bob identify themselves
	h.handleEvent(addUserEnvelope(t, "alice"), c1)
	h.handleEvent(addUserEnvelope(t, "bob"), c2)

	// Then every connection saw the snapshot grow in insertion order
	for _, conn := range []*fakeConn{c1, c2} {
		snapshots := decodeSnapshots(t, conn)
		req.Len(snapshots, 2)
		req.Equal([]model.PresenceEntry{{UserID: "alice", ConnectionID: "s1"}}, snapshots[0])
		req.Equal([]model.PresenceEntry{
			{UserID: "alice", ConnectionID: "s1"},
			{UserID: "bob", ConnectionID: "s2"},
		}, snapshots[1])
	}
}

func TestHub_RepeatAddUser_NoBroadcast(t *testing.T) {
	req := require.New(t)
	h := newTestHub(t)
	c1 := &fakeConn{id: "s1"}
	h.addClient(c1)

	h.handleEvent(addUserEnvelope(t, "alice"), c1)
	h.handleEvent(addUserEnvelope(t, "alice"), c1)

	// A repeat addUser changes nothing, so only one broadcast happened
	req.Len(decodeSnapshots(t, c1), 1)
}

func TestHub_SecondUserOnSameConnection_Ignored(t *testing.T) {
	req := require.New(t)
	h := newTestHub(t)
	c1 := &fakeConn{id: "s1"}
	h.addClient(c1)

	// Given a connection identified as alice
	h.handleEvent(addUserEnvelope(t, "alice"), c1)

	// When the same connection claims a second identity
	h.handleEvent(addUserEnvelope(t, "bob"), c1)

	// Then the claim is ignored and no extra broadcast happened
	req.Equal(1, h.Registry().Len())
	req.Len(decodeSnapshots(t, c1), 1)

	// And the disconnect leaves no entry behind
	h.removeClient(c1)
	req.Equal(0, h.Registry().Len())
	_, _, ok := h.Registry().Resolve("alice")
	req.False(ok)
}

func TestHub_EmptyUserID_Ignored(t *testing.T) {
	req := require.New(t)
	h := newTestHub(t)
	c1 := &fakeConn{id: "s1"}
	h.addClient(c1)

	h.handleEvent(addUserEnvelope(t, ""), c1)

	req.Equal(0, h.Registry().Len())
	req.Empty(decodeSnapshots(t, c1))
}

func TestHub_StopDoesNotCloseInbound(t *testing.T) {
	req := require.New(t)
	h := NewHub(nil, zap.NewNop())

	h.Stop()

	// A read pump finishing a handoff after shutdown must find the
	// channel open, never closed
	req.NotPanics(func() {
		select {
		case h.inbound <- inboundEvent{}:
		default:
		}
	})
}

func TestHub_SendDisconnectResend(t *testing.T) {
	req := require.New(t)
	h := newTestHub(t)
	c1 := &fakeConn{id: "s1"}
	c2 := &fakeConn{id: "s2"}
	h.addClient(c1)
	h.addClient(c2)
	h.handleEvent(addUserEnvelope(t, "alice"), c1)
	h.handleEvent(addUserEnvelope(t, "bob"), c2)

	send, err := event.NewEnvelope(event.EventSendMessage, event.SendMessage{
		ConversationID: "c1",
		SenderID:       "alice",
		Message:        "hi",
		Type:           "text",
		TimeStamp:      42,
		ReceiverID:     "bob",
	})
	req.NoError(err)

	// When alice sends to bob while bob is online
	h.handleEvent(send, c1)

	var deliveries []event.Envelope
	for _, ev := range c2.delivered {
		if ev.Event == event.EventGetMessage {
			deliveries = append(deliveries, ev)
		}
	}
	req.Len(deliveries, 1)

	var payload event.GetMessage
	req.NoError(json.Unmarshal(deliveries[0].Payload, &payload))
	req.Equal(model.PresenceEntry{UserID: "bob", ConnectionID: "s2"}, payload.Receiver)

	// When bob disconnects
	h.removeClient(c2)
	req.True(c2.closed)

	snapshots := decodeSnapshots(t, c1)
	req.Equal([]model.PresenceEntry{{UserID: "alice", ConnectionID: "s1"}}, snapshots[len(snapshots)-1])

	// And alice resends the same message
	h.handleEvent(send, c1)

	// Then no further delivery happens and no error surfaces
	count := 0
	for _, ev := range c2.delivered {
		if ev.Event == event.EventGetMessage {
			count++
		}
	}
	req.Equal(1, count)
	req.Equal(uint64(1), h.Router().Stats().Dropped)
}
