package hub

import (
	"testing"

	"github.com/stretchr/testify/require"

	"chatline/internal/event"
	"chatline/internal/model"
)

type fakeConn struct {
	id        string
	delivered []event.Envelope
	refuse    bool
	closed    bool
}

func (f *fakeConn) ConnectionID() string { return f.id }

func (f *fakeConn) Deliver(ev event.Envelope) bool {
	if f.refuse {
		return false
	}
	f.delivered = append(f.delivered, ev)
	return true
}

func (f *fakeConn) Close() { f.closed = true }

func TestRegistry_Register_FirstWins(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	c1 := &fakeConn{id: "s1"}
	c2 := &fakeConn{id: "s2"}

	// Given a user registered on a first connection
	req.True(registry.Register("alice", c1))

	// When the same user registers on a second connection
	inserted := registry.Register("alice", c2)

	// Then the second registration is ignored and the first connection
	// stays resolvable
	req.False(inserted)
	entry, conn, ok := registry.Resolve("alice")
	req.True(ok)
	req.Equal("s1", entry.ConnectionID)
	req.Same(c1, conn)
	req.Equal(1, registry.Len())
}

func TestRegistry_Register_ConnectionAlreadyBound(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	c1 := &fakeConn{id: "s1"}

	// Given a connection already bound to a user
	req.True(registry.Register("alice", c1))

	// When a second user registers over the same connection
	inserted := registry.Register("bob", c1)

	// Then the connection keeps exactly one entry
	req.False(inserted)
	req.Equal(1, registry.Len())
	_, _, ok := registry.Resolve("bob")
	req.False(ok)

	// And unregistering the connection clears it completely
	req.True(registry.Unregister("s1"))
	_, _, ok = registry.Resolve("alice")
	req.False(ok)
	req.Empty(registry.Snapshot())
	req.False(registry.Unregister("s1"))
}

func TestRegistry_Unregister_UnknownConnection_NoOp(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	registry.Register("alice", &fakeConn{id: "s1"})

	// When unregistering a connection that was never registered
	removed := registry.Unregister("unknown")

	// Then nothing changes
	req.False(removed)
	req.Equal(1, registry.Len())
}

func TestRegistry_RegisterThenUnregister_ResolvesAbsent(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	registry.Register("alice", &fakeConn{id: "s1"})

	// When the connection goes away
	removed := registry.Unregister("s1")

	// Then the user no longer resolves
	req.True(removed)
	_, _, ok := registry.Resolve("alice")
	req.False(ok)
	req.Empty(registry.Snapshot())
}

func TestRegistry_Snapshot_InsertionOrder(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	registry.Register("alice", &fakeConn{id: "s1"})
	registry.Register("bob", &fakeConn{id: "s2"})
	registry.Register("carol", &fakeConn{id: "s3"})

	req.Equal([]model.PresenceEntry{
		{UserID: "alice", ConnectionID: "s1"},
		{UserID: "bob", ConnectionID: "s2"},
		{UserID: "carol", ConnectionID: "s3"},
	}, registry.Snapshot())

	// Removing the middle entry keeps the remaining order intact
	registry.Unregister("s2")
	req.Equal([]model.PresenceEntry{
		{UserID: "alice", ConnectionID: "s1"},
		{UserID: "carol", ConnectionID: "s3"},
	}, registry.Snapshot())
}

func TestRegistry_Resolve_HasNoSideEffect(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	registry.Register("alice", &fakeConn{id: "s1"})

	for i := 0; i < 3; i++ {
		_, _, ok := registry.Resolve("alice")
		req.True(ok)
	}
	req.Equal(1, registry.Len())
}
