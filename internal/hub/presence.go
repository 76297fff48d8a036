package hub

import (
	"sync"

	"chatline/internal/event"
	"chatline/internal/model"
)

// Connection is a live realtime connection the registry can resolve to.
// *Client implements it; tests substitute fakes.
type Connection interface {
	ConnectionID() string
	Deliver(ev event.Envelope) bool
	Close()
}

type presenceRecord struct {
	entry model.PresenceEntry
	conn  Connection
}

// Registry is the process-local presence table: userID -> active
// connection. Registration is first-wins per user, so a user connected
// from two devices keeps receiving deliveries on the first connection.
// Entries are kept in insertion order for the getUsers broadcast.
//
// All methods are safe for concurrent use; mutations are additionally
// funneled through the hub's event loop so no two read-modify-write
// sequences interleave.
type Registry struct {
	mu     sync.RWMutex
	order  []*presenceRecord
	byUser map[string]*presenceRecord
	byConn map[string]*presenceRecord
}

func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[string]*presenceRecord),
		byConn: make(map[string]*presenceRecord),
	}
}

// Register adds an entry for the user unless one already exists, or the
// connection is already bound to another user. Both sides are first-wins,
// so every entry keeps a distinct connection ID and Unregister always
// clears a connection completely. Returns true when an entry was
// inserted. Never fails.
func (r *Registry) Register(userID string, conn Connection) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUser[userID]; exists {
		return false
	}
	if _, exists := r.byConn[conn.ConnectionID()]; exists {
		return false
	}

	rec := &presenceRecord{
		entry: model.PresenceEntry{UserID: userID, ConnectionID: conn.ConnectionID()},
		conn:  conn,
	}
	r.order = append(r.order, rec)
	r.byUser[userID] = rec
	r.byConn[rec.entry.ConnectionID] = rec
	return true
}

// Unregister removes the entry whose connection ID matches, if any.
// Returns true when an entry was removed.
func (r *Registry) Unregister(connectionID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.byConn[connectionID]
	if !ok {
		return false
	}

	delete(r.byConn, connectionID)
	delete(r.byUser, rec.entry.UserID)
	for i, candidate := range r.order {
		if candidate == rec {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Resolve returns the entry and connection for a user, if present. Pure
// lookup, no side effect.
func (r *Registry) Resolve(userID string) (model.PresenceEntry, Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.byUser[userID]
	if !ok {
		return model.PresenceEntry{}, nil, false
	}
	return rec.entry, rec.conn, true
}

// Snapshot returns all current entries in insertion order.
func (r *Registry) Snapshot() []model.PresenceEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]model.PresenceEntry, len(r.order))
	for i, rec := range r.order {
		entries[i] = rec.entry
	}
	return entries
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
