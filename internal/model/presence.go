package model

// PresenceEntry pairs a user with their active connection. Entries are
// process-owned and never persisted; the registry keeps at most one per
// connection and resolves the first-registered connection per user.
type PresenceEntry struct {
	UserID       string `json:"userId"`
	ConnectionID string `json:"connectionId"`
}
