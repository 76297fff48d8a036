package model

// MonitorResponse is the main response for the monitor API.
type MonitorResponse struct {
	Status      string          `json:"status"` // "healthy" or "idle"
	Connections ConnectionStats `json:"connections"`
	Presence    []PresenceEntry `json:"presence"` // insertion-ordered registry snapshot
	Routing     RoutingStats    `json:"routing"`
}

// ConnectionStats holds connection-related statistics.
type ConnectionStats struct {
	TotalConnected  int `json:"totalConnected"`  // open websocket connections
	TotalIdentified int `json:"totalIdentified"` // connections with a presence entry
}

// RoutingStats counts real-time delivery outcomes since process start.
type RoutingStats struct {
	Delivered uint64 `json:"delivered"` // getMessage events forwarded to a live receiver
	Dropped   uint64 `json:"dropped"`   // events with no resolvable receiver
}
