package hub

import (
	"chatline/internal/model"
)

// MonitorService gathers hub statistics for the monitor API.
type MonitorService struct {
	hub *Hub
}

func NewMonitorService(hub *Hub) *MonitorService {
	return &MonitorService{hub: hub}
}

// GetStats returns connection, presence and routing statistics.
func (ms *MonitorService) GetStats() model.MonitorResponse {
	connections := model.ConnectionStats{
		TotalConnected:  ms.hub.ConnectionCount(),
		TotalIdentified: ms.hub.Registry().Len(),
	}

	status := "healthy"
	if connections.TotalConnected == 0 {
		status = "idle"
	}

	return model.MonitorResponse{
		Status:      status,
		Connections: connections,
		Presence:    ms.hub.Registry().Snapshot(),
		Routing:     ms.hub.Router().Stats(),
	}
}
