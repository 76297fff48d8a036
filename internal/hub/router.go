package hub

import (
	"sync/atomic"

	"go.uber.org/zap"

	"chatline/internal/event"
	"chatline/internal/model"
)

// Router relays message events to the receiver's live connection.
// Delivery is best-effort, at-most-once: an offline receiver means the
// event is silently dropped from the realtime path, with no retry, no
// queue and no signal back to the sender. Persistence of the same message
// travels independently over the REST boundary.
type Router struct {
	registry  *Registry
	logger    *zap.Logger
	delivered atomic.Uint64
	dropped   atomic.Uint64
}

func NewRouter(registry *Registry, logger *zap.Logger) *Router {
	return &Router{
		registry: registry,
		logger:   logger,
	}
}

// Route resolves the receiver and forwards exactly one getMessage
// notification to that connection. Never blocks on persistence and never
// raises toward the sender.
func (r *Router) Route(msg event.SendMessage) {
	receiver, conn, ok := r.registry.Resolve(msg.ReceiverID)
	if !ok {
		r.dropped.Add(1)
		r.logger.Debug("receiver offline, dropping realtime delivery",
			zap.String("receiver_id", msg.ReceiverID),
			zap.String("conversation_id", msg.ConversationID),
		)
		return
	}

	ev, err := event.NewEnvelope(event.EventGetMessage, event.GetMessage{
		ConversationID: msg.ConversationID,
		SenderID:       msg.SenderID,
		Message:        msg.Message,
		Type:           msg.Type,
		TimeStamp:      msg.TimeStamp,
		Receiver:       receiver,
	})
	if err != nil {
		r.dropped.Add(1)
		r.logger.Error("failed to encode delivery", zap.Error(err))
		return
	}

	if conn.Deliver(ev) {
		r.delivered.Add(1)
		return
	}

	r.dropped.Add(1)
	r.logger.Warn("delivery refused by connection",
		zap.String("receiver_id", msg.ReceiverID),
		zap.String("connection_id", receiver.ConnectionID),
	)
}

// Stats reports delivery counters since process start.
func (r *Router) Stats() model.RoutingStats {
	return model.RoutingStats{
		Delivered: r.delivered.Load(),
		Dropped:   r.dropped.Load(),
	}
}
