package port

import (
	"context"

	"bookingHub/internal/modules/realtime/domain"
)

// Broadcaster sends messages to the connected websocket clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}
