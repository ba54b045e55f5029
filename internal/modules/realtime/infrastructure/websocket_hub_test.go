package infrastructure

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookingHub/internal/modules/realtime/domain"
)

func reservationMessage(action, code string) *domain.Message {
	return &domain.Message{
		Topic:    domain.CustomTopic(domain.ReservationEntity, action),
		Entity:   domain.ReservationEntity,
		Action:   action,
		Metadata: map[string]string{domain.MetadataReservationCode: code},
	}
}

func receive(t *testing.T, c *Client) *domain.Message {
	t.Helper()
	select {
	case data := <-c.send:
		var msg domain.Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return &msg
	default:
		return nil
	}
}

func TestHubBroadcastRespectsTopicsAndCode(t *testing.T) {
	hub := NewHub()
	all := NewClient(hub, nil, "", 4)
	scoped := NewClient(hub, nil, "YYY12345678", 4)
	hub.AttachClient(all, domain.ReservationFeedTopics())
	hub.AttachClient(scoped, domain.ReservationFeedTopics())
	require.Equal(t, 2, hub.ClientCount())

	hub.Broadcast(context.Background(), reservationMessage(domain.ActionCreated, "XXX12345678"))
	assert.NotNil(t, receive(t, all))
	assert.Nil(t, receive(t, scoped))

	hub.Broadcast(context.Background(), reservationMessage(domain.ActionUpdated, "YYY12345678"))
	assert.Equal(t, "reservations.updated", receive(t, all).Topic)
	assert.Equal(t, "reservations.updated", receive(t, scoped).Topic)

	hub.Broadcast(context.Background(), reservationMessage("rejected", "YYY12345678"))
	assert.Nil(t, receive(t, all))
}

func TestHubCommandsManageSubscriptions(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil, "", 4)
	hub.AttachClient(client, nil)

	client.commands.Process(client, Command{Action: " Subscribe ", Topic: "reservations.rejected"})
	hub.Broadcast(context.Background(), reservationMessage("rejected", "YYY12345678"))
	assert.NotNil(t, receive(t, client))

	client.commands.Process(client, Command{Action: "unsubscribe", Topic: "reservations.rejected"})
	hub.Broadcast(context.Background(), reservationMessage("rejected", "YYY12345678"))
	assert.Nil(t, receive(t, client))

	client.commands.Process(client, Command{Action: "ping"})
	assert.Equal(t, domain.TopicSystemPong, receive(t, client).Topic)

	client.commands.Process(client, Command{Action: "dance"})
	assert.Equal(t, domain.TopicSystemError, receive(t, client).Topic)
}

func TestHubDetachClosesClient(t *testing.T) {
	hub := NewHub()
	client := NewClient(hub, nil, "", 1)
	hub.AttachClient(client, domain.ReservationFeedTopics())

	hub.detachClient(client)
	hub.detachClient(client)
	assert.Zero(t, hub.ClientCount())

	_, open := <-client.send
	assert.False(t, open)

	hub.Broadcast(context.Background(), reservationMessage(domain.ActionCreated, "YYY12345678"))
	client.SendDomainMessage(domain.NewSystemMessage(domain.ActionPong, nil))
}

func TestHubClose(t *testing.T) {
	hub := NewHub()
	hub.AttachClient(NewClient(hub, nil, "", 1), domain.ReservationFeedTopics())
	hub.AttachClient(NewClient(hub, nil, "", 1), domain.ReservationFeedTopics())
	hub.Close()
	assert.Zero(t, hub.ClientCount())
}
