package transport

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"bookingHub/internal/modules/realtime/domain"
	"bookingHub/internal/modules/realtime/infrastructure"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewReservationFeedHandler exposes /ws/reservations. The optional ?code=
// query parameter narrows the feed to a single reservation.
func NewReservationFeedHandler(hub *infrastructure.Hub, sendBuffer int) echo.HandlerFunc {
	if sendBuffer <= 0 {
		sendBuffer = 16
	}

	return func(c echo.Context) error {
		code := strings.TrimSpace(c.QueryParam("code"))
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws handler upgrade failed", slog.String("ip", peerIP), slog.String("reqID", requestID), slog.Any("error", err))
			return err
		}

		client := infrastructure.NewClient(hub, conn, code, sendBuffer)
		topics := domain.ReservationFeedTopics()
		hub.AttachClient(client, topics)

		go client.WritePump()
		go client.ReadPump()

		connected := domain.NewSystemMessage(domain.ActionConnected, map[string]any{
			"clientId":        client.ID(),
			"reservationCode": code,
			"topics":          topics,
		})
		client.SendDomainMessage(connected)

		slog.Info("ws connected",
			slog.String("clientId", client.ID()),
			slog.String("reservationCode", code),
			slog.String("ip", peerIP),
			slog.String("reqID", requestID),
		)
		return nil
	}
}
