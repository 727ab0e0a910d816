package http

import (
	"net/http"
	"time"

	"montarota/internal/core/application/usecases/queries"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	liveWriteWait      = 10 * time.Second
	livePongWait       = 60 * time.Second
	livePingPeriod     = livePongWait * 9 / 10
	liveMaxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// GetCourierTrack handles GET /api/tracking/courier/:id - the latest pings, newest first.
func (s *Server) GetCourierTrack(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetCourierTrackQuery(id)
	if err != nil {
		return err
	}
	pings, err := s.qry.GetCourierTrack.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pings)
}

// LiveTrack handles GET /api/tracking/courier/:id/live - upgrades to a
// websocket and pushes every position the courier reports from then on.
// Client messages are read and discarded; the stream ends when either side
// closes. Unknown couriers get 404 before the handshake.
func (s *Server) LiveTrack(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetCourierQuery(id)
	if err != nil {
		return err
	}
	if _, err = s.qry.GetCourier.Handle(c.Request().Context(), query); err != nil {
		return err
	}

	// Subscribe before the handshake completes so the client sees every
	// position reported after it is connected.
	positions, cancel := s.feed.Listen(id.String())
	defer cancel()

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already answered the request.
		return nil //nolint:nilerr // response written by the upgrader
	}
	defer conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(liveMaxMessageSize)
		_ = conn.SetReadDeadline(time.Now().Add(livePongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(livePongWait))
		})
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(livePingPeriod)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-closed:
			return nil
		case <-ctx.Done():
			return nil
		case p, ok := <-positions:
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "stream closed"))
				return nil
			}
			if err = conn.WriteJSON(p); err != nil {
				return nil //nolint:nilerr // client went away
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err = conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil //nolint:nilerr // client went away
			}
		}
	}
}
