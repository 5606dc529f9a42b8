// Package ws pushes feed snapshots to connected presentation-layer
// clients over WebSocket, one message per completed poll cycle.
package ws

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/icebreakapp/radar-gateway/internal/domain"
	"github.com/icebreakapp/radar-gateway/internal/usecase/feed"
	"github.com/sirupsen/logrus"
)

const writeTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The gateway binds to loopback for the local UI; origin enforcement
	// is left to the deployment.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type FeedStream struct {
	poller *feed.Poller
	logger *logrus.Logger
}

func NewFeedStream(poller *feed.Poller, logger *logrus.Logger) *FeedStream {
	return &FeedStream{poller: poller, logger: logger}
}

// Handle upgrades the connection, sends the current snapshot and then one
// message per completed cycle until the client goes away.
func (s *FeedStream) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Slow consumers drop intermediate snapshots rather than queueing
	// unbounded; only the freshest feed matters.
	updates := make(chan domain.FeedSnapshot, 1)
	unsubscribe := s.poller.Subscribe(func(snapshot domain.FeedSnapshot) {
		select {
		case updates <- snapshot:
		default:
			select {
			case <-updates:
			default:
			}
			select {
			case updates <- snapshot:
			default:
			}
		}
	})
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := s.write(conn, s.poller.Snapshot()); err != nil {
		return
	}

	for {
		select {
		case snapshot := <-updates:
			if err := s.write(conn, snapshot); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

func (s *FeedStream) write(conn *websocket.Conn, snapshot domain.FeedSnapshot) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(snapshot); err != nil {
		s.logger.WithError(err).Debug("websocket write failed")
		return err
	}
	return nil
}
