// Package signal carries estimation commands in and room snapshots out
// over WebSocket. It owns the connections; room state never lives here.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/avoron/planpoker/internal/app"
	"github.com/avoron/planpoker/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

type Controller struct {
	Orch      *app.Orchestrator
	ReadLimit int64
}

func NewController(orch *app.Orchestrator, readLimit int64) *Controller {
	return &Controller{Orch: orch, ReadLimit: readLimit}
}

type WsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS upgrades the request and binds the connection into the
// registry. The client token cookie doubles as the session id, which
// is the player's ownership key for vote mutation.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	sid := core.SessionID(c.GetString("client_token"))
	log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	conn := &WsConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}

	ctx, cancel := context.WithCancel(ctx)
	ctl.Orch.Registry.Bind(sid, conn, cancel)

	ctl.sendJSON(conn, helloEvent{Type: EventHello, Session: string(sid)})

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, sid, conn)
}
