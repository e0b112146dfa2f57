package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 2 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000

	wsTypeView = "view"
)

// wsEnvelope is the frame pushed to dashboard clients.
type wsEnvelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      View push stream
// @Description  Sends the view on connect, on every change and every interval (default 2s, max 10s).
// @Tags         dashboard
// @Param        interval     query  string  false  "Resend interval, Go duration"  example(2s)
// @Param        interval_ms  query  int     false  "Resend interval in milliseconds"
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	h.metrics.WSConnected()
	defer h.metrics.WSDisconnected()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	closed := make(chan struct{})
	go h.drain(conn, closed)

	changes, unsubscribe := h.services.View.Subscribe()
	defer unsubscribe()

	resend := time.NewTicker(interval)
	defer resend.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	var sent uint64
	push := func(force bool) error {
		v := h.services.View.Snapshot()
		if !force && v.Version == sent {
			return nil
		}
		sent = v.Version
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(wsEnvelope{Type: wsTypeView, Data: v})
	}

	if err := push(true); err != nil {
		h.wsClosed("initial_write", err)
		return
	}
	for {
		var err error
		select {
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		case <-changes:
			err = push(false)
		case <-resend.C:
			err = push(true)
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			err = conn.WriteMessage(websocket.PingMessage, nil)
		}
		if err != nil {
			h.wsClosed("write", err)
			return
		}
	}
}

func (h *Handler) wsClosed(stage string, err error) {
	if h.log != nil {
		h.log.Infow("ws_closed", "stage", stage, "err", err)
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000. Values outside
// (0, 10s] fall back to the configured push interval.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	if h.wsInterval > 0 {
		return h.wsInterval
	}
	return defaultInterval
}

// drain reads until the peer goes away so control frames get processed.
func (h *Handler) drain(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.wsClosed("read", err)
			return
		}
	}
}
