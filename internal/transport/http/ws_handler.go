package http

import (
	"context"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wirechat-ircd/internal/proto"
	"github.com/vovakirdan/wirechat-ircd/internal/store"
	"github.com/vovakirdan/wirechat-ircd/internal/transport/irc"
)

// WSHandler upgrades HTTP connections and runs an IRC session over them,
// one line per text message.
type WSHandler struct {
	irc     *irc.Handler
	maxLine int
	log     *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(h *irc.Handler, maxLine int, logger *zerolog.Logger) stdhttp.Handler {
	if maxLine <= 0 {
		maxLine = proto.MaxLineBytes
	}
	return &WSHandler{irc: h, maxLine: maxLine, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	conn.SetReadLimit(int64(h.maxLine))

	h.irc.Serve(r.Context(), &wsConn{conn: conn, remote: r.RemoteAddr}, store.TransportWebSocket)
}

type wsConn struct {
	conn   *websocket.Conn
	remote string
}

func (c *wsConn) ReadLine(ctx context.Context) (string, error) {
	for {
		typ, data, err := c.conn.Read(ctx)
		if err != nil {
			return "", err
		}
		if typ == websocket.MessageText {
			return string(data), nil
		}
	}
}

func (c *wsConn) WriteLine(ctx context.Context, line string) error {
	return c.conn.Write(ctx, websocket.MessageText, []byte(proto.TrimEOL(line)))
}

func (c *wsConn) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "closing")
}

func (c *wsConn) RemoteAddr() string { return c.remote }
