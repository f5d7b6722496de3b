// Package realtime pushes an origin's state changes to its open pages over a
// websocket.
package realtime

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"creatives/internal/content"
	applog "creatives/internal/log"
	"creatives/internal/origin"
	"creatives/internal/theme"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	backlog    = 32
)

// Message kinds beyond the content event names.
const (
	// KindReady is sent once when the stream opens, carrying the current theme.
	KindReady = "ready"
	KindTheme = "theme"
)

// Message is one change notification sent to the client.
type Message struct {
	Kind    string `json:"kind"`
	Mode    string `json:"mode,omitempty"`
	Palette string `json:"palette,omitempty"`
}

// Upgrader accepts same-origin websocket handshakes.
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Serve upgrades the request and streams changes of ws until the peer goes
// away or the request context ends.
func Serve(w http.ResponseWriter, r *http.Request, ws *origin.Workspace) error {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	return Stream(r.Context(), conn, ws)
}

// Stream writes a Message for every change of ws to conn. Notifications that
// arrive while the backlog is full are dropped; clients refetch on any event.
func Stream(ctx context.Context, conn *websocket.Conn, ws *origin.Workspace) error {
	defer conn.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages := make(chan Message, backlog)
	publish := func(msg Message) {
		select {
		case messages <- msg:
		default:
			applog.Debug(ctx, "dropping realtime event", "origin", ws.ID, "kind", msg.Kind)
		}
	}

	unsubscribeContent := ws.Content.Subscribe(func(event content.Event) {
		publish(Message{Kind: string(event)})
	})
	defer unsubscribeContent()

	unsubscribeTheme := ws.Theme.Subscribe(func(setting theme.Setting) {
		publish(Message{Kind: KindTheme, Mode: setting.Mode.String(), Palette: setting.Palette.String()})
	})
	defer unsubscribeTheme()

	go readPump(conn, cancel)

	current := ws.Theme.Setting()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(Message{Kind: KindReady, Mode: current.Mode.String(), Palette: current.Palette.String()}); err != nil {
		return err
	}

	applog.Debug(ctx, "realtime stream opened", "origin", ws.ID)
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			applog.Debug(ctx, "realtime stream closed", "origin", ws.ID)
			return nil
		case msg := <-messages:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				return err
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return err
			}
		}
	}
}

// readPump drains client frames so control messages are processed, and
// cancels the stream once the peer disconnects.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			var closeErr *websocket.CloseError
			if !errors.As(err, &closeErr) {
				applog.Debug(context.Background(), "realtime read ended", "error", err)
			}
			return
		}
	}
}
