package listen

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Bbmxzz/see2hear/internal/feature"
	"github.com/Bbmxzz/see2hear/internal/speech"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 4096

	errorPrefix = "ERROR:"
	endMessage  = "END"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// frame is the server reply to a transcript message.
type frame struct {
	Type       string `json:"type"`
	Action     string `json:"action,omitempty"`
	Feature    string `json:"feature,omitempty"`
	Screen     string `json:"screen,omitempty"`
	Transcript string `json:"transcript,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// Bridge accepts websocket connections carrying speech recognition
// transcripts and answers each one with the matched voice command.
type Bridge struct {
	controller *speech.Controller
	logger     *slog.Logger
}

func NewBridge(controller *speech.Controller, logger *slog.Logger) *Bridge {
	return &Bridge{
		controller: controller,
		logger:     logger.With("component", "listen_bridge"),
	}
}

func (b *Bridge) RegisterRoutes(g *echo.Group) {
	g.GET("/listen", b.Listen)
}

// Listen upgrades the request and relays transcripts until the client
// sends END or disconnects. Starting playback elsewhere interrupts the
// session by closing the connection.
func (b *Bridge) Listen(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := b.controller.StartListening(ctx, func() {
		conn.Close()
	}); err != nil {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()),
			time.Now().Add(writeWait))
		conn.Close()
		return nil
	}
	defer func() {
		b.controller.StopListening()
		conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	stop := make(chan struct{})
	go b.pingLoop(conn, stop)
	defer close(stop)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				b.logger.Debug("listen connection closed", "error", err)
			}
			return nil
		}
		if msgType != websocket.TextMessage {
			continue
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))

		msg := strings.TrimSpace(string(data))
		switch {
		case msg == endMessage:
			b.write(conn, frame{Type: "end"})
			return nil
		case strings.HasPrefix(msg, errorPrefix):
			reason := strings.TrimSpace(strings.TrimPrefix(msg, errorPrefix))
			b.logger.Warn("recognition error", "reason", reason)
			b.write(conn, frame{Type: "error", Reason: reason})
		case msg == "":
			continue
		default:
			b.handleTranscript(conn, msg)
		}
	}
}

func (b *Bridge) handleTranscript(conn *websocket.Conn, transcript string) {
	cmd, ok := feature.MatchCommand(transcript)
	if !ok {
		b.write(conn, frame{Type: "ignored", Transcript: transcript})
		return
	}

	f := frame{
		Type:    "command",
		Action:  string(cmd.Action),
		Feature: string(cmd.Feature),
	}
	if screen, ok := feature.Route(cmd.Feature); ok {
		f.Screen = screen
	}
	b.logger.Info("voice command matched", "action", f.Action, "feature", f.Feature)
	b.write(conn, f)
}

func (b *Bridge) write(conn *websocket.Conn, f frame) {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(f); err != nil {
		b.logger.Debug("write failed", "error", err)
	}
}

func (b *Bridge) pingLoop(conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-stop:
			return
		}
	}
}
