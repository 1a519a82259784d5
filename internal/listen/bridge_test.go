package listen

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Bbmxzz/see2hear/internal/speech"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

type noopAnnouncer struct{}

func (noopAnnouncer) Speak(ctx context.Context, u speech.Utterance) error { return nil }
func (noopAnnouncer) Stop(ctx context.Context) error                      { return nil }

func newTestBridge(t *testing.T) (*Bridge, *speech.Controller, *httptest.Server) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	controller := speech.NewController(noopAnnouncer{}, logger)
	bridge := NewBridge(controller, logger)

	e := echo.New()
	bridge.RegisterRoutes(e.Group("/v1/speech"))
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return bridge, controller, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/speech/listen"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	var f frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return f
}

func TestListenMatchesCommands(t *testing.T) {
	_, controller, srv := newTestBridge(t)
	conn := dial(t, srv)

	// The connection holds the audio channel while open.
	waitForState(t, controller, speech.StateListening)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("open scan text")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	f := readFrame(t, conn)
	if f.Type != "command" || f.Action != "navigate" || f.Feature != "ScanText" {
		t.Errorf("unexpected frame %+v", f)
	}
	if f.Screen != "Scantext" {
		t.Errorf("screen = %q", f.Screen)
	}
}

func TestListenIgnoresUnmatchedTranscripts(t *testing.T) {
	_, _, srv := newTestBridge(t)
	conn := dial(t, srv)

	conn.WriteMessage(websocket.TextMessage, []byte("what a lovely day"))
	f := readFrame(t, conn)
	if f.Type != "ignored" || f.Transcript != "what a lovely day" {
		t.Errorf("unexpected frame %+v", f)
	}
}

func TestListenReportsRecognitionErrors(t *testing.T) {
	_, _, srv := newTestBridge(t)
	conn := dial(t, srv)

	conn.WriteMessage(websocket.TextMessage, []byte("ERROR: no speech detected"))
	f := readFrame(t, conn)
	if f.Type != "error" || f.Reason != "no speech detected" {
		t.Errorf("unexpected frame %+v", f)
	}
}

func TestListenEndsSession(t *testing.T) {
	_, controller, srv := newTestBridge(t)
	conn := dial(t, srv)

	waitForState(t, controller, speech.StateListening)

	conn.WriteMessage(websocket.TextMessage, []byte("END"))
	f := readFrame(t, conn)
	if f.Type != "end" {
		t.Errorf("unexpected frame %+v", f)
	}

	waitForState(t, controller, speech.StateIdle)
}

func waitForState(t *testing.T, controller *speech.Controller, want speech.State) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for controller.State() != want {
		select {
		case <-deadline:
			t.Fatalf("controller never reached %q, state = %q", want, controller.State())
		case <-time.After(5 * time.Millisecond):
		}
	}
}
