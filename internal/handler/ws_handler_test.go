package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escolar-app/escolar-backend/internal/model"
	ws "github.com/escolar-app/escolar-backend/internal/websocket"
)

// streamEnvelope is the shape every server frame decodes into.
type streamEnvelope struct {
	Event  ws.Event      `json:"event"`
	Notice *model.Notice `json:"notice,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// dialStream starts an HTTP server running the notice pump over the given
// message channel and returns a connected client.
func dialStream(t *testing.T, msgs <-chan *redis.Message) *websocket.Conn {
	t.Helper()

	h := &WSHandler{log: zerolog.Nop(), upgrader: buildUpgrader(nil)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		h.stream(r.Context(), conn, h.log, msgs)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func readFrame(t *testing.T, client *websocket.Conn) streamEnvelope {
	t.Helper()
	require.NoError(t, client.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, raw, err := client.ReadMessage()
	require.NoError(t, err)
	var env streamEnvelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func TestNoticeStreamAnswersPing(t *testing.T) {
	msgs := make(chan *redis.Message)
	client := dialStream(t, msgs)

	require.NoError(t, client.WriteJSON(ws.RequestEnvelope{Action: ws.ActionPing}))
	env := readFrame(t, client)
	assert.Equal(t, ws.EventPong, env.Event)
}

// Pings raced against notice forwards must never collide on the connection:
// every outbound frame goes through the single select loop.
func TestNoticeStreamConcurrentPingsAndNotices(t *testing.T) {
	const count = 50

	msgs := make(chan *redis.Message)
	client := dialStream(t, msgs)

	pingsDone := make(chan struct{})
	go func() {
		defer close(pingsDone)
		for i := 0; i < count; i++ {
			_ = client.WriteJSON(ws.RequestEnvelope{Action: ws.ActionPing})
		}
	}()
	go func() {
		for i := 0; i < count; i++ {
			notice := model.Notice{
				ID:        uuid.New(),
				Title:     fmt.Sprintf("notice %d", i),
				Body:      "body",
				AuthorID:  uuid.New(),
				CreatedAt: time.Now().UTC(),
			}
			payload, _ := json.Marshal(notice)
			msgs <- &redis.Message{Payload: string(payload)}
		}
	}()

	notices := 0
	for notices < count {
		env := readFrame(t, client)
		switch env.Event {
		case ws.EventNotice:
			require.NotNil(t, env.Notice)
			notices++
		case ws.EventPong:
		default:
			t.Fatalf("unexpected event %q", env.Event)
		}
	}

	// The pump keeps answering pings after the burst.
	<-pingsDone
	require.NoError(t, client.WriteJSON(ws.RequestEnvelope{Action: ws.ActionPing}))
	for {
		if env := readFrame(t, client); env.Event == ws.EventPong {
			break
		}
	}
}

func TestNoticeStreamReportsMalformedPayload(t *testing.T) {
	msgs := make(chan *redis.Message, 1)
	client := dialStream(t, msgs)

	msgs <- &redis.Message{Payload: "{not json"}
	env := readFrame(t, client)
	assert.Equal(t, ws.EventError, env.Event)
	assert.Equal(t, "malformed notice payload", env.Error)
}

func TestNoticeStreamStopsOnChannelClose(t *testing.T) {
	msgs := make(chan *redis.Message)
	h := &WSHandler{log: zerolog.Nop(), upgrader: buildUpgrader(nil)}

	stopped := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		h.stream(context.Background(), conn, h.log, msgs)
		close(stopped)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer client.Close()

	close(msgs)
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not stop after channel close")
	}
}
