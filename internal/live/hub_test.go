package live

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T, origins ...string) (*Hub, *httptest.Server, uuid.UUID) {
	t.Helper()

	if len(origins) == 0 {
		origins = []string{"*"}
	}
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)), origins)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	bracketID := uuid.New()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, bracketID)
	}))

	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return hub, server, bracketID
}

func dial(t *testing.T, server *httptest.Server, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	return websocket.DefaultDialer.Dial(url, header)
}

func TestHubPublishReachesSubscribers(t *testing.T) {
	hub, server, bracketID := startHub(t)

	conn, _, err := dial(t, server, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.Subscribers(bracketID) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Publish(bracketID, "match.completed", map[string]string{"match_id": "R1-M1"})
	// other brackets stay quiet
	hub.Publish(uuid.New(), "match.completed", nil)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type      string            `json:"type"`
		BracketID uuid.UUID         `json:"bracket_id"`
		Payload   map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "match.completed", msg.Type)
	assert.Equal(t, bracketID, msg.BracketID)
	assert.Equal(t, "R1-M1", msg.Payload["match_id"])
}

func TestHubDropsClosedClients(t *testing.T) {
	hub, server, bracketID := startHub(t)

	conn, _, err := dial(t, server, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return hub.Subscribers(bracketID) == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		return hub.Subscribers(bracketID) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestHubRejectsUnknownOrigin(t *testing.T) {
	_, server, _ := startHub(t, "https://club.example")

	header := http.Header{}
	header.Set("Origin", "https://elsewhere.example")
	_, resp, err := dial(t, server, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
