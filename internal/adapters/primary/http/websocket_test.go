package http

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckfold/deckfold/internal/domain/ports"
)

func dialTestServer(t *testing.T, srv *Server) *websocket.Conn {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go srv.hub.Run(ctx)

	ts := httptest.NewServer(srv.setupRoutes())
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestWebSocket_ConnectAndGreet(t *testing.T) {
	srv, _ := newTestServer(t, "# Deck")
	conn := dialTestServer(t, srv)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var event ports.UpdateEvent
	require.NoError(t, conn.ReadJSON(&event))

	assert.Equal(t, "connected", event.Type)
	data, ok := event.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["client"])
}

func TestWebSocket_ReceivesBroadcasts(t *testing.T) {
	srv, _ := newTestServer(t, "# Deck")
	conn := dialTestServer(t, srv)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var event ports.UpdateEvent
	require.NoError(t, conn.ReadJSON(&event)) // connected greeting

	require.Eventually(t, func() bool { return srv.hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	srv.BroadcastReload()

	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, ports.EventTypeReload, event.Type)
}

func TestWebSocket_DisconnectUnregisters(t *testing.T) {
	srv, _ := newTestServer(t, "# Deck")
	conn := dialTestServer(t, srv)

	require.Eventually(t, func() bool { return srv.hub.Count() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool { return srv.hub.Count() == 0 }, time.Second, 5*time.Millisecond)
}
