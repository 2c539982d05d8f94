// AngelaMos | 2026
// hub_test.go

package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrace/agritrace-api/internal/notify"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close() //nolint:errcheck
	}
	t.Cleanup(func() { _ = conn.Close() }) //nolint:errcheck
	return conn
}

func newHub(t *testing.T) (*notify.Hub, *httptest.Server) {
	t.Helper()

	hub := notify.NewHub(notify.HubConfig{
		CheckOrigin: func(*http.Request) bool { return true },
	})
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func TestHubDeliversToEveryClient(t *testing.T) {
	hub, srv := newHub(t)

	a := dial(t, srv)
	b := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 },
		time.Second, 10*time.Millisecond)

	err := hub.Publish(context.Background(), notify.Event{
		Name:    notify.EventNewFarmer,
		Message: "New farmer Alice Johnson registered in Eldoret",
	})
	require.NoError(t, err)

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)

		var got notify.Event
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, notify.EventNewFarmer, got.Name)
		assert.Equal(t, "New farmer Alice Johnson registered in Eldoret", got.Message)
	}
}

func TestHubForgetsDisconnectedClients(t *testing.T) {
	hub, srv := newHub(t)

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 },
		time.Second, 10*time.Millisecond)
}

func TestHubPublishWithoutClients(t *testing.T) {
	hub, _ := newHub(t)
	assert.NoError(t, hub.Publish(context.Background(), notify.Event{Name: notify.EventNewActivity}))
	assert.Zero(t, hub.ClientCount())
}

func TestHubCloseRejectsNewClients(t *testing.T) {
	hub, srv := newHub(t)
	hub.Close()

	conn := dial(t, srv)
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Zero(t, hub.ClientCount())
}
