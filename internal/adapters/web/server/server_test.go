package server_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/lcalzada-xor/iwbind/internal/adapters/web"
	"github.com/lcalzada-xor/iwbind/internal/adapters/web/server"
	"github.com/lcalzada-xor/iwbind/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupServer helper creates a server instance with a mock front end
func setupServer(t *testing.T) (*server.Server, *web.MockFrontEnd, http.Handler) {
	fe := new(web.MockFrontEnd)
	srv := server.NewServer("127.0.0.1:0", fe, nil)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return srv, fe, server.SetupRoutes(ctx, srv)
}

func TestRoutes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		mockSetup      func(fe *web.MockFrontEnd)
		expectedStatus int
	}{
		{"get window", http.MethodGet, "/api/window", func(fe *web.MockFrontEnd) {
			fe.On("Snapshot").Return(domain.WindowSnapshot{ID: "w"}, nil)
		}, http.StatusOK},
		{"open window", http.MethodPost, "/api/window", func(fe *web.MockFrontEnd) {
			fe.On("OpenWindow").Return(domain.WindowSnapshot{ID: "w"}, nil)
		}, http.StatusCreated},
		{"close window", http.MethodDelete, "/api/window", func(fe *web.MockFrontEnd) {
			fe.On("CloseWindow").Return(nil)
		}, http.StatusNoContent},
		{"window text", http.MethodGet, "/api/window/text", func(fe *web.MockFrontEnd) {
			fe.On("RenderWindow").Return("iwbind", nil)
		}, http.StatusOK},
		{"indicators", http.MethodGet, "/api/indicators", func(fe *web.MockFrontEnd) {
			fe.On("Indicators").Return([]domain.IndicatorStatus{{Icon: "network-wireless-connected"}}, nil)
		}, http.StatusOK},
		{"wrong method", http.MethodPut, "/api/window", func(*web.MockFrontEnd) {}, http.StatusMethodNotAllowed},
		{"wrong method on text", http.MethodPut, "/api/window/text", func(*web.MockFrontEnd) {}, http.StatusMethodNotAllowed},
		{"wrong method on indicators", http.MethodDelete, "/api/indicators", func(*web.MockFrontEnd) {}, http.StatusMethodNotAllowed},
		{"unknown window subpath", http.MethodGet, "/api/window/nope", func(*web.MockFrontEnd) {}, http.StatusNotFound},
		{"unknown path", http.MethodGet, "/api/nope", func(*web.MockFrontEnd) {}, http.StatusNotFound},
		{"metrics", http.MethodGet, "/metrics", func(*web.MockFrontEnd) {}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, fe, h := setupServer(t)
			tt.mockSetup(fe)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			fe.AssertExpectations(t)
		})
	}
}

func TestWebSocketStreamsLifecycleEvents(t *testing.T) {
	srv, _, _ := setupServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(ctx, ln)

	url := "ws://" + ln.Addr().String() + "/ws"
	var conn *websocket.Conn
	require.Eventually(t, func() bool {
		conn, _, err = websocket.DefaultDialer.Dial(url, nil)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	defer conn.Close()

	// Registration happens after the upgrade completes.
	require.Eventually(t, func() bool {
		return srv.WSManager.ClientCount() == 1
	}, 2*time.Second, 10*time.Millisecond)

	srv.WSManager.OnLifecycle(domain.LifecycleEvent{Kind: domain.EventWindowOpened, Window: "w1"})
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type    string                `json:"type"`
		Payload domain.LifecycleEvent `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "window.opened", msg.Type)
	assert.Equal(t, "w1", msg.Payload.Window)
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	_, _, h := setupServer(t)
	ts := httptest.NewServer(h)
	defer ts.Close()

	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
