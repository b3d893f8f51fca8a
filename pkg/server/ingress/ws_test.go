package ingress

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cfoust/tactilink/pkg/config"
	"github.com/cfoust/tactilink/pkg/server/protocol"
	"github.com/cfoust/tactilink/pkg/server/service"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
)

func newTestServer(t *testing.T, settings *config.Config) (*LiveIngress, *httptest.Server) {
	svc := service.NewService(context.Background(), *settings, nil)
	svc.Start()
	t.Cleanup(svc.Shutdown)

	live := NewLiveIngress(svc, *settings)
	svc.SetLive(live)

	server := httptest.NewServer(svc)
	t.Cleanup(server.Close)
	return live, server
}

func defaultSettings(t *testing.T) *config.Config {
	settings, err := config.Process(nil)
	require.NoError(t, err)
	return settings
}

func wsURL(server *httptest.Server) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/"
}

func dial(t *testing.T, ctx context.Context, server *httptest.Server) *websocket.Conn {
	return dialWith(t, ctx, server, nil)
}

func dialWith(t *testing.T, ctx context.Context, server *httptest.Server, options *websocket.DialOptions) *websocket.Conn {
	c, _, err := websocket.Dial(ctx, wsURL(server), options)
	require.NoError(t, err)
	t.Cleanup(func() {
		c.Close(websocket.StatusNormalClosure, "")
	})

	// Every connection starts with a hello.
	var hello protocol.Hello
	read(t, ctx, c, &hello)
	assert.Equal(t, protocol.HelloOp, hello.Op)
	assert.Equal(t, "tactilink-backend", hello.Service)

	return c
}

func read(t *testing.T, ctx context.Context, c *websocket.Conn, target any) {
	typ, data, err := c.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, websocket.MessageBinary, typ)
	require.NoError(t, cbor.Unmarshal(data, target))
}

func roundTrip(t *testing.T, ctx context.Context, c *websocket.Conn, request protocol.Request) protocol.Result {
	data, err := cbor.Marshal(request)
	require.NoError(t, err)
	require.NoError(t, c.Write(ctx, websocket.MessageBinary, data))

	var result protocol.Result
	read(t, ctx, c, &result)
	return result
}

func TestLive(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	live, server := newTestServer(t, defaultSettings(t))
	c := dial(t, ctx, server)

	assert.Eventually(t, func() bool {
		return live.NumClients() == 1
	}, time.Second, 10*time.Millisecond)

	result := roundTrip(t, ctx, c, protocol.Request{Op: protocol.EncodeOp, Id: 1, Text: "Hola"})
	assert.Equal(t, protocol.ResultOp, result.Op)
	assert.Equal(t, 1, result.Id)
	assert.True(t, result.Success)
	assert.Equal(t, "46 125 135 123 1", result.Output)

	result = roundTrip(t, ctx, c, protocol.Request{Op: protocol.DecodeOp, Id: 2, Text: "# 12 14"})
	assert.True(t, result.Success)
	assert.Equal(t, "23", result.Output)

	result = roundTrip(t, ctx, c, protocol.Request{Op: protocol.RenderOp, Id: 3, Text: "2"})
	assert.True(t, result.Success)
	assert.True(t, strings.HasPrefix(string(result.Data), "<svg"))

	result = roundTrip(t, ctx, c, protocol.Request{Op: protocol.MirrorOp, Id: 4, Text: "2"})
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.Data)

	result = roundTrip(t, ctx, c, protocol.Request{Op: protocol.Op(42), Id: 5})
	assert.False(t, result.Success)
	assert.Equal(t, 5, result.Id)
	assert.Contains(t, result.Output, "unknown op")

	c.Close(websocket.StatusNormalClosure, "")
	assert.Eventually(t, func() bool {
		return live.NumClients() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestLiveRateLimit(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	settings := defaultSettings(t)
	settings.Live.MessagesPerSecond = 0.001
	settings.Live.Burst = 2

	_, server := newTestServer(t, settings)
	c := dial(t, ctx, server)

	for i := 0; i < 2; i++ {
		result := roundTrip(t, ctx, c, protocol.Request{Op: protocol.EncodeOp, Id: i, Text: "a"})
		assert.True(t, result.Success)
	}

	result := roundTrip(t, ctx, c, protocol.Request{Op: protocol.EncodeOp, Id: 3, Text: "a"})
	assert.False(t, result.Success)
	assert.Equal(t, "rate limit exceeded", result.Output)
}

func TestOriginPatterns(t *testing.T) {
	assert.Equal(t,
		[]string{"*", "localhost:3000", "braille.example.org", "*.example.org"},
		originPatterns([]string{"*", "http://localhost:3000", "https://braille.example.org", "*.example.org"}),
	)
}

func TestLiveConfiguredOrigin(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	settings := defaultSettings(t)
	settings.Server.CORS = []string{"http://localhost:3000"}

	_, server := newTestServer(t, settings)

	// The HTTP API and the live endpoint agree on the same origin.
	request, err := http.NewRequest(http.MethodPost, server.URL+"/api/transcribe", strings.NewReader(`{"text": "a"}`))
	require.NoError(t, err)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Origin", "http://localhost:3000")
	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	response.Body.Close()
	assert.Equal(t, "http://localhost:3000", response.Header.Get("Access-Control-Allow-Origin"))

	header := http.Header{}
	header.Set("Origin", "http://localhost:3000")
	c := dialWith(t, ctx, server, &websocket.DialOptions{HTTPHeader: header})

	result := roundTrip(t, ctx, c, protocol.Request{Op: protocol.EncodeOp, Id: 1, Text: "a"})
	assert.True(t, result.Success)
	assert.Equal(t, "1", result.Output)

	// Other origins are still turned away.
	header.Set("Origin", "http://elsewhere.example")
	_, resp, err := websocket.Dial(ctx, wsURL(server), &websocket.DialOptions{HTTPHeader: header})
	assert.Error(t, err)
	if resp != nil {
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	}
}
