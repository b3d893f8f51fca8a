package ingress

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cfoust/tactilink/pkg/config"
	"github.com/cfoust/tactilink/pkg/server/protocol"
	"github.com/cfoust/tactilink/pkg/server/service"
	"github.com/cfoust/tactilink/pkg/utils"
	"github.com/cfoust/tactilink/pkg/version"

	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"
	"golang.org/x/time/rate"
	"nhooyr.io/websocket"
)

const WRITE_TIMEOUT = 5 * time.Second

type LiveClient struct {
	id      ClientID
	host    string
	session utils.Session
	limiter *rate.Limiter
	send    chan []byte
}

func (c *LiveClient) Id() ClientID {
	return c.id
}

func (c *LiveClient) Host() string {
	return c.host
}

func (c *LiveClient) Reference() string {
	return fmt.Sprintf("live:%d", c.id)
}

type LiveIngress struct {
	transcriber Transcriber
	settings    config.LiveSettings
	origins     []string
	name        string

	clients map[*LiveClient]struct{}
	lastId  ClientID
	mutex   deadlock.Mutex
}

func NewLiveIngress(transcriber Transcriber, settings config.Config) *LiveIngress {
	return &LiveIngress{
		transcriber: transcriber,
		settings:    settings.Live,
		origins:     originPatterns(settings.Server.CORS),
		name:        settings.Server.Service,
		clients:     make(map[*LiveClient]struct{}),
	}
}

// originPatterns turns CORS origins such as "http://localhost:3000" into the
// host patterns websocket.Accept matches against.
func originPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, origin := range origins {
		parsed, err := url.Parse(origin)
		if origin == "*" || err != nil || parsed.Host == "" {
			patterns = append(patterns, origin)
			continue
		}
		patterns = append(patterns, parsed.Host)
	}
	return patterns
}

func WriteTimeout(ctx context.Context, timeout time.Duration, c *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.Write(ctx, websocket.MessageBinary, msg)
}

func (server *LiveIngress) AddClient(ctx context.Context, host string) *LiveClient {
	server.mutex.Lock()
	defer server.mutex.Unlock()

	server.lastId++
	client := &LiveClient{
		id:      server.lastId,
		host:    host,
		session: utils.NewSession(ctx),
		limiter: rate.NewLimiter(
			rate.Limit(server.settings.MessagesPerSecond),
			server.settings.Burst,
		),
		send: make(chan []byte, CLIENT_MESSAGE_LIMIT),
	}
	server.clients[client] = struct{}{}
	return client
}

func (server *LiveIngress) RemoveClient(client *LiveClient) {
	server.mutex.Lock()
	delete(server.clients, client)
	server.mutex.Unlock()
	client.session.Cancel()
}

func (server *LiveIngress) NumClients() int {
	server.mutex.Lock()
	defer server.mutex.Unlock()
	return len(server.clients)
}

// Handle answers a single request.
func (server *LiveIngress) Handle(ctx context.Context, client *LiveClient, request protocol.Request) protocol.Result {
	result := protocol.Result{
		Op: protocol.ResultOp,
		Id: request.Id,
	}

	if !client.limiter.Allow() {
		result.Output = "rate limit exceeded"
		return result
	}

	switch request.Op {
	case protocol.EncodeOp:
		result.Output = server.transcriber.Transcribe(request.Text)
	case protocol.DecodeOp:
		result.Output = server.transcriber.ReverseTranscribe(request.Text)
	case protocol.RenderOp, protocol.MirrorOp:
		mirror := request.Op == protocol.MirrorOp
		data, err := server.transcriber.Signage(ctx, request.Text, service.FormatSVG, mirror)
		if err != nil {
			result.Output = err.Error()
			return result
		}
		result.Data = data
	default:
		result.Output = fmt.Sprintf("unknown op %d", request.Op)
		return result
	}

	result.Success = true
	return result
}

func (server *LiveIngress) HandleClient(ctx context.Context, c *websocket.Conn, host string) error {
	client := server.AddClient(ctx, host)
	defer server.RemoveClient(client)
	ctx = client.session.Ctx()

	logger := log.With().Uint32("clientId", uint32(client.id)).Str("host", host).Logger()
	logger.Info().Msg("live client joined")

	hello, err := cbor.Marshal(protocol.Hello{
		Op:      protocol.HelloOp,
		Service: server.name,
		Version: version.Version,
	})
	if err != nil {
		return err
	}
	client.send <- hello

	receive := make(chan []byte)
	go func() {
		for {
			typ, message, err := c.Read(ctx)
			if err != nil {
				client.session.Cancel()
				return
			}
			if typ != websocket.MessageBinary {
				continue
			}

			select {
			case receive <- message:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case msg := <-receive:
			server.receive(ctx, client, logger, msg)
		case msg := <-client.send:
			err := WriteTimeout(ctx, WRITE_TIMEOUT, c, msg)
			if err != nil {
				logger.Error().Msg("client missed write timeout; disconnecting")
				return err
			}
		case <-ctx.Done():
			logger.Info().Msg("live client left")
			return ctx.Err()
		}
	}
}

func (server *LiveIngress) receive(ctx context.Context, client *LiveClient, logger zerolog.Logger, msg []byte) {
	var request protocol.Request
	if err := cbor.Unmarshal(msg, &request); err != nil {
		logger.Debug().Err(err).Msg("ignoring malformed message")
		return
	}

	result := server.Handle(ctx, client, request)
	bytes, err := cbor.Marshal(result)
	if err != nil {
		logger.Error().Err(err).Msg("could not encode result")
		return
	}

	select {
	case client.send <- bytes:
	default:
		logger.Warn().Int("id", request.Id).Msg("client too slow; dropping result")
	}
}

func (server *LiveIngress) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: server.origins,
	})
	if err != nil {
		log.Error().Err(err).Msg("error accepting live client")
		return
	}

	defer c.Close(websocket.StatusInternalError, "operational fault during transcription")

	hostname := r.RemoteAddr
	original, ok := r.Header["X-Forwarded-For"]
	if ok {
		hostname = original[0]
	}

	err = server.HandleClient(r.Context(), c, hostname)
	if errors.Is(err, context.Canceled) {
		return
	}
	if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
		websocket.CloseStatus(err) == websocket.StatusGoingAway {
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("live client failed")
	}
}
