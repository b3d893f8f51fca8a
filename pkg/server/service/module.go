// Package service exposes the codec and the renderer over HTTP.
package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cfoust/tactilink/pkg/braille"
	"github.com/cfoust/tactilink/pkg/cache"
	"github.com/cfoust/tactilink/pkg/config"
	"github.com/cfoust/tactilink/pkg/render"
	"github.com/cfoust/tactilink/pkg/utils"
)

type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case "", FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unsupported format %q", value)
}

func (f Format) MediaType() string {
	if f == FormatPNG {
		return render.MediaTypePNG
	}
	return render.MediaTypeSVG
}

// Service performs transcriptions on behalf of the HTTP API and the live
// endpoint. It holds no per-request state.
type Service struct {
	settings config.Config
	options  braille.Options
	store    cache.Store
	events   *utils.Topic[Event]
	stats    *Stats
	session  utils.Session
	handler  http.Handler
	live     http.Handler
}

// NewService builds a service. store may be nil to disable caching.
func NewService(ctx context.Context, settings config.Config, store cache.Store) *Service {
	service := &Service{
		settings: settings,
		options: braille.Options{
			MultiplicationSign: settings.Codec.MultiplicationSign,
		},
		store:   store,
		events:  utils.NewTopic[Event](),
		stats:   NewStats(),
		session: utils.NewSession(ctx),
	}
	service.handler = service.routes()
	return service
}

// Start begins collecting statistics until Shutdown.
func (s *Service) Start() {
	subscriber := s.events.Subscribe()
	go s.stats.Poll(s.session.Ctx(), subscriber)
}

func (s *Service) Shutdown() {
	s.session.Cancel()
}

// SetLive mounts the live endpoint under /ws/.
func (s *Service) SetLive(live http.Handler) {
	s.live = live
}

func (s *Service) Settings() config.Config {
	return s.settings
}

func (s *Service) Stats() *Stats {
	return s.stats
}

func (s *Service) Uptime() time.Duration {
	return s.session.Uptime()
}

func (s *Service) publish(op string, started time.Time, symbols int, hit bool) {
	s.events.Publish(Event{
		Op:       op,
		Duration: time.Since(started),
		Symbols:  symbols,
		CacheHit: hit,
	})
}

// Transcribe encodes text and returns the wire form.
func (s *Service) Transcribe(text string) string {
	started := time.Now()
	sequence := braille.EncodeWith(text, s.options)
	s.publish(OpTranscribe, started, len(sequence), false)
	return sequence.String()
}

// ReverseTranscribe decodes a wire string.
func (s *Service) ReverseTranscribe(codes string) string {
	started := time.Now()
	sequence := braille.Parse(codes)
	text := braille.Decode(sequence)
	s.publish(OpReverseTranscribe, started, len(sequence), false)
	return text
}

// Signage encodes text and renders it with the text as caption.
func (s *Service) Signage(ctx context.Context, text string, format Format, mirror bool) ([]byte, error) {
	started := time.Now()
	sequence := braille.EncodeWith(text, s.options)

	op := OpSignage
	if mirror {
		op = OpMirrorSignage
	}

	key := cache.Key(string(format), fmt.Sprint(mirror), fmt.Sprint(s.options.MultiplicationSign), text)
	data, hit, err := cache.Fetch(ctx, s.store, key, func() ([]byte, error) {
		var drawing render.Drawing
		if mirror {
			drawing = render.RenderMirror(sequence, text)
		} else {
			drawing = render.Render(sequence, text)
		}

		if format == FormatPNG {
			return encodePNG(drawing, s.settings.Render.PNGScale)
		}
		return drawing.SVG()
	})
	if err != nil {
		return nil, err
	}

	s.publish(op, started, len(sequence), hit)
	return data, nil
}
