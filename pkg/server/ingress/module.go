// Package ingress accepts live transcription clients over WebSockets.
package ingress

import (
	"context"

	"github.com/cfoust/tactilink/pkg/server/service"
)

// A unique identifier for a live client for the lifetime of its connection.
type ClientID uint32

const (
	CLIENT_MESSAGE_LIMIT int = 16
)

// Transcriber is the part of the service live clients can reach.
type Transcriber interface {
	Transcribe(text string) string
	ReverseTranscribe(codes string) string
	Signage(ctx context.Context, text string, format service.Format, mirror bool) ([]byte, error)
}

var _ Transcriber = (*service.Service)(nil)
