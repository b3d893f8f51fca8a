package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cfoust/tactilink/pkg/render"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog/log"
)

const (
	MediaTypeJSON = "application/json"
	MediaTypeCBOR = "application/cbor"

	// Requests are a few thousand characters at most.
	MAX_BODY_SIZE = 1 << 20

	missingText  = "No se proporcionó texto de entrada."
	missingCodes = "No se proporcionaron códigos Braille de entrada."
)

type TranscribeRequest struct {
	Text *string `json:"text" cbor:"text"`
}

type TranscribeResponse struct {
	Input        string `json:"input" cbor:"input"`
	BrailleCodes string `json:"braille_codes" cbor:"braille_codes"`
}

type ReverseTranscribeRequest struct {
	BrailleCodes *string `json:"braille_codes" cbor:"braille_codes"`
}

type ReverseTranscribeResponse struct {
	Input       string `json:"input" cbor:"input"`
	SpanishText string `json:"spanish_text" cbor:"spanish_text"`
}

type ErrorResponse struct {
	Error string `json:"error" cbor:"error"`
}

type HealthResponse struct {
	Status  string  `json:"status" cbor:"status"`
	Service string  `json:"service" cbor:"service"`
	Uptime  float64 `json:"uptime" cbor:"uptime"`
	Snapshot
}

func (s *Service) routes() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("POST /api/transcribe", s.handleTranscribe)
	api.HandleFunc("POST /api/reverse-transcribe", s.handleReverseTranscribe)
	api.HandleFunc("POST /api/generar_senaletica", s.handleSignage(false))
	api.HandleFunc("POST /api/generar_senaletica_espejo", s.handleSignage(true))
	api.HandleFunc("GET /health", s.handleHealth)

	var handler http.Handler = api
	if s.settings.Server.Compress {
		handler = gzhttp.GzipHandler(handler)
	}

	root := http.NewServeMux()
	root.Handle("/", handler)
	// The live endpoint hijacks the connection, so it stays outside gzip.
	root.HandleFunc("/ws/", func(w http.ResponseWriter, r *http.Request) {
		if s.live == nil {
			http.NotFound(w, r)
			return
		}
		s.live.ServeHTTP(w, r)
	})

	return LogRequests(CORS(s.settings.Server.CORS, root))
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func isCBOR(header string) bool {
	return strings.Contains(header, MediaTypeCBOR)
}

// readBody decodes a JSON or CBOR body, depending on Content-Type.
func readBody(r *http.Request, target any) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, MAX_BODY_SIZE))
	if err != nil {
		return err
	}

	if isCBOR(r.Header.Get("Content-Type")) {
		return cbor.Unmarshal(data, target)
	}

	return json.Unmarshal(data, target)
}

// respond writes body as CBOR if the client accepts it and JSON otherwise.
func respond(w http.ResponseWriter, r *http.Request, status int, body any) {
	var (
		data        []byte
		err         error
		contentType = MediaTypeJSON
	)

	if isCBOR(r.Header.Get("Accept")) {
		contentType = MediaTypeCBOR
		data, err = cbor.Marshal(body)
	} else {
		data, err = json.Marshal(body)
	}

	if err != nil {
		log.Error().Err(err).Msg("could not encode response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	w.Write(data)
}

func (s *Service) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	var request TranscribeRequest
	if err := readBody(r, &request); err != nil || request.Text == nil {
		respond(w, r, http.StatusBadRequest, ErrorResponse{Error: missingText})
		return
	}

	respond(w, r, http.StatusOK, TranscribeResponse{
		Input:        *request.Text,
		BrailleCodes: s.Transcribe(*request.Text),
	})
}

func (s *Service) handleReverseTranscribe(w http.ResponseWriter, r *http.Request) {
	var request ReverseTranscribeRequest
	if err := readBody(r, &request); err != nil || request.BrailleCodes == nil {
		respond(w, r, http.StatusBadRequest, ErrorResponse{Error: missingCodes})
		return
	}

	respond(w, r, http.StatusOK, ReverseTranscribeResponse{
		Input:       *request.BrailleCodes,
		SpanishText: s.ReverseTranscribe(*request.BrailleCodes),
	})
}

func (s *Service) handleSignage(mirror bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			respond(w, r, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		var request TranscribeRequest
		if err := readBody(r, &request); err != nil || request.Text == nil {
			respond(w, r, http.StatusBadRequest, ErrorResponse{Error: missingText})
			return
		}

		data, err := s.Signage(r.Context(), *request.Text, format, mirror)
		if err != nil {
			log.Error().Err(err).Msg("could not render signage")
			respond(w, r, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}

		w.Header().Set("Content-Type", format.MediaType())
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Service:  s.settings.Server.Service,
		Uptime:   s.Uptime().Seconds(),
		Snapshot: s.stats.Snapshot(),
	})
}

func encodePNG(drawing render.Drawing, scale int) ([]byte, error) {
	var buffer bytes.Buffer
	if err := drawing.PNG(&buffer, scale); err != nil {
		return nil, fmt.Errorf("could not rasterize signage: %w", err)
	}
	return buffer.Bytes(), nil
}
