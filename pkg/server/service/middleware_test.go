package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ok(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
}

func TestCORS(t *testing.T) {
	handler := CORS([]string{"https://tactilink.example"}, http.HandlerFunc(ok))

	request := httptest.NewRequest(http.MethodPost, "/api/transcribe", nil)
	request.Header.Set("Origin", "https://tactilink.example")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusTeapot, recorder.Code)
	assert.Equal(t, "https://tactilink.example", recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodPost, "/api/transcribe", nil)
	request.Header.Set("Origin", "https://elsewhere.example")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS([]string{"*"}, http.HandlerFunc(ok))

	request := httptest.NewRequest(http.MethodOptions, "/api/transcribe", nil)
	request.Header.Set("Origin", "https://anywhere.example")
	request.Header.Set("Access-Control-Request-Method", "POST")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "*", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, recorder.Header().Get("Access-Control-Allow-Methods"), "POST")
	assert.Contains(t, recorder.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
}

func TestDeviceType(t *testing.T) {
	assert.Equal(t, "unknown", DeviceType(""))
	assert.Equal(t, "desktop", DeviceType("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"))
	assert.Equal(t, "mobile", DeviceType("Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1"))
	assert.Equal(t, "bot", DeviceType("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"))
}

func TestLogRequestsStatus(t *testing.T) {
	recorder := httptest.NewRecorder()
	LogRequests(http.HandlerFunc(ok)).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, recorder.Code)
}
