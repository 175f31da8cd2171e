package bridge

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veo-studio/modules/common/config"
)

func newTestRouter(t *testing.T, cfg *config.Config, up Upstream) *mux.Router {
	t.Helper()
	r := mux.NewRouter()
	NewHandler(NewService(cfg, up, nil, nil), nil).RegisterRoutes(r)
	return r
}

func post(t *testing.T, h http.Handler, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(w, req)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body must be JSON: %s", w.Body.String())
	return w, out
}

func TestHandleGenerate_MissingFields(t *testing.T) {
	bodies := []string{
		`{"prompt":"a cat"}`,
		`{"apiKey":"k"}`,
		`{}`,
		`{"prompt":"","apiKey":""}`,
		`not json`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			up := &fakeUpstream{resp: inlineVideo("AAAA")}
			w, out := post(t, newTestRouter(t, config.Default(), up), "/api/generate", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, map[string]interface{}{"error": "Missing prompt or API key"}, out)
			assert.Equal(t, int32(0), up.calls.Load())
		})
	}
}

func TestHandleGenerate_Success(t *testing.T) {
	up := &fakeUpstream{resp: inlineVideo("AAAA")}
	router := newTestRouter(t, config.Default(), up)

	for _, path := range []string{"/api/generate", "/generate"} {
		w, out := post(t, router, path, `{"prompt":"a cat","apiKey":"k"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Equal(t, map[string]interface{}{
			"videoUrl": "data:video/mp4;base64,AAAA",
			"message":  "Video generated successfully",
		}, out)
	}
	assert.Equal(t, int32(2), up.calls.Load())
}

func TestHandleGenerate_ClassifiedErrors(t *testing.T) {
	tests := []struct {
		name    string
		up      *fakeUpstream
		status  int
		message string
	}{
		{"invalid key", &fakeUpstream{err: errors.New("API key not valid")}, http.StatusUnauthorized, MsgInvalidCredential},
		{"quota", &fakeUpstream{err: errors.New("quota exceeded for project")}, http.StatusTooManyRequests, MsgQuotaExceeded},
		{"unknown", &fakeUpstream{err: errors.New("model overloaded")}, http.StatusInternalServerError, "model overloaded"},
		{"no parts", &fakeUpstream{resp: &Response{Candidates: []*Candidate{{Content: &Content{}}}}}, http.StatusInternalServerError, MsgNoVideoData},
		{"unrecognized", &fakeUpstream{resp: &Response{Candidates: []*Candidate{{Content: &Content{Parts: []*Part{{}}}}}}}, http.StatusInternalServerError, MsgUnrecognizedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, out := post(t, newTestRouter(t, config.Default(), tt.up), "/api/generate", `{"prompt":"p","apiKey":"k"}`)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, out["error"])
			assert.NotContains(t, out, "videoUrl")
			if tt.status != http.StatusInternalServerError {
				assert.NotContains(t, out, "details")
			}
		})
	}
}

func TestHandleGenerate_DetailsOnlyOutsideProduction(t *testing.T) {
	up := &fakeUpstream{err: errors.New("socket hang up")}

	dev := config.Default()
	_, out := post(t, newTestRouter(t, dev, up), "/api/generate", `{"prompt":"p","apiKey":"k"}`)
	require.Contains(t, out, "details")
	assert.Contains(t, out["details"], "socket hang up")

	prod := config.Default()
	prod.AppEnv = config.EnvProduction
	w, out := post(t, newTestRouter(t, prod, up), "/api/generate", `{"prompt":"p","apiKey":"k"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, map[string]interface{}{"error": "socket hang up"}, out)
}

func TestHandleGenerate_Options(t *testing.T) {
	up := &fakeUpstream{}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/generate", nil)
	newTestRouter(t, config.Default(), up).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int32(0), up.calls.Load())
}
