package studio

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedGenerator blocks each prompt until the test releases it.
type gatedGenerator struct {
	calls atomic.Int32
	gates map[string]chan result
}

type result struct {
	url string
	err error
}

func (g *gatedGenerator) Generate(ctx context.Context, prompt, apiKey string) (string, error) {
	g.calls.Add(1)
	r := <-g.gates[prompt]
	return r.url, r.err
}

func TestStudio_Submit_BlankInput(t *testing.T) {
	gen := &gatedGenerator{}
	s := New(gen, nil)

	for _, in := range [][2]string{{"", "k"}, {"p", ""}, {"  ", "k"}, {"p", "\t"}} {
		_, _, err := s.Submit(context.Background(), in[0], in[1])
		assert.ErrorIs(t, err, ErrBlankInput)
	}
	assert.Equal(t, int32(0), gen.calls.Load())
	assert.Empty(t, s.Records())
}

func TestStudio_Submit_ResolvesOutOfOrder(t *testing.T) {
	gen := &gatedGenerator{gates: map[string]chan result{
		"first":  make(chan result),
		"second": make(chan result),
	}}
	s := New(gen, nil)

	id1, done1, err := s.Submit(context.Background(), "first", "k")
	require.NoError(t, err)
	id2, done2, err := s.Submit(context.Background(), "second", "k")
	require.NoError(t, err)

	recs := s.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, id2, recs[0].ID)
	assert.Equal(t, StatusPending, recs[0].Status)
	assert.Equal(t, StatusPending, recs[1].Status)

	// second answers first
	gen.gates["second"] <- result{err: errors.New("API quota exceeded. Please check your usage limits.")}
	rec2 := <-done2
	assert.Equal(t, StatusFailed, rec2.Status)

	still, _ := s.Book().Get(id1)
	assert.Equal(t, StatusPending, still.Status)

	gen.gates["first"] <- result{url: "https://x/1.mp4"}
	rec1 := <-done1
	assert.Equal(t, StatusCompleted, rec1.Status)
	assert.Equal(t, "https://x/1.mp4", rec1.VideoURL)

	s.Wait()
	got2, _ := s.Book().Get(id2)
	assert.Equal(t, StatusFailed, got2.Status)
	assert.Equal(t, "API quota exceeded. Please check your usage limits.", got2.Error)
	assert.Empty(t, got2.VideoURL)
}

func TestStudio_SubmitAll_AgainstBridge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")

		if req.Prompt == "slow" {
			time.Sleep(50 * time.Millisecond)
		}
		if req.Prompt == "bad" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Invalid API key. Please check your Google AI API key."}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"videoUrl": "https://cdn/" + req.Prompt + ".mp4",
			"message":  "Video generated successfully",
		})
	}))
	defer srv.Close()

	s := New(NewClient(srv.URL, srv.Client()), nil)
	recs, err := s.SubmitAll(context.Background(), []string{"slow", "fast", "bad"}, "key")
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, StatusCompleted, recs[0].Status)
	assert.Equal(t, "https://cdn/slow.mp4", recs[0].VideoURL)
	assert.Equal(t, StatusCompleted, recs[1].Status)
	assert.Equal(t, "https://cdn/fast.mp4", recs[1].VideoURL)
	assert.Equal(t, StatusFailed, recs[2].Status)
	assert.Equal(t, "Invalid API key. Please check your Google AI API key.", recs[2].Error)

	assert.Equal(t, 3, s.Book().Len())
	assert.Equal(t, 0, s.Book().Pending())
}

func TestClient_Generate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"error field", http.StatusInternalServerError, `{"error":"model overloaded","details":"stack"}`, "model overloaded"},
		{"non json error", http.StatusBadGateway, `<html>bad gateway</html>`, defaultFailureMessage},
		{"ok without url", http.StatusOK, `{"message":"Video generated successfully"}`, defaultFailureMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, srv.Client()).Generate(context.Background(), "p", "k")
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestClient_Generate_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := New(NewClient(url, nil), nil)
	_, done, err := s.Submit(context.Background(), "p", "k")
	require.NoError(t, err)

	rec := <-done
	assert.Equal(t, StatusFailed, rec.Status)
	assert.NotEmpty(t, rec.Error)
}
