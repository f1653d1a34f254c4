package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPProvider_Complete(t *testing.T) {
	var got completeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/complete", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completeResponse{OK: true, Answer: `{"title":"T"}`})
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL + "/")
	text, err := p.Complete(context.Background(), CompletionRequest{System: "sys", Prompt: "hi", MaxTokens: 50, Temperature: 0.7})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"T"}`, text)
	assert.Equal(t, completeRequest{System: "sys", Prompt: "hi", MaxTokens: 50, Temperature: 0.7}, got)
}

func TestHTTPProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusBadGateway)
			},
			wantErr: "status 502",
		},
		{
			name: "not ok",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(completeResponse{OK: false, Error: "quota exceeded"})
			},
			wantErr: "quota exceeded",
		},
		{
			name: "garbage body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("<html>"))
			},
			wantErr: "decode",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewHTTPProvider(srv.URL).Complete(context.Background(), CompletionRequest{Prompt: "x"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHTTPProvider_OrchestratorFallsBackOnOutage(t *testing.T) {
	_ = observeLogs(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	o := NewOrchestrator(NewHTTPProvider(srv.URL))
	c, src := o.GenerateWebsiteContent(context.Background(), plumber)
	assert.Equal(t, SourceFallback, src)
	assert.Equal(t, "Professional Plumbing Services", c.HeroHeadline)
}
