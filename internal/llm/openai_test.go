package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  Config{APIKey: "test-key"},
			wantErr: false,
		},
		{
			name:    "missing API key",
			config:  Config{APIKey: ""},
			wantErr: true,
		},
		{
			name: "custom model and settings",
			config: Config{
				APIKey:    "test-key",
				Model:     "gpt-4o",
				MaxTokens: 50,
				Timeout:   5 * time.Second,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := newOpenAIClient(tt.config)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func TestOpenAIComplete(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantText string
		wantErr  bool
	}{
		{
			name: "successful completion",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

				var req map[string]any
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "gpt-4o-mini", req["model"])

				_ = json.NewEncoder(w).Encode(map[string]any{
					"choices": []map[string]any{
						{"message": map[string]string{"role": "assistant", "content": "Food"}},
					},
				})
			},
			wantText: "Food",
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "internal error", http.StatusInternalServerError)
			},
			wantErr: true,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
			wantErr: true,
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client, err := newOpenAIClient(Config{APIKey: "test-key"})
			require.NoError(t, err)
			client.(*openAIClient).endpoint = server.URL

			resp, err := client.Complete(context.Background(), "classify this")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, resp.Text)
		})
	}
}

func TestOpenAICompleteRespectsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client, err := newOpenAIClient(Config{APIKey: "test-key"})
	require.NoError(t, err)
	client.(*openAIClient).endpoint = server.URL

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Complete(ctx, "classify this")
	require.Error(t, err)
}
