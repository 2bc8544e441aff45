package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(Config{BaseURL: server.URL + "/", PredictPath: "/api/predict"}, nil)
	client.HTTPClient = server.Client()
	return client
}

func TestClientPredict(t *testing.T) {
	var gotID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		gotID = r.Header.Get(RequestIDHeader)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"text": "great movie"}, body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"sentiment":"positive","confidence":93.5,"all_scores":{"negative":6.5,"positive":93.5}}`)
	})

	raw, err := client.Predict(context.Background(), "great movie")
	require.NoError(t, err)
	_, err = uuid.Parse(gotID)
	assert.NoError(t, err)

	res := Normalize(raw)
	require.NotNil(t, res.Label)
	assert.Equal(t, "positive", *res.Label)
	assert.Equal(t, 93.5, *res.Confidence)
}

func TestClientPredictForwardsRequestID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-42", r.Header.Get(RequestIDHeader))
		_, _ = io.WriteString(w, `{}`)
	})
	_, err := client.Predict(WithRequestID(context.Background(), "req-42"), "hello")
	require.NoError(t, err)
}

func TestClientPredictFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		kind    error
		message string
	}{
		{"error field", http.StatusBadRequest, `{"error":"No text provided"}`, ErrTransport, "No text provided"},
		{"plain body", http.StatusInternalServerError, "model crashed\n", ErrTransport, "model crashed"},
		{"json without error", http.StatusBadGateway, `{"detail":"x"}`, ErrTransport, `{"detail":"x"}`},
		{"empty body", http.StatusServiceUnavailable, "", ErrTransport, "Server error: 503"},
		{"invalid json", http.StatusOK, "<html>", ErrParse, ""},
		{"array body", http.StatusOK, "[]", ErrParse, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := client.Predict(context.Background(), "text")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
		})
	}
}

func TestClientPredictTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(Config{BaseURL: url, PredictPath: "/api/predict"}, nil)
	_, err := client.Predict(context.Background(), "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)

	var ae *AnalyzeError
	require.True(t, errors.As(err, &ae))
	assert.Contains(t, ae.Error(), "do request")
}

func TestClientPredictCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Predict(ctx, "text")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, ErrTransport)
}
