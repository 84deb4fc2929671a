package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolarity(t *testing.T) {
	t.Parallel()

	var gotAuth, gotPath, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		var body struct {
			Text string `json:"text"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotText = body.Text
		_, _ = w.Write([]byte(`{"polarity": -0.35}`))
	}))
	defer srv.Close()

	score, err := NewClient(srv.URL+"/", "secret").Polarity(context.Background(), "mercado em queda")

	require.NoError(t, err)
	assert.InDelta(t, -0.35, score, 1e-9)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "/sentiment", gotPath)
	assert.Equal(t, "mercado em queda", gotText)
}

func TestPolarityClamped(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"polarity": 3.2}`))
	}))
	defer srv.Close()

	score, err := NewClient(srv.URL, "").Polarity(context.Background(), "ótimo")

	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestPolarityHTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Polarity(context.Background(), "x")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
