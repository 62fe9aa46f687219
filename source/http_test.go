package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdpulse/pulsewatch/model"
)

func newBackend(t *testing.T, cameraData string) (*httptest.Server, *float64) {
	t.Helper()

	saved := new(float64)
	mux := http.NewServeMux()
	mux.HandleFunc("/camera_data/cam-1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(cameraData))
	})
	mux.HandleFunc("/engagement_threshold/cam-1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var payload map[string]float64
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			*saved = payload["threshold"]
			w.WriteHeader(http.StatusOK)
			return
		}
		_, _ = w.Write([]byte(`{"engagement_threshold": 60}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, saved
}

func TestHTTP_History(t *testing.T) {
	server, _ := newBackend(t, `[
		{"timestamp": "Mon, 03 Mar 2025 10:00:00 GMT", "value": 40, "message": "ok"},
		{"timestamp": 1741000002000, "value": 62.5}
	]`)

	feed := NewHTTP(server.URL + "/")
	samples, err := feed.History(context.Background(), "cam-1")
	require.NoError(t, err)
	require.Equal(t, []model.Sample{
		{Time: "Mon, 03 Mar 2025 10:00:00 GMT", Value: 40},
		{Time: "1741000002000", Value: 62.5},
	}, samples)

	latest, err := feed.LatestSample(context.Background(), "cam-1")
	require.NoError(t, err)
	assert.Equal(t, model.Sample{Time: "1741000002000", Value: 62.5}, latest)
}

func TestHTTP_LatestSampleEmpty(t *testing.T) {
	server, _ := newBackend(t, `[]`)

	_, err := NewHTTP(server.URL).LatestSample(context.Background(), "cam-1")
	require.ErrorIs(t, err, ErrNoData)
}

func TestHTTP_InvalidValue(t *testing.T) {
	server, _ := newBackend(t, `[{"timestamp": "t1", "value": "high"}]`)

	_, err := NewHTTP(server.URL).LatestSample(context.Background(), "cam-1")
	require.ErrorIs(t, err, model.ErrInvalidSample)
	require.True(t, model.IsValidation(err))
}

func TestHTTP_ServerError(t *testing.T) {
	_, err := NewHTTP("http://127.0.0.1:1").History(context.Background(), "cam-1")
	require.Error(t, err)

	server, _ := newBackend(t, `[]`)
	_, err = NewHTTP(server.URL).History(context.Background(), "unknown")
	require.ErrorContains(t, err, "server error: 404")
}

func TestHTTP_Threshold(t *testing.T) {
	server, saved := newBackend(t, `[]`)
	feed := NewHTTP(server.URL)

	value, err := feed.Threshold(context.Background(), "cam-1")
	require.NoError(t, err)
	assert.Equal(t, 60.0, value)

	require.NoError(t, feed.SaveThreshold(context.Background(), "cam-1", 45))
	assert.Equal(t, 45.0, *saved)
}
