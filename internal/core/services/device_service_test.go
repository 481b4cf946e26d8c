package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"membership-hub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGolfSimulatorStartSession(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sessionId": "abc-123", "status": "started"}`))
	}))
	defer server.Close()

	svc := NewGolfSimulatorService(server.URL)
	result, err := svc.StartSession(context.Background(), 7, 3)
	require.NoError(t, err)

	assert.Equal(t, "/sessions/start", gotPath)
	assert.Equal(t, float64(7), gotBody["memberId"])
	assert.Equal(t, float64(3), gotBody["deviceId"])
	assert.Equal(t, "start", gotBody["action"])
	assert.Equal(t, "abc-123", result["sessionId"])
}

func TestGolfSimulatorEndSessionForwardsSessionData(t *testing.T) {
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"status": "ended"}`))
	}))
	defer server.Close()

	svc := NewGolfSimulatorService(server.URL)
	sessionData := map[string]interface{}{"score": 42}
	result, err := svc.EndSession(context.Background(), 7, 3, sessionData)
	require.NoError(t, err)

	assert.Equal(t, "end", gotBody["action"])
	data, ok := gotBody["sessionData"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(42), data["score"])
	assert.Equal(t, "ended", result["status"])
}

func TestGolfSimulatorErrorStatusIsDeviceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewGolfSimulatorService(server.URL)
	_, err := svc.StartSession(context.Background(), 1, 1)
	assert.ErrorIs(t, err, domain.ErrDeviceUnavailable)
}

func TestGolfSimulatorUnreachableIsDeviceUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens any more

	svc := NewGolfSimulatorService(server.URL)
	_, err := svc.StartSession(context.Background(), 1, 1)
	assert.ErrorIs(t, err, domain.ErrDeviceUnavailable)
}

func TestGolfSimulatorHistoryDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewGolfSimulatorService(server.URL)
	history := svc.GetUsageHistory(context.Background(), 7)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func TestGolfSimulatorHistorySuccess(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"sessions": [{"deviceId": 1}]}`))
	}))
	defer server.Close()

	svc := NewGolfSimulatorService(server.URL)
	history := svc.GetUsageHistory(context.Background(), 42)

	assert.Equal(t, "/history/42", gotPath)
	assert.Contains(t, history, "sessions")
}

func TestHydrogenWaterStartUsageIncludesAmount(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"status": "dispensing"}`))
	}))
	defer server.Close()

	svc := NewHydrogenWaterService(server.URL)
	result, err := svc.StartUsage(context.Background(), 5, 2, 500)
	require.NoError(t, err)

	assert.Equal(t, "/usage/start", gotPath)
	assert.Equal(t, float64(5), gotBody["memberId"])
	assert.Equal(t, float64(2), gotBody["deviceId"])
	assert.Equal(t, float64(500), gotBody["amount"])
	assert.Equal(t, "start", gotBody["action"])
	assert.Equal(t, "dispensing", result["status"])
}

func TestHydrogenWaterEndUsage(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		// Empty body decodes to an empty result map
	}))
	defer server.Close()

	svc := NewHydrogenWaterService(server.URL)
	result, err := svc.EndUsage(context.Background(), 5, 2)
	require.NoError(t, err)

	assert.Equal(t, "/usage/end", gotPath)
	assert.Equal(t, "end", gotBody["action"])
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestHydrogenWaterHistoryDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := NewHydrogenWaterService(server.URL)
	history := svc.GetUsageHistory(context.Background(), 5)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}
