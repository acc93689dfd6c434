package otp

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

func TestFast2SMSSender_SendCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/dev/bulkV2", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("authorization"))

		var req fast2smsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "q", req.Route)
		assert.Equal(t, "9876543210", req.Numbers)
		assert.Contains(t, req.Message, "123456")
		assert.Contains(t, req.Message, "10 minutes")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(fast2smsResponse{Return: true, MessageID: "m-1"})
	}))
	defer srv.Close()

	s := newFast2SMSSenderAt(srv.URL, "test-key", 2*time.Second)
	err := s.SendCode(context.Background(), "9876543210", "123456", 10*time.Minute)
	assert.NoError(t, err)
}

func TestFast2SMSSender_RejectedMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(fast2smsResponse{Return: false, Message: "invalid number"})
	}))
	defer srv.Close()

	s := newFast2SMSSenderAt(srv.URL, "test-key", 2*time.Second)
	err := s.SendCode(context.Background(), "9876543210", "123456", 10*time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid number")
}

func TestFast2SMSSender_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := newFast2SMSSenderAt(srv.URL, "test-key", 2*time.Second)
	err := s.SendCode(context.Background(), "9876543210", "123456", 10*time.Minute)
	assert.Error(t, err)
}
