package nlp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagetravel/voyage-backend/internal/model"
)

func TestHTTPClassifier_Classify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/intent", r.URL.Path)

		var req intentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(intentResponse{TravelRelated: req.Utterance != "what is 2+2"})
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, 2*time.Second)

	got, err := c.Classify(context.Background(), "plan a trip to Goa")
	require.NoError(t, err)
	assert.Equal(t, IntentTripPlanning, got)

	got, err = c.Classify(context.Background(), "what is 2+2")
	require.NoError(t, err)
	assert.Equal(t, IntentOffTopic, got)
}

func TestHTTPClassifier_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClassifier(srv.URL, 2*time.Second)
	_, err := c.Classify(context.Background(), "anything")
	assert.Error(t, err)
}

func TestHTTPExtractor_ExtractNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/extract", r.URL.Path)

		var req extractRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "plan 5 days in Goa", req.Utterance)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(RawSlots{
			Destination: "Goa",
			OriginCity:  "not specified",
			NumDays:     5,
			Budget:      -1,
		})
	}))
	defer srv.Close()

	e := NewHTTPExtractor(srv.URL, 2*time.Second)
	got, err := e.Extract(context.Background(), "plan 5 days in Goa", model.TripSlots{})
	require.NoError(t, err)

	require.NotNil(t, got.Destination)
	assert.Equal(t, "Goa", *got.Destination)
	assert.Nil(t, got.OriginCity, "sentinel origin must normalize to absent")
	assert.Nil(t, got.Budget, "non-positive budget must normalize to absent")
	require.NotNil(t, got.NumDays)
	assert.Equal(t, 5, *got.NumDays)
}

func TestHTTPExtractor_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	e := NewHTTPExtractor(srv.URL, 2*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := e.Extract(ctx, "slow", model.TripSlots{})
	assert.Error(t, err)
}
