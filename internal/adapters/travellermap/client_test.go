package travellermap_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/traveller-trade-go/internal/adapters/travellermap"
	"github.com/andrescamacho/traveller-trade-go/internal/domain/shared"
)

const amondiageJumpWorlds = `{"Worlds":[
 {"Name":"Amondiage","Hex":"2225","Sector":"Reft","UWP":"A8B3531-D","WorldX":-106,"WorldY":-15,"Zone":"","Allegiance":"CsIm","Remarks":"Fl Ni"},
 {"Name":"Neu Bayern","Hex":"1923","Sector":"Reft","UWP":"C766777-8","WorldX":-109,"WorldY":-17,"Zone":"A","Allegiance":"NaHu","Remarks":"Ag Ri"},
 {"Name":"Broken","Hex":"2226","Sector":"Reft","UWP":"bad","WorldX":-106,"WorldY":-14}
]}`

func newTestClient(server *httptest.Server, clock *shared.ManualClock) *travellermap.Client {
	return travellermap.NewClient(travellermap.Options{
		BaseURL:          server.URL,
		RateLimit:        1000,
		Burst:            100,
		MaxRetries:       2,
		BackoffBase:      time.Second,
		BreakerThreshold: 2,
		BreakerTimeout:   time.Minute,
		Clock:            clock,
	})
}

func TestJumpWorlds_ParsesWorlds(t *testing.T) {
	// Arrange
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		assert.Equal(t, "/api/jumpworlds", r.URL.Path)
		_, _ = w.Write([]byte(amondiageJumpWorlds))
	}))
	defer server.Close()
	client := newTestClient(server, shared.NewManualClock(time.Time{}))

	// Act
	worlds, err := client.JumpWorlds(context.Background(), shared.MustSectorHex("Reft", "2225"), 2)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, query, "hex=2225")
	assert.Contains(t, query, "jump=2")
	require.Len(t, worlds, 2, "the malformed entry is skipped")
	assert.Equal(t, "Amondiage", worlds[0].Name)
	assert.Equal(t, shared.MustSectorHex("Reft", "2225"), worlds[0].Key())
	assert.Equal(t, -106, worlds[0].X)
	assert.True(t, worlds[1].HasRemark("Ri"))
}

func TestJumpWorlds_RetriesServerErrorsWithBackoff(t *testing.T) {
	// Arrange
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(amondiageJumpWorlds))
	}))
	defer server.Close()
	clock := shared.NewManualClock(time.Time{})
	client := newTestClient(server, clock)

	// Act
	worlds, err := client.JumpWorlds(context.Background(), shared.MustSectorHex("Reft", "2225"), 2)

	// Assert
	require.NoError(t, err)
	assert.Len(t, worlds, 2)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	sleeps := clock.Sleeps()
	require.Len(t, sleeps, 2)
	assert.InDelta(t, float64(time.Second), float64(sleeps[0]), float64(250*time.Millisecond))
	assert.InDelta(t, float64(2*time.Second), float64(sleeps[1]), float64(500*time.Millisecond))
}

func TestNewClient_ZeroMaxRetriesUsesDefault(t *testing.T) {
	// Arrange
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 4 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(amondiageJumpWorlds))
	}))
	defer server.Close()
	clock := shared.NewManualClock(time.Time{})
	client := travellermap.NewClient(travellermap.Options{
		BaseURL:          server.URL,
		RateLimit:        1000,
		Burst:            100,
		BreakerThreshold: 5,
		Clock:            clock,
	})

	// Act
	worlds, err := client.JumpWorlds(context.Background(), shared.MustSectorHex("Reft", "2225"), 2)

	// Assert
	require.NoError(t, err)
	assert.Len(t, worlds, 2)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
	assert.Len(t, clock.Sleeps(), 3)
}

func TestJumpWorlds_HonoursRetryAfter(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "7")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(amondiageJumpWorlds))
	}))
	defer server.Close()
	clock := shared.NewManualClock(time.Time{})

	_, err := newTestClient(server, clock).JumpWorlds(context.Background(), shared.MustSectorHex("Reft", "2225"), 1)

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{7 * time.Second}, clock.Sleeps())
}

func TestJumpWorlds_NotFoundIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "sector not found", http.StatusNotFound)
	}))
	defer server.Close()
	client := newTestClient(server, shared.NewManualClock(time.Time{}))

	for i := 0; i < 3; i++ {
		_, err := client.JumpWorlds(context.Background(), shared.MustSectorHex("Nowhere", "0101"), 1)
		assert.ErrorIs(t, err, travellermap.ErrNotFound)
	}

	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, travellermap.CircuitClosed, client.BreakerState())
}

func TestJumpWorlds_CircuitOpensAfterRepeatedFailures(t *testing.T) {
	// Arrange
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()
	clock := shared.NewManualClock(time.Time{})
	client := newTestClient(server, clock)
	origin := shared.MustSectorHex("Reft", "2225")

	// Act
	_, err1 := client.JumpWorlds(context.Background(), origin, 1)
	_, err2 := client.JumpWorlds(context.Background(), origin, 1)
	_, err3 := client.JumpWorlds(context.Background(), origin, 1)

	// Assert
	assert.Error(t, err1)
	assert.Error(t, err2)
	assert.ErrorIs(t, err3, travellermap.ErrCircuitOpen)
	assert.Equal(t, int32(6), atomic.LoadInt32(&calls), "two calls of three attempts each")
	assert.Equal(t, travellermap.CircuitOpen, client.BreakerState())

	clock.Advance(2 * time.Minute)
	_, err4 := client.JumpWorlds(context.Background(), origin, 1)
	assert.NotErrorIs(t, err4, travellermap.ErrCircuitOpen)
}
