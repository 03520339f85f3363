package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/findergoal/internal/common"
)

const nominatimSearchBody = `[{"lat":"4.6486","lon":"-74.0628","name":"Chapinero","display_name":"Chapinero, Bogotá, Colombia"}]`

const overpassBody = `{"elements":[
	{"type":"way","id":20,"center":{"lat":4.6600,"lon":-74.0628},"tags":{"leisure":"pitch","sport":"soccer","name":"Cancha El Lago","surface":"artificial_turf"}},
	{"type":"node","id":10,"lat":4.6490,"lon":-74.0628,"tags":{"leisure":"pitch","sport":"soccer"}}
]}`

type fakeOSM struct {
	server        *httptest.Server
	searchCalls   atomic.Int32
	overpassCalls atomic.Int32
	overpassQuery atomic.Value
	userAgent     atomic.Value
}

func newFakeOSM(t *testing.T) *fakeOSM {
	t.Helper()
	f := &fakeOSM{}
	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, r *http.Request) {
		f.searchCalls.Add(1)
		f.userAgent.Store(r.Header.Get("User-Agent"))
		if r.URL.Query().Get("q") == "nowhere" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(nominatimSearchBody))
	})
	mux.HandleFunc("/reverse", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lat") == "0" {
			_, _ = w.Write([]byte(`{"error":"Unable to geocode"}`))
			return
		}
		_, _ = w.Write([]byte(`{"lat":"4.6486","lon":"-74.0628","display_name":"Calle 60, Chapinero, Bogotá"}`))
	})
	mux.HandleFunc("/api/interpreter", func(w http.ResponseWriter, r *http.Request) {
		f.overpassCalls.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		f.overpassQuery.Store(r.PostForm.Get("data"))
		_, _ = w.Write([]byte(overpassBody))
	})
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeOSM) service() *Service {
	return NewService(Options{
		NominatimURL: f.server.URL,
		OverpassURL:  f.server.URL,
		UserAgent:    "findergoal-test",
		Radius:       2000,
		Retry:        common.RetryOptions{MaxAttempts: 2, InitialDelay: time.Millisecond},
	})
}

func TestSearch(t *testing.T) {
	osm := newFakeOSM(t)
	svc := osm.service()

	result, err := svc.Search(context.Background(), "Chapinero, Bogotá")
	require.NoError(t, err)

	assert.Equal(t, "Chapinero", result.Place.Name)
	assert.InDelta(t, 4.6486, result.Place.Lat, 1e-6)
	require.Len(t, result.Pitches, 2)

	// nearest first
	assert.Equal(t, int64(10), result.Pitches[0].ID)
	assert.Equal(t, "Cancha sin nombre", result.Pitches[0].Name)
	assert.Equal(t, "Cancha El Lago", result.Pitches[1].Name)
	assert.Equal(t, "artificial_turf", result.Pitches[1].Surface)
	assert.InDelta(t, 1268, result.Pitches[1].DistanceMeters, 5)

	query, _ := osm.overpassQuery.Load().(string)
	assert.Contains(t, query, `"leisure"="pitch"`)
	assert.Contains(t, query, "around:2000,4.648600,-74.062800")
	assert.Equal(t, "findergoal-test", osm.userAgent.Load())
}

func TestSearch_CachesByNormalizedQuery(t *testing.T) {
	osm := newFakeOSM(t)
	svc := osm.service()
	ctx := context.Background()

	_, err := svc.Search(ctx, "Chapinero,  Bogotá")
	require.NoError(t, err)
	_, err = svc.Search(ctx, "chapinero, bogotá ")
	require.NoError(t, err)

	assert.Equal(t, int32(1), osm.searchCalls.Load())
	assert.Equal(t, int32(1), osm.overpassCalls.Load())
}

func TestSearch_NotFound(t *testing.T) {
	osm := newFakeOSM(t)
	svc := osm.service()

	_, err := svc.Search(context.Background(), "nowhere")
	require.ErrorIs(t, err, ErrPlaceNotFound)
	assert.Equal(t, int32(0), osm.overpassCalls.Load())

	_, err = svc.Search(context.Background(), "   ")
	require.ErrorIs(t, err, ErrPlaceNotFound)
}

func TestReverse(t *testing.T) {
	osm := newFakeOSM(t)
	svc := osm.service()

	place, err := svc.Reverse(context.Background(), 4.6486, -74.0628)
	require.NoError(t, err)
	assert.Equal(t, "Calle 60", place.Name)

	_, err = svc.Reverse(context.Background(), 0, 0)
	require.ErrorIs(t, err, ErrPlaceNotFound)
}

func TestFetch_RetriesThrottling(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(nominatimSearchBody))
	}))
	defer server.Close()

	svc := NewService(Options{
		NominatimURL: server.URL,
		Retry:        common.RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond},
	})

	place, err := svc.Geocode(context.Background(), "Chapinero")
	require.NoError(t, err)
	assert.Equal(t, "Chapinero", place.Name)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, strings.Repeat("x", 500), http.StatusBadRequest)
	}))
	defer server.Close()

	svc := NewService(Options{
		NominatimURL: server.URL,
		Retry:        common.RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond},
	})

	_, err := svc.Geocode(context.Background(), "Chapinero")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
	assert.Equal(t, int32(1), calls.Load())
}
