package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/findergoal/internal/common"
)

// Options configures a Service.
type Options struct {
	HTTPClient   *http.Client
	Cache        Cache
	Logger       *slog.Logger
	NominatimURL string
	OverpassURL  string
	UserAgent    string
	Radius       int
	Retry        common.RetryOptions
}

// Service geocodes places and looks up nearby pitches. Lookups run one after
// another; results of Search are cached by query.
type Service struct {
	client       *http.Client
	cache        Cache
	logger       *slog.Logger
	nominatimURL string
	overpassURL  string
	userAgent    string
	radius       int
	retry        common.RetryOptions
}

// NewService creates a geo service.
func NewService(opts Options) *Service {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 20 * time.Second}
	}
	if opts.Cache == nil {
		opts.Cache = NewMemoryCache(time.Hour)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Radius <= 0 {
		opts.Radius = 3000
	}
	if opts.Retry.MaxAttempts == 0 {
		opts.Retry = common.RetryOptions{MaxAttempts: 3, InitialDelay: time.Second, MaxDelay: 10 * time.Second}
	}
	return &Service{
		client:       opts.HTTPClient,
		cache:        opts.Cache,
		logger:       opts.Logger,
		nominatimURL: strings.TrimRight(opts.NominatimURL, "/"),
		overpassURL:  strings.TrimRight(opts.OverpassURL, "/"),
		userAgent:    opts.UserAgent,
		radius:       opts.Radius,
		retry:        opts.Retry,
	}
}

// Search geocodes query and lists soccer pitches around it.
func (s *Service) Search(ctx context.Context, query string) (SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResult{}, fmt.Errorf("%w: empty query", ErrPlaceNotFound)
	}

	key := cacheKey(query, s.radius)
	if cached, ok := s.cache.Get(ctx, key); ok {
		s.logger.Debug("pitch search cache hit", "query", query)
		return cached, nil
	}

	place, err := s.Geocode(ctx, query)
	if err != nil {
		return SearchResult{}, err
	}

	pitches, err := s.Pitches(ctx, place.Lat, place.Lon, s.radius)
	if err != nil {
		return SearchResult{}, err
	}

	result := SearchResult{Place: place, Pitches: pitches}
	if err := s.cache.Set(ctx, key, result); err != nil {
		s.logger.Warn("failed to cache pitch search", "query", query, "error", err)
	}

	s.logger.Info("pitch search completed",
		"query", query,
		"place", place.DisplayName,
		"pitches", len(pitches))
	return result, nil
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Error       string `json:"error"`
}

func (p nominatimPlace) toPlace() (Place, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return Place{}, fmt.Errorf("invalid latitude %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return Place{}, fmt.Errorf("invalid longitude %q: %w", p.Lon, err)
	}
	name := p.Name
	if name == "" {
		name, _, _ = strings.Cut(p.DisplayName, ",")
	}
	return Place{Name: name, DisplayName: p.DisplayName, Lat: lat, Lon: lon}, nil
}

// Geocode resolves free text to the best matching place.
func (s *Service) Geocode(ctx context.Context, query string) (Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")

	var results []nominatimPlace
	err := s.fetchJSON(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, s.nominatimURL+"/search?"+params.Encode(), nil)
	}, &results)
	if err != nil {
		return Place{}, fmt.Errorf("geocoding %q: %w", query, err)
	}

	if len(results) == 0 {
		return Place{}, fmt.Errorf("%w: %s", ErrPlaceNotFound, query)
	}
	return results[0].toPlace()
}

// Reverse resolves coordinates to a place description.
func (s *Service) Reverse(ctx context.Context, lat, lon float64) (Place, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("format", "jsonv2")

	var result nominatimPlace
	err := s.fetchJSON(ctx, func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, s.nominatimURL+"/reverse?"+params.Encode(), nil)
	}, &result)
	if err != nil {
		return Place{}, fmt.Errorf("reverse geocoding: %w", err)
	}

	if result.Error != "" {
		return Place{}, fmt.Errorf("%w: %s", ErrPlaceNotFound, result.Error)
	}
	return result.toPlace()
}

type overpassResponse struct {
	Elements []struct {
		Center *struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"center"`
		Tags map[string]string `json:"tags"`
		Type string            `json:"type"`
		ID   int64             `json:"id"`
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
	} `json:"elements"`
}

// overpassQuery selects soccer pitches mapped as nodes or areas.
func overpassQuery(lat, lon float64, radius int) string {
	around := fmt.Sprintf("(around:%d,%s,%s)", radius,
		strconv.FormatFloat(lat, 'f', 6, 64), strconv.FormatFloat(lon, 'f', 6, 64))
	return "[out:json][timeout:25];(" +
		`node["leisure"="pitch"]["sport"~"soccer"]` + around + ";" +
		`way["leisure"="pitch"]["sport"~"soccer"]` + around + ";" +
		");out center 50;"
}

// Pitches lists soccer pitches within radius meters of a point, nearest first.
func (s *Service) Pitches(ctx context.Context, lat, lon float64, radius int) ([]Pitch, error) {
	form := url.Values{}
	form.Set("data", overpassQuery(lat, lon, radius))

	var response overpassResponse
	err := s.fetchJSON(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.overpassURL+"/api/interpreter", strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	}, &response)
	if err != nil {
		return nil, fmt.Errorf("pitch lookup: %w", err)
	}

	pitches := make([]Pitch, 0, len(response.Elements))
	for _, el := range response.Elements {
		pLat, pLon := el.Lat, el.Lon
		if el.Center != nil {
			pLat, pLon = el.Center.Lat, el.Center.Lon
		}
		name := el.Tags["name"]
		if name == "" {
			name = "Cancha sin nombre"
		}
		pitches = append(pitches, Pitch{
			ID:             el.ID,
			Name:           name,
			Surface:        el.Tags["surface"],
			Lat:            pLat,
			Lon:            pLon,
			DistanceMeters: distanceMeters(lat, lon, pLat, pLon),
		})
	}

	sort.SliceStable(pitches, func(i, j int) bool {
		return pitches[i].DistanceMeters < pitches[j].DistanceMeters
	})
	return pitches, nil
}

// fetchJSON performs a request built by newReq and decodes the body into out.
// Rate limiting (429) and unavailability (503) are retried; the public
// instances throttle aggressively.
func (s *Service) fetchJSON(ctx context.Context, newReq func() (*http.Request, error), out any) error {
	return common.WithRetry(ctx, func() error {
		req, err := newReq()
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if s.userAgent != "" {
			req.Header.Set("User-Agent", s.userAgent)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%s: %w", req.URL.Host, common.ErrRateLimit)
		case resp.StatusCode == http.StatusServiceUnavailable:
			return &common.RetryableError{Err: fmt.Errorf("%s unavailable", req.URL.Host), Retryable: true}
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			return fmt.Errorf("%s returned status %d: %s", req.URL.Host, resp.StatusCode, truncate(string(body), 200))
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		return nil
	}, s.retry)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
