// Package geo finds places and nearby soccer pitches using OpenStreetMap
// services: Nominatim for geocoding and Overpass for pitch lookups.
package geo

import (
	"errors"
	"math"
)

// ErrPlaceNotFound is returned when geocoding yields no result.
var ErrPlaceNotFound = errors.New("place not found")

// Place is a geocoded location.
type Place struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// Pitch is a soccer pitch near a searched place.
type Pitch struct {
	Name           string  `json:"name"`
	Surface        string  `json:"surface,omitempty"`
	ID             int64   `json:"id"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	DistanceMeters float64 `json:"distanceMeters"`
}

// SearchResult is a place with the pitches around it, nearest first.
type SearchResult struct {
	Place   Place   `json:"place"`
	Pitches []Pitch `json:"pitches"`
}

const earthRadiusMeters = 6371000

// distanceMeters is the haversine distance between two coordinates.
func distanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
