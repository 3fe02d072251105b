// Package skygaze holds the core types shared across the application:
// the three imagery features, their normalized record shapes, and the
// persistent store surface the rest of the code depends on.
package skygaze

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by a Store when a feature has no cached value.
	ErrNotFound = errors.New("not found")
)

// Feature identifies one of the three independent imagery sources.
type Feature string

const (
	FeatureEPIC Feature = "epic"
	FeatureMars Feature = "mars"
	FeatureAPOD Feature = "apod"
)

// Features lists every feature in display order.
var Features = []Feature{FeatureEPIC, FeatureMars, FeatureAPOD}

// SlotKey is the persistent cache key for the feature.
//
// The keys predate this program and are kept so an existing cache file
// seeded by an older build keeps working.
func (f Feature) SlotKey() string {
	switch f {
	case FeatureEPIC:
		return "EPICPhotoes"
	case FeatureMars:
		return "MarsRoverPhotoes"
	case FeatureAPOD:
		return "pictureOfTheDay"
	}

	return string(f)
}

// Valid reports whether f names a known feature.
func (f Feature) Valid() bool {
	switch f {
	case FeatureEPIC, FeatureMars, FeatureAPOD:
		return true
	}

	return false
}

type (
	// EpicRecord is one normalized Earth image from the EPIC enhanced
	// archive. ImageURL is derived from the query date, never from
	// anything in the upstream payload.
	EpicRecord struct {
		ImageURL   string  `json:"imageUrl"`
		Latitude   float64 `json:"latitude"`
		Longitude  float64 `json:"longitude"`
		Identifier string  `json:"identifier"`
	}

	// MarsPhoto is one normalized rover photo. It is a straight
	// field-name mapping of the upstream entry, source order preserved.
	MarsPhoto struct {
		ID         string `json:"id"`
		ImgSrc     string `json:"imgSrc"`
		Sol        int    `json:"sol"`
		CameraName string `json:"cameraName"`
		EarthDate  string `json:"earthDate"`
	}

	// ApodEntry is the single astronomy picture of the day for a query.
	// Optional upstream fields stay nil when absent.
	ApodEntry struct {
		Title       string  `json:"title"`
		Explanation string  `json:"explanation"`
		URL         string  `json:"url"`
		HDURL       *string `json:"hdUrl"`
		MediaType   string  `json:"mediaType"`
		Date        *string `json:"date"`
		Copyright   *string `json:"copyright"`
	}

	// Store persists one serialized value per feature. Write fully
	// overwrites the slot; Read on an absent slot returns ErrNotFound.
	Store interface {
		Read(ctx context.Context, f Feature) ([]byte, error)
		Write(ctx context.Context, f Feature, value []byte) error
		Clear(ctx context.Context, f Feature) error
	}
)

// Rover is a selectable Mars rover.
type Rover struct {
	Name        string
	DisplayName string
}

// Rovers is the selectable roster, default selection first.
var Rovers = []Rover{
	{Name: "curiosity", DisplayName: "Curiosity"},
	{Name: "opportunity", DisplayName: "Opportunity"},
	{Name: "spirit", DisplayName: "Spirit"},
}

// RoverDisplayName resolves a rover's display name, falling back to the
// raw name for anything not in the roster.
func RoverDisplayName(name string) string {
	for _, r := range Rovers {
		if r.Name == name {
			return r.DisplayName
		}
	}

	return name
}
