package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skygaze/skygaze/internal/cache"
	"github.com/skygaze/skygaze/internal/skygaze"
)

// Function-typed fakes for the three adapters.
type (
	epicFunc func(ctx context.Context, date string) ([]skygaze.EpicRecord, error)
	marsFunc func(ctx context.Context, rover, earthDate string) ([]skygaze.MarsPhoto, error)
	apodFunc func(ctx context.Context, date string) (skygaze.ApodEntry, error)
)

func (f epicFunc) Enhanced(ctx context.Context, date string) ([]skygaze.EpicRecord, error) {
	return f(ctx, date)
}

func (f marsFunc) RoverPhotos(ctx context.Context, rover, earthDate string) ([]skygaze.MarsPhoto, error) {
	return f(ctx, rover, earthDate)
}

func (f apodFunc) PictureOfTheDay(ctx context.Context, date string) (skygaze.ApodEntry, error) {
	return f(ctx, date)
}

// Records every message shown.
type spyNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *spyNotifier) Show(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.messages = append(n.messages, message)
}

func (n *spyNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.messages) == 0 {
		return ""
	}

	return n.messages[len(n.messages)-1]
}

func (n *spyNotifier) all() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]string{}, n.messages...)
}

// Adapters that fail the test if the network is ever reached.
func forbiddenAdapters(t *testing.T) (EpicFetcher, MarsFetcher, ApodFetcher) {
	t.Helper()

	return epicFunc(func(context.Context, string) ([]skygaze.EpicRecord, error) {
			t.Fatal("epic adapter called")
			return nil, nil
		}),
		marsFunc(func(context.Context, string, string) ([]skygaze.MarsPhoto, error) {
			t.Fatal("mars adapter called")
			return nil, nil
		}),
		apodFunc(func(context.Context, string) (skygaze.ApodEntry, error) {
			t.Fatal("apod adapter called")
			return skygaze.ApodEntry{}, nil
		})
}

func fixedClock() time.Time {
	return time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)
}

var testEpicRecords = []skygaze.EpicRecord{
	{
		ImageURL:   "https://epic.gsfc.nasa.gov/archive/enhanced/2024/05/01/png/epic_1b_20240501003633.png",
		Latitude:   12.3,
		Longitude:  -45.6,
		Identifier: "20240501003633",
	},
}

var testMarsPhotos = []skygaze.MarsPhoto{
	{ID: "424905", ImgSrc: "https://mars.nasa.gov/msl/424905.jpg", Sol: 1004, CameraName: "Front Hazard Avoidance Camera", EarthDate: "2015-05-30"},
}

func TestRunValidationFailureNeverFetches(t *testing.T) {
	epic, mars, apod := forbiddenAdapters(t)
	notifier := &spyNotifier{}
	o := New(cache.NewMemory(), epic, mars, apod, notifier, WithClock(fixedClock))

	st := o.Run(context.Background(), skygaze.FeatureEPIC, Params{})
	assert.Equal(t, StateError, st)
	assert.Equal(t, "Please select a valid date", notifier.last())
	assert.False(t, o.Loading(skygaze.FeatureEPIC))

	st = o.Run(context.Background(), skygaze.FeatureMars, Params{Date: "2015-05-30"})
	assert.Equal(t, StateError, st)
	assert.Equal(t, "Please select a date and a rover", notifier.last())

	st = o.Run(context.Background(), skygaze.FeatureMars, Params{Date: "1990-01-01", Rover: "curiosity"})
	assert.Equal(t, StateError, st)
	assert.Equal(t, "Please select a valid date", notifier.last())

	st = o.Run(context.Background(), skygaze.FeatureAPOD, Params{Date: "2030-01-01"})
	assert.Equal(t, StateError, st)
	assert.Equal(t, "Date must be between today and 1995-06-16", notifier.last())
}

func TestRunEpicSuccess(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	notifier := &spyNotifier{}
	epic := epicFunc(func(_ context.Context, date string) ([]skygaze.EpicRecord, error) {
		assert.Equal(t, "2024-05-01", date)
		return testEpicRecords, nil
	})
	_, mars, apod := forbiddenAdapters(t)
	o := New(store, epic, mars, apod, notifier, WithClock(fixedClock))

	st := o.Run(ctx, skygaze.FeatureEPIC, Params{Date: "2024-05-01"})
	require.Equal(t, StateSuccess, st)

	assert.Equal(t, testEpicRecords, o.EpicRecords())
	assert.Equal(t, "Found 1 images from 2024-05-01", notifier.last())

	raw, err := store.Read(ctx, skygaze.FeatureEPIC)
	require.NoError(t, err)

	var persisted []skygaze.EpicRecord
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, testEpicRecords, persisted)
}

func TestRunEpicEmptyPreservesCache(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	prior := []byte(`[{"imageUrl":"old","latitude":1,"longitude":2,"identifier":"x"}]`)
	require.NoError(t, store.Write(ctx, skygaze.FeatureEPIC, prior))

	notifier := &spyNotifier{}
	epic := epicFunc(func(context.Context, string) ([]skygaze.EpicRecord, error) {
		return []skygaze.EpicRecord{}, nil
	})
	_, mars, apod := forbiddenAdapters(t)
	o := New(store, epic, mars, apod, notifier, WithClock(fixedClock))
	o.Seed(ctx)

	st := o.Run(ctx, skygaze.FeatureEPIC, Params{Date: "2024-05-01"})
	assert.Equal(t, StateEmpty, st)
	assert.Equal(t, "No pictures captured on the selected day", notifier.last())

	// Prior cached value and in-memory result stay put
	raw, err := store.Read(ctx, skygaze.FeatureEPIC)
	require.NoError(t, err)
	assert.Equal(t, prior, raw)
	require.Len(t, o.EpicRecords(), 1)
	assert.Equal(t, "old", o.EpicRecords()[0].ImageURL)
}

func TestRunEpicEmptyWithAbsentCache(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	notifier := &spyNotifier{}
	epic := epicFunc(func(context.Context, string) ([]skygaze.EpicRecord, error) {
		return nil, nil
	})
	_, mars, apod := forbiddenAdapters(t)
	o := New(store, epic, mars, apod, notifier, WithClock(fixedClock))

	st := o.Run(ctx, skygaze.FeatureEPIC, Params{Date: "2024-05-01"})
	assert.Equal(t, StateEmpty, st)

	_, err := store.Read(ctx, skygaze.FeatureEPIC)
	assert.ErrorIs(t, err, skygaze.ErrNotFound)
}

func TestRunTransportFailureLeavesStateAlone(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	prior := []byte(`[{"id":"1","imgSrc":"s","sol":10,"cameraName":"c","earthDate":"2015-05-30"}]`)
	require.NoError(t, store.Write(ctx, skygaze.FeatureMars, prior))

	notifier := &spyNotifier{}
	mars := marsFunc(func(context.Context, string, string) ([]skygaze.MarsPhoto, error) {
		return nil, errors.New("unexpected status code: 500")
	})
	epic, _, apod := forbiddenAdapters(t)
	o := New(store, epic, mars, apod, notifier, WithClock(fixedClock))
	o.Seed(ctx)

	st := o.Run(ctx, skygaze.FeatureMars, Params{Date: "2015-05-30", Rover: "curiosity"})
	assert.Equal(t, StateError, st)
	assert.Equal(t, "Error fetching photos", notifier.last())
	assert.False(t, o.Loading(skygaze.FeatureMars))

	raw, err := store.Read(ctx, skygaze.FeatureMars)
	require.NoError(t, err)
	assert.Equal(t, prior, raw)
	assert.Len(t, o.MarsPhotos(), 1)
}

func TestRunMarsSuccessMessageNamesRover(t *testing.T) {
	notifier := &spyNotifier{}
	mars := marsFunc(func(_ context.Context, rover, earthDate string) ([]skygaze.MarsPhoto, error) {
		assert.Equal(t, "curiosity", rover)
		assert.Equal(t, "2015-05-30", earthDate)
		return testMarsPhotos, nil
	})
	epic, _, apod := forbiddenAdapters(t)
	o := New(cache.NewMemory(), epic, mars, apod, notifier, WithClock(fixedClock))

	st := o.Run(context.Background(), skygaze.FeatureMars, Params{Date: "2015-05-30", Rover: "curiosity"})
	assert.Equal(t, StateSuccess, st)
	assert.Equal(t, "Found 1 photos from Curiosity", notifier.last())
}

func TestRunIdempotentFetch(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	notifier := &spyNotifier{}
	mars := marsFunc(func(context.Context, string, string) ([]skygaze.MarsPhoto, error) {
		return testMarsPhotos, nil
	})
	epic, _, apod := forbiddenAdapters(t)
	o := New(store, epic, mars, apod, notifier, WithClock(fixedClock))

	p := Params{Date: "2015-05-30", Rover: "curiosity"}
	require.Equal(t, StateSuccess, o.Run(ctx, skygaze.FeatureMars, p))

	afterOne, err := store.Read(ctx, skygaze.FeatureMars)
	require.NoError(t, err)

	require.Equal(t, StateSuccess, o.Run(ctx, skygaze.FeatureMars, p))

	afterTwo, err := store.Read(ctx, skygaze.FeatureMars)
	require.NoError(t, err)
	assert.Equal(t, afterOne, afterTwo)
	assert.Equal(t, testMarsPhotos, o.MarsPhotos())
}

func TestRunApodEmptyDate(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	notifier := &spyNotifier{}
	apod := apodFunc(func(_ context.Context, date string) (skygaze.ApodEntry, error) {
		assert.Equal(t, "", date)
		return skygaze.ApodEntry{
			Title:       "The Eagle Nebula",
			Explanation: "Pillars.",
			URL:         "https://apod.nasa.gov/eagle.jpg",
			MediaType:   "image",
		}, nil
	})
	epic, mars, _ := forbiddenAdapters(t)
	o := New(store, epic, mars, apod, notifier, WithClock(fixedClock))

	st := o.Run(ctx, skygaze.FeatureAPOD, Params{})
	require.Equal(t, StateSuccess, st)

	msgs := notifier.all()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Getting the Picture of the Day", msgs[0])
	assert.Equal(t, "The Eagle Nebula", msgs[1])

	entry, ok := o.Apod()
	require.True(t, ok)
	assert.Equal(t, "image", entry.MediaType)

	raw, err := store.Read(ctx, skygaze.FeatureAPOD)
	require.NoError(t, err)

	var persisted skygaze.ApodEntry
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, entry, persisted)
}

func TestRunOverlappingStaleResponseDropped(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	notifier := &spyNotifier{}

	stale := []skygaze.MarsPhoto{{ID: "stale", ImgSrc: "s", Sol: 1, CameraName: "c", EarthDate: "2015-05-30"}}
	fresh := []skygaze.MarsPhoto{{ID: "fresh", ImgSrc: "f", Sol: 2, CameraName: "c", EarthDate: "2015-05-31"}}

	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	mars := marsFunc(func(_ context.Context, _, earthDate string) ([]skygaze.MarsPhoto, error) {
		if earthDate == "2015-05-30" {
			close(firstStarted)
			<-releaseFirst
			return stale, nil
		}
		return fresh, nil
	})
	epic, _, apod := forbiddenAdapters(t)
	o := New(store, epic, mars, apod, notifier, WithClock(fixedClock))

	firstDone := make(chan State, 1)
	go func() {
		firstDone <- o.Run(ctx, skygaze.FeatureMars, Params{Date: "2015-05-30", Rover: "curiosity"})
	}()
	<-firstStarted
	assert.True(t, o.Loading(skygaze.FeatureMars))

	// The newer run starts while the first is still suspended, and wins
	st := o.Run(ctx, skygaze.FeatureMars, Params{Date: "2015-05-31", Rover: "curiosity"})
	require.Equal(t, StateSuccess, st)

	// Let the older response resolve; it must be dropped, not applied
	close(releaseFirst)
	assert.Equal(t, StateIdle, <-firstDone)

	assert.Equal(t, fresh, o.MarsPhotos())
	assert.Equal(t, StateSuccess, o.State(skygaze.FeatureMars))
	assert.False(t, o.Loading(skygaze.FeatureMars))

	raw, err := store.Read(ctx, skygaze.FeatureMars)
	require.NoError(t, err)

	var persisted []skygaze.MarsPhoto
	require.NoError(t, json.Unmarshal(raw, &persisted))
	assert.Equal(t, fresh, persisted)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	notifier := &spyNotifier{}
	epic := epicFunc(func(context.Context, string) ([]skygaze.EpicRecord, error) {
		return testEpicRecords, nil
	})
	_, mars, apod := forbiddenAdapters(t)
	o := New(store, epic, mars, apod, notifier, WithClock(fixedClock))

	require.Equal(t, StateSuccess, o.Run(ctx, skygaze.FeatureEPIC, Params{Date: "2024-05-01"}))
	require.NoError(t, o.Clear(ctx, skygaze.FeatureEPIC))

	assert.Equal(t, "Gallery cleared", notifier.last())
	assert.Empty(t, o.EpicRecords())
	assert.Equal(t, StateIdle, o.State(skygaze.FeatureEPIC))

	_, err := store.Read(ctx, skygaze.FeatureEPIC)
	assert.ErrorIs(t, err, skygaze.ErrNotFound)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	require.NoError(t, store.Write(ctx, skygaze.FeatureEPIC, []byte(`[{"imageUrl":"u","latitude":1,"longitude":2,"identifier":"i"}]`)))
	require.NoError(t, store.Write(ctx, skygaze.FeatureMars, []byte(`not json`)))
	require.NoError(t, store.Write(ctx, skygaze.FeatureAPOD, []byte(`{"title":"T","explanation":"E","url":"u","mediaType":"image"}`)))

	epic, mars, apod := forbiddenAdapters(t)
	o := New(store, epic, mars, apod, &spyNotifier{}, WithClock(fixedClock))
	o.Seed(ctx)

	require.Len(t, o.EpicRecords(), 1)
	assert.Equal(t, "u", o.EpicRecords()[0].ImageURL)

	// The corrupt slot reads as "no data yet"
	assert.Empty(t, o.MarsPhotos())

	entry, ok := o.Apod()
	require.True(t, ok)
	assert.Equal(t, "T", entry.Title)
}
