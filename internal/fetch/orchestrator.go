// Package fetch drives one fetch cycle per feature: validate the input,
// call the feature's adapter, commit or discard the result, and report
// the outcome through the notification center.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skygaze/skygaze/internal/skygaze"
)

// State is where a feature's most recent fetch cycle stands.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateEmpty
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	}

	return "unknown"
}

type (
	// EpicFetcher fetches and normalizes the EPIC listing for a date.
	EpicFetcher interface {
		Enhanced(ctx context.Context, date string) ([]skygaze.EpicRecord, error)
	}

	// MarsFetcher fetches and normalizes a rover's photos for an Earth date.
	MarsFetcher interface {
		RoverPhotos(ctx context.Context, rover, earthDate string) ([]skygaze.MarsPhoto, error)
	}

	// ApodFetcher fetches the astronomy picture for a date, or today's
	// when the date is empty.
	ApodFetcher interface {
		PictureOfTheDay(ctx context.Context, date string) (skygaze.ApodEntry, error)
	}

	// Notifier receives the outcome messages.
	Notifier interface {
		Show(message string)
	}
)

// Orchestrator owns the per-feature fetch state machine:
//
//	Idle -> Loading -> {Success, Empty, Error} -> Idle
//
// A feature's in-memory result and its cache slot are replaced only on
// the success path; failures and empty results leave both untouched.
//
// Overlapping runs for the same feature are resolved with a request
// token: starting a new run invalidates the outstanding one, so a
// late-resolving older response is dropped instead of applied.
type Orchestrator struct {
	store    skygaze.Store
	epic     EpicFetcher
	mars     MarsFetcher
	apod     ApodFetcher
	notifier Notifier
	now      func() time.Time

	mu          sync.Mutex
	states      map[skygaze.Feature]State
	tokens      map[skygaze.Feature]uuid.UUID
	epicRecords []skygaze.EpicRecord
	marsPhotos  []skygaze.MarsPhoto
	apodEntry   skygaze.ApodEntry
	hasApod     bool
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock overrides the device clock used for date validation.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// New creates a new Orchestrator over the given store and adapters.
func New(store skygaze.Store, epic EpicFetcher, mars MarsFetcher, apod ApodFetcher, n Notifier, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:    store,
		epic:     epic,
		mars:     mars,
		apod:     apod,
		notifier: n,
		now:      time.Now,
		states:   map[skygaze.Feature]State{},
		tokens:   map[skygaze.Feature]uuid.UUID{},
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Seed loads each feature's cached value into memory. Called once at
// startup; an absent or corrupt slot means "no data yet" and is skipped.
func (o *Orchestrator) Seed(ctx context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, f := range skygaze.Features {
		raw, err := o.store.Read(ctx, f)
		if errors.Is(err, skygaze.ErrNotFound) {
			continue
		}
		if err != nil {
			slog.Warn("error reading cache slot", "feature", f, "error", err)
			continue
		}

		switch f {
		case skygaze.FeatureEPIC:
			var records []skygaze.EpicRecord
			if err := json.Unmarshal(raw, &records); err == nil {
				o.epicRecords = records
			}
		case skygaze.FeatureMars:
			var photos []skygaze.MarsPhoto
			if err := json.Unmarshal(raw, &photos); err == nil {
				o.marsPhotos = photos
			}
		case skygaze.FeatureAPOD:
			var entry skygaze.ApodEntry
			if err := json.Unmarshal(raw, &entry); err == nil {
				o.apodEntry = entry
				o.hasApod = true
			}
		}
	}
}

// Run performs one fetch cycle for the feature and returns the outcome
// state. Validation failures never reach the network.
func (o *Orchestrator) Run(ctx context.Context, f skygaze.Feature, p Params) State {
	if err := Validate(f, p, o.now()); err != nil {
		o.setState(f, StateError)
		o.notifier.Show(validationMessage(f, err))

		return StateError
	}

	// This invocation owns the feature until a newer one starts
	token := uuid.New()
	o.mu.Lock()
	o.states[f] = StateLoading
	o.tokens[f] = token
	o.mu.Unlock()

	if f == skygaze.FeatureAPOD && p.Date == "" {
		o.notifier.Show(msgGettingPicture)
	}

	switch f {
	case skygaze.FeatureEPIC:
		return o.runEpic(ctx, token, p)
	case skygaze.FeatureMars:
		return o.runMars(ctx, token, p)
	default:
		return o.runApod(ctx, token, p)
	}
}

func (o *Orchestrator) runEpic(ctx context.Context, token uuid.UUID, p Params) State {
	records, err := o.epic.Enhanced(ctx, p.Date)

	o.mu.Lock()
	if o.tokens[skygaze.FeatureEPIC] != token {
		o.mu.Unlock()
		slog.Debug("dropping stale response", "feature", skygaze.FeatureEPIC)

		return StateIdle
	}

	if err != nil {
		o.states[skygaze.FeatureEPIC] = StateError
		o.mu.Unlock()
		slog.Warn("error fetching epic images", "error", err)
		o.notifier.Show(failureMessage(skygaze.FeatureEPIC))

		return StateError
	}
	if len(records) == 0 {
		// A success that matched nothing; prior results stay put
		o.states[skygaze.FeatureEPIC] = StateEmpty
		o.mu.Unlock()
		o.notifier.Show(msgNoPictures)

		return StateEmpty
	}

	o.epicRecords = records
	o.states[skygaze.FeatureEPIC] = StateSuccess
	o.persist(ctx, skygaze.FeatureEPIC, records)
	o.mu.Unlock()

	o.notifier.Show(foundImagesMessage(len(records), p.Date))

	return StateSuccess
}

func (o *Orchestrator) runMars(ctx context.Context, token uuid.UUID, p Params) State {
	photos, err := o.mars.RoverPhotos(ctx, p.Rover, p.Date)

	o.mu.Lock()
	if o.tokens[skygaze.FeatureMars] != token {
		o.mu.Unlock()
		slog.Debug("dropping stale response", "feature", skygaze.FeatureMars)

		return StateIdle
	}

	if err != nil {
		o.states[skygaze.FeatureMars] = StateError
		o.mu.Unlock()
		slog.Warn("error fetching rover photos", "error", err)
		o.notifier.Show(failureMessage(skygaze.FeatureMars))

		return StateError
	}
	if len(photos) == 0 {
		o.states[skygaze.FeatureMars] = StateEmpty
		o.mu.Unlock()
		o.notifier.Show(msgNoPictures)

		return StateEmpty
	}

	o.marsPhotos = photos
	o.states[skygaze.FeatureMars] = StateSuccess
	o.persist(ctx, skygaze.FeatureMars, photos)
	o.mu.Unlock()

	o.notifier.Show(foundPhotosMessage(len(photos), p.Rover))

	return StateSuccess
}

func (o *Orchestrator) runApod(ctx context.Context, token uuid.UUID, p Params) State {
	entry, err := o.apod.PictureOfTheDay(ctx, p.Date)

	o.mu.Lock()
	if o.tokens[skygaze.FeatureAPOD] != token {
		o.mu.Unlock()
		slog.Debug("dropping stale response", "feature", skygaze.FeatureAPOD)

		return StateIdle
	}

	if err != nil {
		o.states[skygaze.FeatureAPOD] = StateError
		o.mu.Unlock()
		slog.Warn("error fetching picture of the day", "error", err)
		o.notifier.Show(failureMessage(skygaze.FeatureAPOD))

		return StateError
	}

	// The endpoint returns at most one object; any object is a success
	o.apodEntry = entry
	o.hasApod = true
	o.states[skygaze.FeatureAPOD] = StateSuccess
	o.persist(ctx, skygaze.FeatureAPOD, entry)
	o.mu.Unlock()

	o.notifier.Show(entry.Title)

	return StateSuccess
}

// Writes the committed value to the store. Called with the lock held so
// a commit can't interleave with a newer run's commit. A failed write
// only degrades durability, so it's logged and the fetch still counts.
func (o *Orchestrator) persist(ctx context.Context, f skygaze.Feature, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Warn("error serializing result", "feature", f, "error", err)
		return
	}
	if err := o.store.Write(ctx, f, raw); err != nil {
		slog.Warn("error writing cache slot", "feature", f, "error", err)
	}
}

// Clear removes the feature's cache slot and resets its in-memory
// result to the empty representation.
func (o *Orchestrator) Clear(ctx context.Context, f skygaze.Feature) error {
	if err := o.store.Clear(ctx, f); err != nil {
		return err
	}

	o.mu.Lock()
	switch f {
	case skygaze.FeatureEPIC:
		o.epicRecords = nil
	case skygaze.FeatureMars:
		o.marsPhotos = nil
	case skygaze.FeatureAPOD:
		o.apodEntry = skygaze.ApodEntry{}
		o.hasApod = false
	}
	o.states[f] = StateIdle
	o.mu.Unlock()

	o.notifier.Show(msgGalleryCleared)

	return nil
}

// State returns where the feature's most recent cycle landed.
func (o *Orchestrator) State(f skygaze.Feature) State {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.states[f]
}

// Loading reports whether a fetch is currently in flight for the feature.
func (o *Orchestrator) Loading(f skygaze.Feature) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.states[f] == StateLoading
}

// EpicRecords returns the current EPIC collection.
func (o *Orchestrator) EpicRecords() []skygaze.EpicRecord {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]skygaze.EpicRecord, len(o.epicRecords))
	copy(out, o.epicRecords)

	return out
}

// MarsPhotos returns the current Mars photo collection.
func (o *Orchestrator) MarsPhotos() []skygaze.MarsPhoto {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]skygaze.MarsPhoto, len(o.marsPhotos))
	copy(out, o.marsPhotos)

	return out
}

// Apod returns the current picture-of-the-day entry, if there is one.
func (o *Orchestrator) Apod() (skygaze.ApodEntry, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.apodEntry, o.hasApod
}

func (o *Orchestrator) setState(f skygaze.Feature, s State) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.states[f] = s
}
