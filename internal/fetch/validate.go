package fetch

import (
	"time"

	"github.com/skygaze/skygaze/internal/skygaze"
)

// Params carries the user's inputs for one fetch cycle.
type Params struct {
	// Date is a calendar date in YYYY-MM-DD form, or empty.
	Date string
	// Rover is the selected rover name. Only meaningful for the Mars feature.
	Rover string
}

// No imagery exists before this date on the bounded feeds.
var earliestDate = time.Date(1995, time.June, 16, 0, 0, 0, 0, time.UTC)

// Validate checks the params against the feature's temporal bounds.
// It returns nil or a validation-kind [skygaze.Error]; it never touches
// the network and is deterministic given (feature, params, now).
func Validate(f skygaze.Feature, p Params, now time.Time) error {
	switch f {
	case skygaze.FeatureEPIC:
		if p.Date == "" {
			return skygaze.E(skygaze.KindValidation, skygaze.ReasonMissingDate)
		}

		return nil
	case skygaze.FeatureMars:
		if p.Rover == "" {
			return skygaze.E(skygaze.KindValidation, skygaze.ReasonMissingRover)
		}
		if p.Date == "" {
			return skygaze.E(skygaze.KindValidation, skygaze.ReasonMissingDate)
		}

		return validateRange(p.Date, now)
	case skygaze.FeatureAPOD:
		// Empty means "today's picture", no gate
		if p.Date == "" {
			return nil
		}

		return validateRange(p.Date, now)
	}

	return skygaze.E(skygaze.KindValidation, "unknown feature")
}

// A date is acceptable when it parses and lies in [1995-06-16, today].
func validateRange(date string, now time.Time) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return skygaze.E(skygaze.KindValidation, skygaze.ReasonInvalidDateRange, err)
	}
	if day.Before(earliestDate) || day.After(now) {
		return skygaze.E(skygaze.KindValidation, skygaze.ReasonInvalidDateRange)
	}

	return nil
}
