package fetch

import (
	"errors"
	"fmt"

	"github.com/skygaze/skygaze/internal/skygaze"
)

// User-facing notification text. The strings are kept exactly as the
// app has always shown them, typos included.
const (
	msgInvalidDate     = "Please select a valid date"
	msgSelectDateRover = "Please select a date and a rover"
	msgApodRange       = "Date must be between today and 1995-06-16"
	msgNoPictures      = "No pictures captured on the selected day"
	msgMarsError       = "Error fetching photos"
	msgApodError       = "An Error Occured While Getting the Picture"
	msgGettingPicture  = "Getting the Picture of the Day"
	msgGalleryCleared  = "Gallery cleared"
)

// Maps a validation error to what the user sees for that feature.
func validationMessage(f skygaze.Feature, err error) string {
	sErr := &skygaze.Error{}
	if !errors.As(err, &sErr) {
		return msgInvalidDate
	}

	switch f {
	case skygaze.FeatureMars:
		if sErr.Reason == skygaze.ReasonInvalidDateRange {
			return msgInvalidDate
		}

		return msgSelectDateRover
	case skygaze.FeatureAPOD:
		return msgApodRange
	}

	return msgInvalidDate
}

// The generic per-feature message for a failed transport.
func failureMessage(f skygaze.Feature) string {
	switch f {
	case skygaze.FeatureMars:
		return msgMarsError
	case skygaze.FeatureAPOD:
		return msgApodError
	}

	return msgNoPictures
}

func foundImagesMessage(count int, date string) string {
	return fmt.Sprintf("Found %d images from %s", count, date)
}

func foundPhotosMessage(count int, rover string) string {
	return fmt.Sprintf("Found %d photos from %s", count, skygaze.RoverDisplayName(rover))
}
