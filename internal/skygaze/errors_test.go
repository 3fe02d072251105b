package skygaze_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skygaze/skygaze/internal/skygaze"
)

func TestE(t *testing.T) {
	cause := errors.New("boom")

	err := skygaze.E(skygaze.KindValidation, skygaze.ReasonMissingDate, cause)
	assert.Equal(t, skygaze.KindValidation, err.Kind)
	assert.Equal(t, skygaze.ReasonMissingDate, err.Reason)
	assert.ErrorIs(t, err, cause)
}

func TestEDefaults(t *testing.T) {
	err := skygaze.E("something broke")
	assert.Equal(t, skygaze.KindTransport, err.Kind)
	assert.EqualError(t, err, "something broke")
}

func TestEReasonOnly(t *testing.T) {
	err := skygaze.E(skygaze.KindValidation, skygaze.ReasonMissingRover)
	assert.Equal(t, "missing-rover: missing-rover", err.Error())
}

func TestEUnwrapsThroughWrapping(t *testing.T) {
	inner := skygaze.E(skygaze.KindValidation, skygaze.ReasonInvalidDateRange)
	wrapped := fmt.Errorf("error validating: %w", inner)

	sErr := &skygaze.Error{}
	require.ErrorAs(t, wrapped, &sErr)
	assert.Equal(t, skygaze.ReasonInvalidDateRange, sErr.Reason)
}

func TestSlotKeys(t *testing.T) {
	assert.Equal(t, "EPICPhotoes", skygaze.FeatureEPIC.SlotKey())
	assert.Equal(t, "MarsRoverPhotoes", skygaze.FeatureMars.SlotKey())
	assert.Equal(t, "pictureOfTheDay", skygaze.FeatureAPOD.SlotKey())
}
