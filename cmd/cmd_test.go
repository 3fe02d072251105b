package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skygaze/skygaze/internal/skygaze"
)

func TestVersionOutput(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	assert.Contains(t, out.String(), "skygaze")
	assert.Contains(t, out.String(), "Version: dev")
}

func TestCacheClearRejectsUnknownFeature(t *testing.T) {
	err := cacheClearCmd.RunE(cacheClearCmd, []string{"pluto"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown feature")
}

func TestFeatureArgsAreValid(t *testing.T) {
	for _, name := range []string{"epic", "mars", "apod"} {
		assert.True(t, skygaze.Feature(name).Valid(), name)
	}
}
