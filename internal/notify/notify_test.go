package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShowReplaces(t *testing.T) {
	c := NewCenter()

	c.Show("first")
	c.Show("second")

	got := c.Current()
	assert.Equal(t, "second", got.Message)
	assert.True(t, got.Visible)
}

func TestShowWhileVisible(t *testing.T) {
	c := NewCenter()

	c.Show("old")
	// Still visible when the next one lands; last writer wins, no queue
	c.Show("new")

	assert.Equal(t, Notification{Message: "new", Visible: true}, c.Current())
}

func TestDismissKeepsText(t *testing.T) {
	c := NewCenter()

	c.Show("hello")
	c.Dismiss()

	got := c.Current()
	assert.False(t, got.Visible)
	assert.Equal(t, "hello", got.Message)
}

func TestClearWipes(t *testing.T) {
	c := NewCenter()

	c.Show("hello")
	c.Clear()

	assert.Equal(t, Notification{}, c.Current())
}
