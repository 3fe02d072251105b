// Package notify holds the single user-facing message slot.
package notify

import "sync"

// Notification is the current message plus its visibility flag.
type Notification struct {
	Message string
	Visible bool
}

// Center holds one active notification at a time. A new Show always
// replaces whatever was there, visible or not.
type Center struct {
	mu      sync.Mutex
	current Notification
}

// NewCenter creates a new empty Center.
func NewCenter() *Center {
	return &Center{}
}

// Show replaces the current notification and makes it visible.
func (c *Center) Show(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = Notification{Message: message, Visible: true}
}

// Dismiss hides the notification but keeps its text, so a fade-out can
// still render it.
func (c *Center) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current.Visible = false
}

// Clear wipes both the text and the visibility. Used for the explicit
// close gesture, as opposed to a click-elsewhere dismissal.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = Notification{}
}

// Current returns the notification as it stands.
func (c *Center) Current() Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current
}
