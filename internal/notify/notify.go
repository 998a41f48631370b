// Package notify holds the single transient notification shown to the user.
package notify

import (
	"time"

	"github.com/desertthunder/userdeck/internal/models"
	"github.com/desertthunder/userdeck/internal/schedule"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3 * time.Second

// Center keeps at most one notification. Showing a new one replaces the old one and invalidates
// its pending dismissal.
type Center struct {
	current *models.Notification
	slot    schedule.Slot
	ttl     time.Duration
}

// New returns a Center whose notifications expire after ttl.
func New(ttl time.Duration) *Center {
	return &Center{ttl: ttl}
}

// TTL returns the notification lifetime.
func (c *Center) TTL() time.Duration { return c.ttl }

// Show replaces the current notification and returns the timer that will dismiss it.
func (c *Center) Show(message string, kind models.Kind) schedule.Timer {
	c.current = &models.Notification{Message: message, Kind: kind}
	return schedule.Timer{Token: c.slot.Arm(), Kind: schedule.Dismiss, Delay: c.ttl}
}

// Dismiss clears the notification immediately and cancels its pending dismissal.
func (c *Center) Dismiss() {
	c.current = nil
	c.slot.Cancel()
}

// Expire clears the notification if tok belongs to the one currently shown.
func (c *Center) Expire(tok schedule.Token) bool {
	if !c.slot.Fire(tok) {
		return false
	}
	c.current = nil
	return true
}

// Current returns a copy of the visible notification, or nil.
func (c *Center) Current() *models.Notification {
	if c.current == nil {
		return nil
	}
	n := *c.current
	return &n
}
