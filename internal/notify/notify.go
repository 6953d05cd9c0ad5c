// internal/notify/notify.go
package notify

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Level represents the severity of a notification
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification represents a transient user-visible message
type Notification struct {
	Level     Level     `json:"level"`
	Resource  string    `json:"resource"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier receives user-visible notifications
type Notifier interface {
	Notify(level Level, resource, message string)
}

// Center collects notifications and logs them.
// It keeps a bounded feed of the most recent entries so the UI can render
// toast-style messages; older entries are discarded.
type Center struct {
	mu      sync.Mutex
	entries []Notification
	limit   int
	logger  *logrus.Logger
}

// NewCenter creates a notification center with the given feed size
func NewCenter(logger *logrus.Logger, limit int) *Center {
	if limit <= 0 {
		limit = 50
	}
	return &Center{
		limit:  limit,
		logger: logger,
	}
}

// Notify records a notification and logs it
func (c *Center) Notify(level Level, resource, message string) {
	n := Notification{
		Level:     level,
		Resource:  resource,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	c.mu.Lock()
	c.entries = append(c.entries, n)
	if len(c.entries) > c.limit {
		c.entries = c.entries[len(c.entries)-c.limit:]
	}
	c.mu.Unlock()

	if c.logger == nil {
		return
	}

	entry := c.logger.WithFields(logrus.Fields{
		"resource": resource,
	})
	switch level {
	case LevelError:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}

// Error records an error-level notification
func (c *Center) Error(resource, message string) {
	c.Notify(LevelError, resource, message)
}

// Success records a success-level notification
func (c *Center) Success(resource, message string) {
	c.Notify(LevelSuccess, resource, message)
}

// Recent returns up to n most recent notifications, newest last
func (c *Center) Recent(n int) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n <= 0 || n > len(c.entries) {
		n = len(c.entries)
	}
	out := make([]Notification, n)
	copy(out, c.entries[len(c.entries)-n:])
	return out
}
