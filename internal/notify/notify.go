// Package notify delivers user facing messages: short lived banners and,
// when the user allowed it, native notifications.
package notify

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Permission mirrors the platform notification permission.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// BannerDuration is how long a banner stays on screen.
const BannerDuration = 3 * time.Second

const recentLimit = 20

type Banner struct {
	Message  string        `json:"message"`
	Severity Severity      `json:"severity"`
	Duration time.Duration `json:"duration"`
	At       time.Time     `json:"at"`
}

// Native is a one-shot platform notification.
type Native struct {
	Title string    `json:"title"`
	Body  string    `json:"body"`
	At    time.Time `json:"at"`
}

type Notifier interface {
	Notify(severity Severity, message string)
	// NotifyNative reports whether the notification was delivered.
	NotifyNative(title, body string) bool
}

// Center logs every message and keeps the most recent ones for clients to
// poll. Native notifications are only sent with PermissionGranted; the
// permission is never requested.
type Center struct {
	mu         sync.Mutex
	logger     *log.Logger
	permission Permission
	banners    []Banner
	natives    []Native
	now        func() time.Time
}

func NewCenter(logger *log.Logger, permission Permission) *Center {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Center{logger: logger, permission: permission, now: time.Now}
}

func (c *Center) Notify(severity Severity, message string) {
	entry := c.logger.WithField("severity", severity)
	switch severity {
	case SeverityError:
		entry.Error(message)
	case SeverityWarning:
		entry.Warn(message)
	default:
		entry.Info(message)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.banners = appendBounded(c.banners, Banner{
		Message:  message,
		Severity: severity,
		Duration: BannerDuration,
		At:       c.now(),
	})
}

func (c *Center) NotifyNative(title, body string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.permission != PermissionGranted {
		return false
	}
	c.logger.WithField("title", title).Info(body)
	c.natives = appendBounded(c.natives, Native{Title: title, Body: body, At: c.now()})
	return true
}

// Banners returns the kept banners, oldest first.
func (c *Center) Banners() []Banner {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Banner{}, c.banners...)
}

// Active returns the banners still on screen at now.
func (c *Center) Active(now time.Time) []Banner {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []Banner{}
	for _, b := range c.banners {
		if now.Sub(b.At) < b.Duration {
			out = append(out, b)
		}
	}
	return out
}

func (c *Center) Natives() []Native {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Native{}, c.natives...)
}

func appendBounded[T any](list []T, v T) []T {
	list = append(list, v)
	if len(list) > recentLimit {
		list = list[len(list)-recentLimit:]
	}
	return list
}
