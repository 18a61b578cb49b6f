package model

import (
	"sync"
	"time"
)

// FlashDuration is how long a notification stays visible.
const FlashDuration = 3500 * time.Millisecond

// Flash holds the transient notification. A new message replaces the
// previous one and restarts its timer.
type Flash struct {
	mu      sync.RWMutex
	message string
	failure bool
	expires time.Time
	now     func() time.Time
}

// Set stores an informational message that expires after d.
func (f *Flash) Set(msg string, d time.Duration) {
	f.set(msg, false, d)
}

// Fail stores an error message that expires after d.
func (f *Flash) Fail(msg string, d time.Duration) {
	f.set(msg, true, d)
}

func (f *Flash) set(msg string, failure bool, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = msg
	f.failure = failure
	f.expires = f.clock().Add(d)
}

// Current returns the live message and whether it reports a failure.
func (f *Flash) Current() (msg string, failure bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.clock().Before(f.expires) {
		return "", false
	}
	return f.message, f.failure
}

// Get returns the current flash message, or empty if expired.
func (f *Flash) Get() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if !f.clock().Before(f.expires) {
		return ""
	}
	return f.message
}

// Clear drops the current message.
func (f *Flash) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = ""
	f.failure = false
	f.expires = time.Time{}
}

func (f *Flash) clock() time.Time {
	if f.now != nil {
		return f.now()
	}
	return time.Now()
}
