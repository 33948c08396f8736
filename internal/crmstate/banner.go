package crmstate

import (
	"sync"
	"time"
)

// DefaultBannerTimeout is how long an error stays visible.
const DefaultBannerTimeout = 5 * time.Second

// Banner holds the single visible error message. A new message replaces the
// old one and restarts the dismissal timer.
type Banner struct {
	timeout time.Duration

	mu    sync.Mutex
	msg   string
	gen   uint64
	timer *time.Timer
}

func NewBanner(timeout time.Duration) *Banner {
	if timeout <= 0 {
		timeout = DefaultBannerTimeout
	}
	return &Banner{timeout: timeout}
}

// Show replaces the current message.
func (b *Banner) Show(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
	}
	b.gen++
	gen := b.gen
	b.msg = msg
	b.timer = time.AfterFunc(b.timeout, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.gen == gen {
			b.msg = ""
			b.timer = nil
		}
	})
}

// Message is the visible text, empty when nothing is shown.
func (b *Banner) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.msg
}

// Dismiss hides the message immediately.
func (b *Banner) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.gen++
	b.msg = ""
}
