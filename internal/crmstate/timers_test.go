package crmstate

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBannerReplacesAndExpires(t *testing.T) {
	b := NewBanner(80 * time.Millisecond)

	b.Show("first")
	assert.Equal(t, "first", b.Message())

	time.Sleep(50 * time.Millisecond)
	b.Show("second")
	assert.Equal(t, "second", b.Message())

	// The first timer would have fired by now; the replacement restarted it.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, "second", b.Message())

	assert.Eventually(t, func() bool { return b.Message() == "" }, time.Second, 10*time.Millisecond)

	b.Show("third")
	b.Dismiss()
	assert.Empty(t, b.Message())
}

func TestDebouncerRunsLastTrigger(t *testing.T) {
	d := NewDebouncer(40 * time.Millisecond)
	var got atomic.Value
	var runs atomic.Int32

	for _, text := range []string{"a", "ac", "acm", "acme"} {
		text := text
		d.Trigger(func() {
			got.Store(text)
			runs.Add(1)
		})
		time.Sleep(5 * time.Millisecond)
	}
	assert.True(t, d.Pending())

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "acme", got.Load())
	assert.False(t, d.Pending())

	d.Trigger(func() { runs.Add(1) })
	d.Cancel()
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
}
