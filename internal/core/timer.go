package core

import "time"

// Pacer fires at most once per interval. The viewer uses it to cycle seeds
// while autoplay is on.
type Pacer struct {
	interval time.Duration
	elapsed  time.Duration
	last     time.Time
	now      func() time.Time
}

// NewPacer returns a Pacer firing every interval. Non-positive intervals
// default to two seconds.
func NewPacer(interval time.Duration) *Pacer {
	p := &Pacer{now: time.Now}
	p.SetInterval(interval)
	return p
}

// SetInterval changes the firing interval.
func (p *Pacer) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	p.interval = interval
}

// Interval returns the current firing interval.
func (p *Pacer) Interval() time.Duration { return p.interval }

// Reset discards accumulated time.
func (p *Pacer) Reset() {
	p.elapsed = 0
	p.last = time.Time{}
}

// Due reports whether an interval has elapsed since the last firing.
func (p *Pacer) Due() bool {
	now := p.now()
	if p.last.IsZero() {
		p.last = now
	}
	p.elapsed += now.Sub(p.last)
	p.last = now
	if p.elapsed >= p.interval {
		p.elapsed -= p.interval
		return true
	}
	return false
}
