package environment

import "time"

// Sample is one stored observation. Temperature and humidity are
// independently absent when the upstream omits them.
type Sample struct {
	Time        time.Time
	Temperature *float64
	Humidity    *float64
}

// sampleRing is a fixed-capacity ring of past observations. Inserting into
// a full ring drops the oldest sample. Not safe for concurrent use; the
// owning service serialises access.
type sampleRing struct {
	buf   []Sample
	start int
	count int
}

func newSampleRing(capacity int) *sampleRing {
	return &sampleRing{buf: make([]Sample, capacity)}
}

func (r *sampleRing) push(s Sample) {
	if r.count < len(r.buf) {
		r.buf[(r.start+r.count)%len(r.buf)] = s
		r.count++
		return
	}
	r.buf[r.start] = s
	r.start = (r.start + 1) % len(r.buf)
}

func (r *sampleRing) len() int { return r.count }

// samples returns a copy in chronological order, oldest first.
func (r *sampleRing) samples() []Sample {
	out := make([]Sample, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(r.start+i)%len(r.buf)]
	}
	return out
}
