package metrics

import "github.com/san-kum/projsim/internal/vec"

// Range is the horizontal displacement of the last observed sample from the first.
type Range struct {
	start, last float64
	samples     int
}

func NewRange() *Range { return &Range{} }

func (r *Range) Name() string { return "range" }

func (r *Range) Observe(pos, vel vec.Vec2, t float64) {
	if r.samples == 0 {
		r.start = pos.X
	}
	r.last = pos.X
	r.samples++
}

func (r *Range) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.last - r.start
}

func (r *Range) Reset() {
	r.start, r.last = 0, 0
	r.samples = 0
}

// MaxHeight tracks the highest y seen and the time it was first reached.
type MaxHeight struct {
	max     float64
	at      float64
	samples int
}

func NewMaxHeight() *MaxHeight { return &MaxHeight{} }

func (m *MaxHeight) Name() string { return "max_height" }

func (m *MaxHeight) Observe(pos, vel vec.Vec2, t float64) {
	// strict comparison keeps the first occurrence on ties
	if m.samples == 0 || pos.Y > m.max {
		m.max = pos.Y
		m.at = t
	}
	m.samples++
}

func (m *MaxHeight) Value() float64 { return m.max }

// TimeAt is the elapsed time of the sample holding the maximum.
func (m *MaxHeight) TimeAt() float64 { return m.at }

func (m *MaxHeight) Reset() {
	m.max, m.at = 0, 0
	m.samples = 0
}

// TimeOfFlight is the elapsed time of the last observed sample.
type TimeOfFlight struct {
	last float64
}

func NewTimeOfFlight() *TimeOfFlight { return &TimeOfFlight{} }

func (f *TimeOfFlight) Name() string { return "time_of_flight" }

func (f *TimeOfFlight) Observe(pos, vel vec.Vec2, t float64) { f.last = t }

func (f *TimeOfFlight) Value() float64 { return f.last }

func (f *TimeOfFlight) Reset() { f.last = 0 }
