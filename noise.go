package gimbal

import (
	"math"
	"math/rand/v2"
)

// MaxOctaves is the fixed octave capacity of a MultiOctaveNoise.
const MaxOctaves = 4

// Octave is a single value-noise oscillator. It holds the two samples
// bracketing the current interval and the time elapsed inside it.
type Octave struct {
	Frequency   float64
	CurrentTime float64 // always in [0, interval)
	PrevSample  float64 // in [-1, 1]
	NextSample  float64 // in [-1, 1]
}

// interval returns the duration between two samples. A zero frequency
// uses a one second interval.
func (o *Octave) interval() float64 {
	if o.Frequency == 0 {
		return 1
	}
	return 1 / math.Abs(o.Frequency)
}

// progress returns the fraction of the current interval already elapsed.
func (o *Octave) progress() float64 {
	return o.CurrentTime / o.interval()
}

// advance moves the octave forward by dt and returns the sample at the new
// time. Crossing an interval boundary shifts the samples and draws a new one.
func (o *Octave) advance(dt float64, draw func() float64) float64 {
	interval := o.interval()
	newTime := o.CurrentTime + dt
	if math.Floor(newTime/interval) > math.Floor(o.CurrentTime/interval) {
		o.PrevSample = o.NextSample
		o.NextSample = draw()
	}
	o.CurrentTime = math.Mod(newTime, interval)
	if o.CurrentTime < 0 {
		o.CurrentTime += interval
	}
	return lerp(o.PrevSample, o.NextSample, smootherstep(o.progress()))
}

// MultiOctaveNoise sums up to MaxOctaves value-noise octaves into a
// band-limited pseudo-random stream driven by elapsed time.
//
// Octave i runs at Frequency * Lacunarity^i with amplitude
// Amplitude * Gain^i, so the output always stays within
// ±Amplitude * sum(Gain^i).
type MultiOctaveNoise struct {
	Amplitude  float64
	Lacunarity float64
	Gain       float64

	octaveCount int
	octaves     [MaxOctaves]Octave
	rng         *rand.Rand
}

// NewMultiOctaveNoise creates a single-octave generator. Samples are drawn
// from rng; a nil rng uses the global math/rand source, in which case runs
// are not reproducible.
func NewMultiOctaveNoise(amplitude, frequency float64, rng *rand.Rand) *MultiOctaveNoise {
	n := &MultiOctaveNoise{
		Amplitude:   amplitude,
		Lacunarity:  2,
		Gain:        0.5,
		octaveCount: 1,
		rng:         rng,
	}
	n.octaves[0] = Octave{Frequency: frequency}
	n.seedOctave(&n.octaves[0])
	return n
}

func (n *MultiOctaveNoise) sample() float64 {
	if n.rng != nil {
		return n.rng.Float64()*2 - 1
	}
	return rand.Float64()*2 - 1
}

func (n *MultiOctaveNoise) seedOctave(o *Octave) {
	o.PrevSample = n.sample()
	o.NextSample = n.sample()
	o.CurrentTime = 0
}

// GenerateValue advances every active octave by dt and returns their sum.
func (n *MultiOctaveNoise) GenerateValue(dt float64) float64 {
	var total float64
	amplitude := n.Amplitude
	for i := 0; i < n.octaveCount; i++ {
		total += amplitude * n.octaves[i].advance(dt, n.sample)
		amplitude *= n.Gain
	}
	return total
}

// Frequency returns the base octave's frequency.
func (n *MultiOctaveNoise) Frequency() float64 {
	return n.octaves[0].Frequency
}

// SetFrequency changes the base frequency. Every octave keeps its phase
// inside its current interval so the noise shape has no discontinuity.
// Setting the current frequency is a no-op.
func (n *MultiOctaveNoise) SetFrequency(frequency float64) {
	if frequency == n.octaves[0].Frequency {
		return
	}
	f := frequency
	for i := range n.octaves {
		o := &n.octaves[i]
		progress := o.progress()
		o.Frequency = f
		o.CurrentTime = o.interval() * progress
		f *= n.Lacunarity
	}
}

// NumOctaves returns the number of active octaves.
func (n *MultiOctaveNoise) NumOctaves() int {
	return n.octaveCount
}

// SetNumOctaves changes the active octave count, clamped to [1, MaxOctaves].
// Shrinking keeps the inactive octaves' state; growing seeds each new octave
// one lacunarity step above the previous one.
func (n *MultiOctaveNoise) SetNumOctaves(count int) {
	count = max(1, min(MaxOctaves, count))
	for i := n.octaveCount; i < count; i++ {
		n.octaves[i].Frequency = n.octaves[i-1].Frequency * n.Lacunarity
		n.seedOctave(&n.octaves[i])
	}
	n.octaveCount = count
}

// Octave returns a copy of octave i, for inspection.
func (n *MultiOctaveNoise) Octave(i int) Octave {
	return n.octaves[i]
}

// AmplitudeBound returns the largest absolute value GenerateValue can return.
func (n *MultiOctaveNoise) AmplitudeBound() float64 {
	var sum float64
	g := 1.0
	for i := 0; i < n.octaveCount; i++ {
		sum += math.Abs(g)
		g *= n.Gain
	}
	return math.Abs(n.Amplitude) * sum
}
